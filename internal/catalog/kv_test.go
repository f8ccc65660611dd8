package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Storefront/internal/catalog"
)

func testKVContract(t *testing.T, kv catalog.KV) {
	t.Helper()

	require.NoError(t, kv.Ping(t.Context()))

	_, ok, err := kv.Read(t.Context(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Write(t.Context(), "k", []byte("v1")))
	require.NoError(t, kv.Write(t.Context(), "k", []byte("v2")))

	v, ok, err := kv.Read(t.Context(), "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), v)
}

func TestMemKV(t *testing.T) {
	kv := catalog.NewMemKV()
	testKVContract(t, kv)

	buf := []byte("abc")
	require.NoError(t, kv.Write(t.Context(), "buf", buf))
	buf[0] = 'z'

	v, _, err := kv.Read(t.Context(), "buf")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)
}

func TestLevelKV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalog")

	kv, err := catalog.OpenLevelKV(dir)
	require.NoError(t, err)
	testKVContract(t, kv)
	require.NoError(t, kv.Close())

	reopened, err := catalog.OpenLevelKV(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	v, ok, err := reopened.Read(t.Context(), "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), v)
}

func TestLevelKV_StorePersistsAcrossRestart(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalog")

	kv, err := catalog.OpenLevelKV(dir)
	require.NoError(t, err)
	s := catalog.NewStore(kv)
	require.NoError(t, s.Init(t.Context()))

	ok, err := s.DeleteCollection(t.Context(), "3")
	require.NoError(t, err)
	require.True(t, ok)
	want := ids(s.Products())
	require.NoError(t, kv.Close())

	kv, err = catalog.OpenLevelKV(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	restarted := catalog.NewStore(kv)
	require.NoError(t, restarted.Init(t.Context()))
	assert.Equal(t, want, ids(restarted.Products()))
	_, found := restarted.CollectionByID("3")
	assert.False(t, found)
}

// Runs against a real server when STOREFRONT_TEST_DATABASE_URL is set.
func TestPostgresKV(t *testing.T) {
	dsn := os.Getenv("STOREFRONT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_DATABASE_URL not set")
	}

	db, err := catalog.OpenPostgres(t.Context(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	kv := catalog.NewPostgresKV(db)
	require.NoError(t, kv.EnsureSchema(t.Context()))
	_, err = db.ExecContext(t.Context(), `DELETE FROM catalog_kv WHERE key IN ('k', 'missing')`)
	require.NoError(t, err)

	testKVContract(t, kv)
}
