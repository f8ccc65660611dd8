package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Storefront/internal/catalog"
)

func ids(ps []catalog.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterByCollection(t *testing.T) {
	products := catalog.DefaultProducts()

	t.Run("CaseInsensitive", func(t *testing.T) {
		assert.Equal(t, []string{"4", "5"}, ids(catalog.FilterByCollection(products, "soaps")))
		assert.Equal(t, []string{"4", "5"}, ids(catalog.FilterByCollection(products, "SOAPS")))
	})

	t.Run("AllSentinel", func(t *testing.T) {
		assert.Equal(t, ids(products), ids(catalog.FilterByCollection(products, catalog.AllCollections)))
	})

	t.Run("AllOnEmptyCatalog", func(t *testing.T) {
		got := catalog.FilterByCollection(nil, catalog.AllCollections)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Unknown", func(t *testing.T) {
		got := catalog.FilterByCollection(products, "Candles")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFilterFeatured(t *testing.T) {
	assert.Equal(t, []string{"1", "4", "6"}, ids(catalog.FilterFeatured(catalog.DefaultProducts())))
}

func TestSearch(t *testing.T) {
	products := catalog.DefaultProducts()

	t.Run("CaseInsensitive", func(t *testing.T) {
		upper := catalog.Search(products, "COCONUT")
		lower := catalog.Search(products, "coconut")
		assert.Equal(t, upper, lower)
		assert.NotEmpty(t, lower)
	})

	t.Run("BlankReturnsAll", func(t *testing.T) {
		assert.Equal(t, products, catalog.Search(products, ""))
		assert.Equal(t, products, catalog.Search(products, "   \t"))
	})

	t.Run("MatchesDescription", func(t *testing.T) {
		assert.Equal(t, []string{"5"}, ids(catalog.Search(products, "detox")))
	})

	t.Run("MatchesCollection", func(t *testing.T) {
		assert.Equal(t, []string{"7"}, ids(catalog.Search(products, "home dec")))
	})

	t.Run("PreservesOrder", func(t *testing.T) {
		assert.Equal(t, []string{"4", "5"}, ids(catalog.Search(products, "soap")))
	})

	t.Run("NoMatch", func(t *testing.T) {
		got := catalog.Search(products, "titanium")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFindProductAndCollection(t *testing.T) {
	p, ok := catalog.FindProduct(catalog.DefaultProducts(), "6")
	require.True(t, ok)
	assert.Equal(t, "Coir Door Mat", p.Name)

	_, ok = catalog.FindProduct(catalog.DefaultProducts(), "nope")
	assert.False(t, ok)

	c, ok := catalog.FindCollection(catalog.DefaultCollections(), "3")
	require.True(t, ok)
	assert.Equal(t, "Mats", c.Name)

	c, ok = catalog.FindCollectionByName(catalog.DefaultCollections(), "home decor")
	require.True(t, ok)
	assert.Equal(t, "4", c.ID)
}

func TestRelated(t *testing.T) {
	products := catalog.DefaultProducts()
	bowl, _ := catalog.FindProduct(products, "1")

	assert.Equal(t, []string{"2", "3"}, ids(catalog.Related(products, bowl, catalog.DefaultRelatedLimit)))
	assert.Equal(t, []string{"2"}, ids(catalog.Related(products, bowl, 1)))

	lamp, _ := catalog.FindProduct(products, "7")
	assert.Empty(t, catalog.Related(products, lamp, catalog.DefaultRelatedLimit))
}

func TestStore_RelatedProducts(t *testing.T) {
	s := newTestStore(t, catalog.NewMemKV())

	got, ok := s.RelatedProducts("4", catalog.DefaultRelatedLimit)
	require.True(t, ok)
	assert.Equal(t, []string{"5"}, ids(got))

	_, ok = s.RelatedProducts("missing", catalog.DefaultRelatedLimit)
	assert.False(t, ok)
}

func TestStore_FeaturedAfterCreate(t *testing.T) {
	s := newTestStore(t, catalog.NewMemKV())
	before := ids(s.FeaturedProducts())

	p, err := s.CreateProduct(t.Context(), catalog.ProductInput{Name: "Shell Earrings", Collection: "Home Decor", Featured: true})
	require.NoError(t, err)

	assert.Equal(t, append(before, p.ID), ids(s.FeaturedProducts()))
	assert.Equal(t, ids(s.Products()), ids(s.ProductsByCollection(catalog.AllCollections)))
}
