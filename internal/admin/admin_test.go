package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newEnabled(t *testing.T) *Service {
	t.Helper()

	hash, err := HashPassword("coconut-admin")
	require.NoError(t, err)
	s, err := NewService(hash, testSecret)
	require.NoError(t, err)
	require.True(t, s.Enabled())
	return s
}

func TestNewService(t *testing.T) {
	s, err := NewService("  ", "")
	require.NoError(t, err)
	assert.False(t, s.Enabled())

	hash, err := HashPassword("coconut-admin")
	require.NoError(t, err)

	_, err = NewService(hash, "short")
	assert.ErrorIs(t, err, ErrWeakSecret)

	_, err = NewService("not-a-bcrypt-hash", testSecret)
	assert.Error(t, err)

	var nilSvc *Service
	assert.False(t, nilSvc.Enabled())
}

func TestHashPassword_RejectsShort(t *testing.T) {
	_, err := HashPassword(" abc ")
	assert.ErrorIs(t, err, ErrShortPassword)
}

func TestLogin(t *testing.T) {
	s := newEnabled(t)

	_, err := s.Login("wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tok, err := s.Login("coconut-admin")
	require.NoError(t, err)
	assert.NoError(t, s.Verify(tok))

	disabled, err := NewService("", "")
	require.NoError(t, err)
	_, err = disabled.Login("coconut-admin")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestTokenMaker_Parse(t *testing.T) {
	tm := NewTokenMaker(testSecret)

	tok, err := tm.New("admin", time.Minute)
	require.NoError(t, err)

	c, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", c.Subject)
	assert.Equal(t, roleAdmin, c.Role)

	expired, err := tm.New("admin", -time.Minute)
	require.NoError(t, err)
	_, err = tm.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenMaker(strings.Repeat("x", 32))
	forged, err := other.New("admin", time.Minute)
	require.NoError(t, err)
	_, err = tm.Parse(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMaker_RejectsWrongRoleOrIssuer(t *testing.T) {
	tm := NewTokenMaker(testSecret)
	now := time.Now()

	sign := func(c Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return s
	}

	wrongRole := sign(Claims{
		Role: "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	})
	_, err := tm.Parse(wrongRole)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := sign(Claims{
		Role: roleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	})
	_, err = tm.Parse(wrongIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireAdmin(t *testing.T) {
	s := newEnabled(t)
	tok, err := s.Login("coconut-admin")
	require.NoError(t, err)

	h := s.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		authz  string
		status int
	}{
		{"Missing", "", http.StatusUnauthorized},
		{"NotBearer", "Basic abc", http.StatusUnauthorized},
		{"Garbage", "Bearer abc", http.StatusUnauthorized},
		{"Valid", "Bearer " + tok, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
			if tt.authz != "" {
				req.Header.Set("Authorization", tt.authz)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRequireAdmin_DisabledPassesThrough(t *testing.T) {
	var s *Service

	h := s.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/collections", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	s := newEnabled(t)
	h := s.LoginHandler(zap.NewNop())

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"BadJSON", `{"password":`, http.StatusBadRequest},
		{"UnknownField", `{"password":"coconut-admin","user":"x"}`, http.StatusBadRequest},
		{"Wrong", `{"password":"nope-nope"}`, http.StatusUnauthorized},
		{"OK", `{"password":"coconut-admin"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"access_token"`)
			}
		})
	}

	disabled, err := NewService("", "")
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	disabled.LoginHandler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"x"}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
