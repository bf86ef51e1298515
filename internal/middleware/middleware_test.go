package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"my-zoo/internal/platform/files"
	"my-zoo/internal/platform/logger"
	"my-zoo/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
}

func (v stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != "good" {
		return auth.Claims{}, errors.New("bad token")
	}
	return v.claims, v.err
}

func claimsFor(t *testing.T, mw func(http.Handler) http.Handler, headers map[string]string) (auth.Claims, bool) {
	t.Helper()

	var (
		got auth.Claims
		ok  bool
	)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetClaims(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestAuthContext_DevHeaders(t *testing.T) {
	c, ok := claimsFor(t, AuthContext(nil), map[string]string{
		"X-Debug-User-ID":     "keeper-1",
		"X-Debug-Permissions": "view own unpublished content, ,view any unpublished content",
	})
	require.True(t, ok)
	assert.Equal(t, "keeper-1", c.UserID)
	assert.Equal(t, []string{"view own unpublished content", "view any unpublished content"}, c.Permissions)

	_, ok = claimsFor(t, AuthContext(nil), nil)
	assert.False(t, ok)
}

func TestAuthContext_Verifier(t *testing.T) {
	v := stubVerifier{claims: auth.Claims{UserID: "u-9", Permissions: []string{"view any unpublished content"}}}

	c, ok := claimsFor(t, AuthContext(v), map[string]string{"Authorization": "Bearer good"})
	require.True(t, ok)
	assert.Equal(t, "u-9", c.UserID)

	_, ok = claimsFor(t, AuthContext(v), map[string]string{"Authorization": "Bearer bad"})
	assert.False(t, ok)

	// en modo verifier, los headers de debug se ignoran
	_, ok = claimsFor(t, AuthContext(v), map[string]string{"X-Debug-User-ID": "intruder"})
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken("Bearer"))
	assert.Empty(t, bearerToken(""))
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "upstream-1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-1", seen)
	assert.Equal(t, "upstream-1", rec.Header().Get("X-Request-Id"))
}

func TestRecover_Returns500(t *testing.T) {
	h := RequestID(Recover(logger.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	h := RateLimit(0.001, 2)(ok)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// desactivado
	off := RateLimit(0, 0)(ok)
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		off.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestBaseURL(t *testing.T) {
	var base string
	h := BaseURL(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		base = files.BaseURLFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "http://api.local:8080/x", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "http://api.local:8080", base)

	req = httptest.NewRequest(http.MethodGet, "http://internal/x", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	req.Header.Set("X-Forwarded-Host", "zoo.example.org")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "https://zoo.example.org", base)
}
