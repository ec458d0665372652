package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskintel/riskintel-backend/internal/auth/jwt"
	"github.com/riskintel/riskintel-backend/pkg/config"
	"github.com/riskintel/riskintel-backend/pkg/httputil"
)

func testJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "riskintel-test",
	})
}

func protectedHandler(t *testing.T, gotOwner *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotOwner = httputil.GetOwnerID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthMissingToken(t *testing.T) {
	var owner string
	handler := RequireAuth(testJWTManager())(protectedHandler(t, &owner))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, owner)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	var owner string
	handler := RequireAuth(testJWTManager())(protectedHandler(t, &owner))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, owner)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	var owner string
	handler := RequireAuth(testJWTManager())(protectedHandler(t, &owner))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
	req.Header.Set("Authorization", "token-without-scheme")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	expired := jwt.NewManager(&config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  -time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "riskintel-test",
	})

	pair, err := expired.GenerateTokenPair(&jwt.UserInfo{ID: "user-1"}, "session-1")
	require.NoError(t, err)

	var owner string
	handler := RequireAuth(testJWTManager())(protectedHandler(t, &owner))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, owner)
}

func TestRequireAuthValidToken(t *testing.T) {
	manager := testJWTManager()
	pair, err := manager.GenerateTokenPair(&jwt.UserInfo{
		ID:    "user-1",
		Email: "ana@example.com",
		Name:  "Ana",
	}, "session-1")
	require.NoError(t, err)

	var owner string
	handler := RequireAuth(manager)(protectedHandler(t, &owner))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", owner)
}
