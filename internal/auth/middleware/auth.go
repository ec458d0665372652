// Package middleware guards the record routes. Session evaluation fails
// closed: any problem with the bearer token means 401, never a pass-through.
package middleware

import (
	"net/http"
	"strings"

	"github.com/riskintel/riskintel-backend/internal/auth/jwt"
	"github.com/riskintel/riskintel-backend/pkg/errors"
	"github.com/riskintel/riskintel-backend/pkg/httputil"
)

// RequireAuth validates the bearer token and injects the owner identity
// into the request context. Everything downstream reads ownership from the
// context only.
func RequireAuth(jwtManager *jwt.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractBearerToken(r)
			if err != nil {
				httputil.Error(w, r, err)
				return
			}

			claims, err := jwtManager.ValidateAccessToken(token)
			if err != nil {
				httputil.Error(w, r, err)
				return
			}

			ctx := httputil.WithUserContext(r.Context(), claims.UserID, claims.Email, claims.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.Unauthorized("authorization header required")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.Unauthorized("invalid authorization header")
	}

	return parts[1], nil
}
