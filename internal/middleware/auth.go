// Package middleware provides HTTP middlewares for authentication and
// request logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kvitkoaleksandr/TaskPro/internal/models"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// TokenVerifier validates a bearer token and returns the user id and
// email it was issued for.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, string, error)
}

// UserProvider loads users for principal resolution.
type UserProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// JWTAuth enforces bearer-token authentication.
//
// It extracts the token from the Authorization header, verifies it, and
// loads the referenced user to build an immutable models.Claims record
// that is stored in the request context for downstream handlers. A
// missing or invalid token and a token whose user no longer exists are
// both rejected with 401, but as distinct failures.
func JWTAuth(tokens TokenVerifier, users UserProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" {
				http.Error(w, models.ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}

			userID, email, err := tokens.Verify(raw)
			if err != nil {
				http.Error(w, models.ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				http.Error(w, models.ErrUnknownUser.Error(), http.StatusUnauthorized)
				return
			}

			claims := models.Claims{UserID: user.ID, Email: email, Role: user.Role}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts the authenticated principal from the
// request context. ok is false when the request did not pass JWTAuth.
func ClaimsFromContext(ctx context.Context) (models.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(models.Claims)
	return claims, ok
}

// WithClaims returns a context carrying the given principal. Intended
// for tests.
func WithClaims(ctx context.Context, claims models.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
