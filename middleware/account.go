package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"agromopomulo.id/bankpohon/logger"
	"agromopomulo.id/bankpohon/models"
	"agromopomulo.id/bankpohon/services"
)

// AccountLoader reloads the account a token was issued for.
type AccountLoader interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// RequireAccount runs after JWTMiddleware. It reloads the token's account on
// every request, rejects deleted or deactivated accounts and replaces the
// role claim with the stored role, so role changes apply before the token
// expires.
func RequireAccount(users AccountLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r)
			if claims == nil {
				writeError(w, http.StatusUnauthorized, "missing token")
				return
			}
			id, err := uuid.Parse(claims.UserID)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			u, err := users.Get(r.Context(), id)
			switch {
			case errors.Is(err, services.ErrNotFound):
				writeError(w, http.StatusUnauthorized, "akun tidak ditemukan")
				return
			case err != nil:
				logger.App().WithError(err).WithField("user_id", claims.UserID).Error("account lookup failed")
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			case !u.IsActive:
				writeError(w, http.StatusForbidden, "akun tidak aktif")
				return
			}

			current := *claims
			current.Email = u.Email
			current.Name = u.FullName
			current.Role = u.Role
			ctx := context.WithValue(r.Context(), userClaimsKey, &current)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
