package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/voicehub/voicehub/internal/api/response"
	"github.com/voicehub/voicehub/pkg/jwt"
)

// Auth provides session token authentication and role-checking middleware.
type Auth struct {
	tokens *jwt.Manager
}

// NewAuth creates a new Auth middleware.
func NewAuth(tokens *jwt.Manager) *Auth {
	return &Auth{tokens: tokens}
}

// Authenticate verifies the Bearer session token and sets the Principal in
// the request context.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearerToken(r)
		if raw == "" {
			response.Error(w, http.StatusUnauthorized,
				"INVALID_TOKEN", "Missing or invalid Authorization header", nil)
			return
		}

		claims, err := a.tokens.Verify(raw)
		if err != nil {
			code := "INVALID_TOKEN"
			if errors.Is(err, jwt.ErrExpiredToken) {
				code = "TOKEN_EXPIRED"
			}
			response.Error(w, http.StatusUnauthorized, code, "Invalid session token", nil)
			return
		}

		userID, err := claims.UserUUID()
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid session token", nil)
			return
		}
		tenantID, err := claims.TenantUUID()
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid session token", nil)
			return
		}

		ctx := SetPrincipal(r.Context(), Principal{
			UserID:   userID,
			TenantID: tenantID,
			Email:    claims.Email,
			Role:     claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole returns middleware that checks whether the authenticated user
// has the specified role.
func (a *Auth) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := GetPrincipal(r)
			if !ok || p.Role != role {
				response.Error(w, http.StatusForbidden,
					"FORBIDDEN", "Insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
