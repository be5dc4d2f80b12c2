package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/voicehub/voicehub/internal/api/response"
	"github.com/voicehub/voicehub/internal/auth"
	"github.com/voicehub/voicehub/pkg/models"
)

// Authenticator defines the interface the login handler depends on.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// NewLoginHandler returns an http.HandlerFunc for POST /api/v1/auth/login.
func NewLoginHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Email == "" || req.Password == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "email and password are required", nil)
			return
		}

		token, user, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidCredentials):
				response.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS",
					"Invalid email or password", nil)
			case errors.Is(err, auth.ErrAccountDisabled):
				response.Error(w, http.StatusForbidden, "ACCOUNT_DISABLED",
					"This account has been disabled", nil)
			default:
				response.Internal(w)
			}
			return
		}

		response.JSON(w, map[string]any{
			"token": token,
			"user":  user,
		})
	}
}
