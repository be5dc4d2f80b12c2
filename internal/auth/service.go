// Package auth implements password login and session token issuance.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/voicehub/voicehub/internal/store"
	"github.com/voicehub/voicehub/pkg/jwt"
	"github.com/voicehub/voicehub/pkg/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// Service authenticates users against the store and issues session tokens.
type Service struct {
	store  store.Store
	tokens *jwt.Manager
}

func NewService(st store.Store, tokens *jwt.Manager) *Service {
	return &Service{store: st, tokens: tokens}
}

// Login verifies the email/password pair and returns a signed session token
// plus the authenticated user. Lookup misses and password mismatches are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("looking up user: %w", err)
	}

	if !user.IsActive {
		return "", nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}

	return token, user, nil
}

// HashPassword returns the bcrypt hash used for stored credentials.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
