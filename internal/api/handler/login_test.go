package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/voicehub/voicehub/internal/auth"
	"github.com/voicehub/voicehub/pkg/models"
)

type mockAuthenticator struct {
	fn func(email, password string) (string, *models.User, error)
}

func (m *mockAuthenticator) Login(_ context.Context, email, password string) (string, *models.User, error) {
	return m.fn(email, password)
}

func loginRequest(t *testing.T, body any) *http.Request {
	t.Helper()
	b, _ := json.Marshal(body)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(b))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestLoginHandler_Success(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "alice@example.com", Role: models.RoleBusinessUser}
	handler := NewLoginHandler(&mockAuthenticator{fn: func(email, password string) (string, *models.User, error) {
		if email != "alice@example.com" || password != "s3cret" {
			t.Fatalf("unexpected credentials: %s / %s", email, password)
		}
		return "signed-token", user, nil
	}})

	rec := httptest.NewRecorder()
	handler(rec, loginRequest(t, map[string]string{"email": "alice@example.com", "password": "s3cret"}))

	data := parseData(t, rec, http.StatusOK)
	if data["token"] != "signed-token" {
		t.Errorf("expected token in response, got %v", data["token"])
	}
	u, ok := data["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user object, got %v", data["user"])
	}
	if u["email"] != "alice@example.com" {
		t.Errorf("expected user email, got %v", u["email"])
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	handler := NewLoginHandler(&mockAuthenticator{fn: func(_, _ string) (string, *models.User, error) {
		return "", nil, auth.ErrInvalidCredentials
	}})

	rec := httptest.NewRecorder()
	handler(rec, loginRequest(t, map[string]string{"email": "alice@example.com", "password": "wrong"}))

	code, errCode := parseErr(t, rec)
	if code != http.StatusUnauthorized || errCode != "INVALID_CREDENTIALS" {
		t.Errorf("expected 401 INVALID_CREDENTIALS, got %d %s", code, errCode)
	}
}

func TestLoginHandler_AccountDisabled(t *testing.T) {
	handler := NewLoginHandler(&mockAuthenticator{fn: func(_, _ string) (string, *models.User, error) {
		return "", nil, auth.ErrAccountDisabled
	}})

	rec := httptest.NewRecorder()
	handler(rec, loginRequest(t, map[string]string{"email": "alice@example.com", "password": "s3cret"}))

	code, errCode := parseErr(t, rec)
	if code != http.StatusForbidden || errCode != "ACCOUNT_DISABLED" {
		t.Errorf("expected 403 ACCOUNT_DISABLED, got %d %s", code, errCode)
	}
}

func TestLoginHandler_MissingFields(t *testing.T) {
	handler := NewLoginHandler(&mockAuthenticator{fn: func(_, _ string) (string, *models.User, error) {
		t.Fatal("login should not be called")
		return "", nil, nil
	}})

	rec := httptest.NewRecorder()
	handler(rec, loginRequest(t, map[string]string{"email": "alice@example.com"}))

	code, errCode := parseErr(t, rec)
	if code != http.StatusBadRequest || errCode != "INVALID_REQUEST" {
		t.Errorf("expected 400 INVALID_REQUEST, got %d %s", code, errCode)
	}
}

func TestLoginHandler_BadJSON(t *testing.T) {
	handler := NewLoginHandler(&mockAuthenticator{fn: func(_, _ string) (string, *models.User, error) {
		t.Fatal("login should not be called")
		return "", nil, nil
	}})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{not json")))
	handler(rec, r)

	code, errCode := parseErr(t, rec)
	if code != http.StatusBadRequest || errCode != "INVALID_REQUEST" {
		t.Errorf("expected 400 INVALID_REQUEST, got %d %s", code, errCode)
	}
}
