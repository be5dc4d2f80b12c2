package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/voicehub/voicehub/internal/store"
	"github.com/voicehub/voicehub/internal/voice"
	"github.com/voicehub/voicehub/pkg/models"
)

// --- mock VoiceService ---

type mockVoiceService struct {
	createFn  func(actor voice.Actor, input voice.CreateInput) (*models.BrandVoice, error)
	getFn     func(actor voice.Actor, voiceID uuid.UUID) (*models.BrandVoice, error)
	listFn    func(actor voice.Actor, status string, page, limit int) ([]*models.BrandVoice, int, error)
	listAllFn func(status string, page, limit int) ([]*models.BrandVoice, int, error)
	updateFn  func(actor voice.Actor, voiceID uuid.UUID, input voice.UpdateInput) (*models.BrandVoice, error)
}

func (m *mockVoiceService) Create(_ context.Context, actor voice.Actor, input voice.CreateInput) (*models.BrandVoice, error) {
	return m.createFn(actor, input)
}

func (m *mockVoiceService) Get(_ context.Context, actor voice.Actor, voiceID uuid.UUID) (*models.BrandVoice, error) {
	return m.getFn(actor, voiceID)
}

func (m *mockVoiceService) List(_ context.Context, actor voice.Actor, status string, page, limit int) ([]*models.BrandVoice, int, error) {
	return m.listFn(actor, status, page, limit)
}

func (m *mockVoiceService) ListAll(_ context.Context, status string, page, limit int) ([]*models.BrandVoice, int, error) {
	return m.listAllFn(status, page, limit)
}

func (m *mockVoiceService) Update(_ context.Context, actor voice.Actor, voiceID uuid.UUID, input voice.UpdateInput) (*models.BrandVoice, error) {
	return m.updateFn(actor, voiceID, input)
}

func sampleVoice(tenantID uuid.UUID) *models.BrandVoice {
	return &models.BrandVoice{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Name:        "Friendly",
		Description: "Warm and casual",
		Version:     1,
		Status:      models.StatusDraft,
	}
}

// --- Create ---

func TestCreateVoiceHandler_Success(t *testing.T) {
	p := testPrincipal()
	svc := &mockVoiceService{createFn: func(actor voice.Actor, input voice.CreateInput) (*models.BrandVoice, error) {
		if actor.TenantID != p.TenantID {
			t.Errorf("expected actor tenant %s, got %s", p.TenantID, actor.TenantID)
		}
		if input.Name != "Friendly" {
			t.Errorf("expected name Friendly, got %q", input.Name)
		}
		v := sampleVoice(actor.TenantID)
		v.Name = input.Name
		return v, nil
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/api/v1/voices",
		map[string]string{"name": "Friendly"}, p, nil)
	NewCreateVoiceHandler(svc)(rec, req)

	data := parseData(t, rec, http.StatusCreated)
	if data["name"] != "Friendly" {
		t.Errorf("expected created voice in body, got %v", data)
	}
}

func TestCreateVoiceHandler_NameRequired(t *testing.T) {
	svc := &mockVoiceService{createFn: func(_ voice.Actor, _ voice.CreateInput) (*models.BrandVoice, error) {
		return nil, voice.ErrNameRequired
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/api/v1/voices", map[string]string{}, testPrincipal(), nil)
	NewCreateVoiceHandler(svc)(rec, req)

	code, errCode := parseErr(t, rec)
	if code != http.StatusBadRequest || errCode != "VALIDATION_ERROR" {
		t.Errorf("expected 400 VALIDATION_ERROR, got %d %s", code, errCode)
	}
}

func TestCreateVoiceHandler_Forbidden(t *testing.T) {
	svc := &mockVoiceService{createFn: func(_ voice.Actor, _ voice.CreateInput) (*models.BrandVoice, error) {
		return nil, voice.ErrForbidden
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/api/v1/voices",
		map[string]string{"name": "Friendly"}, testPrincipal(), nil)
	NewCreateVoiceHandler(svc)(rec, req)

	code, errCode := parseErr(t, rec)
	if code != http.StatusForbidden || errCode != "FORBIDDEN" {
		t.Errorf("expected 403 FORBIDDEN, got %d %s", code, errCode)
	}
}

func TestCreateVoiceHandler_NoPrincipal(t *testing.T) {
	svc := &mockVoiceService{createFn: func(_ voice.Actor, _ voice.CreateInput) (*models.BrandVoice, error) {
		t.Fatal("service should not be called")
		return nil, nil
	}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voices", nil)
	NewCreateVoiceHandler(svc)(rec, req)

	code, _ := parseErr(t, rec)
	if code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", code)
	}
}

// --- Get ---

func TestGetVoiceHandler_Success(t *testing.T) {
	p := testPrincipal()
	want := sampleVoice(p.TenantID)
	svc := &mockVoiceService{getFn: func(actor voice.Actor, voiceID uuid.UUID) (*models.BrandVoice, error) {
		if voiceID != want.ID {
			t.Errorf("expected voice ID %s, got %s", want.ID, voiceID)
		}
		return want, nil
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/v1/voices/"+want.ID.String(), nil, p,
		map[string]string{"voiceID": want.ID.String()})
	NewGetVoiceHandler(svc)(rec, req)

	data := parseData(t, rec, http.StatusOK)
	if data["id"] != want.ID.String() {
		t.Errorf("expected voice %s, got %v", want.ID, data["id"])
	}
}

func TestGetVoiceHandler_NotFound(t *testing.T) {
	svc := &mockVoiceService{getFn: func(_ voice.Actor, _ uuid.UUID) (*models.BrandVoice, error) {
		return nil, store.ErrNotFound
	}}

	id := uuid.New()
	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/v1/voices/"+id.String(), nil, testPrincipal(),
		map[string]string{"voiceID": id.String()})
	NewGetVoiceHandler(svc)(rec, req)

	code, errCode := parseErr(t, rec)
	if code != http.StatusNotFound || errCode != "NOT_FOUND" {
		t.Errorf("expected 404 NOT_FOUND, got %d %s", code, errCode)
	}
}

func TestGetVoiceHandler_InvalidID(t *testing.T) {
	svc := &mockVoiceService{getFn: func(_ voice.Actor, _ uuid.UUID) (*models.BrandVoice, error) {
		t.Fatal("service should not be called")
		return nil, nil
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/v1/voices/not-a-uuid", nil, testPrincipal(),
		map[string]string{"voiceID": "not-a-uuid"})
	NewGetVoiceHandler(svc)(rec, req)

	code, errCode := parseErr(t, rec)
	if code != http.StatusBadRequest || errCode != "INVALID_REQUEST" {
		t.Errorf("expected 400 INVALID_REQUEST, got %d %s", code, errCode)
	}
}

// --- List ---

func TestListVoicesHandler_Success(t *testing.T) {
	p := testPrincipal()
	svc := &mockVoiceService{listFn: func(actor voice.Actor, status string, page, limit int) ([]*models.BrandVoice, int, error) {
		if status != "draft" {
			t.Errorf("expected status filter draft, got %q", status)
		}
		if page != 2 || limit != 10 {
			t.Errorf("expected page=2 limit=10, got %d %d", page, limit)
		}
		return []*models.BrandVoice{sampleVoice(actor.TenantID)}, 15, nil
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/v1/voices?status=draft&page=2&limit=10", nil, p, nil)
	NewListVoicesHandler(svc)(rec, req)

	items, meta := parseCollection(t, rec)
	if len(items) != 1 {
		t.Fatalf("expected 1 voice, got %d", len(items))
	}
	if meta["total"] != float64(15) {
		t.Errorf("expected total 15, got %v", meta["total"])
	}
	if meta["has_next"] != false {
		t.Errorf("expected has_next false for page 2 of 15, got %v", meta["has_next"])
	}
}

func TestListVoicesHandler_EmptyResult(t *testing.T) {
	svc := &mockVoiceService{listFn: func(_ voice.Actor, _ string, _, _ int) ([]*models.BrandVoice, int, error) {
		return nil, 0, nil
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/v1/voices", nil, testPrincipal(), nil)
	NewListVoicesHandler(svc)(rec, req)

	items, _ := parseCollection(t, rec)
	if items == nil {
		t.Error("expected empty array, got null")
	}
	if len(items) != 0 {
		t.Errorf("expected no voices, got %d", len(items))
	}
}

func TestAdminListVoicesHandler_ListsAllTenants(t *testing.T) {
	called := false
	svc := &mockVoiceService{listAllFn: func(status string, page, limit int) ([]*models.BrandVoice, int, error) {
		called = true
		return []*models.BrandVoice{sampleVoice(uuid.New()), sampleVoice(uuid.New())}, 2, nil
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/v1/admin/voices", nil, testPrincipal(), nil)
	NewAdminListVoicesHandler(svc)(rec, req)

	items, _ := parseCollection(t, rec)
	if !called {
		t.Error("expected ListAll to be called")
	}
	if len(items) != 2 {
		t.Errorf("expected 2 voices, got %d", len(items))
	}
}

// --- Update ---

func TestUpdateVoiceHandler_Success(t *testing.T) {
	p := testPrincipal()
	id := uuid.New()
	svc := &mockVoiceService{updateFn: func(actor voice.Actor, voiceID uuid.UUID, input voice.UpdateInput) (*models.BrandVoice, error) {
		if voiceID != id {
			t.Errorf("expected voice ID %s, got %s", id, voiceID)
		}
		if input.Name == nil || *input.Name != "Bold" {
			t.Errorf("expected name pointer Bold, got %v", input.Name)
		}
		if input.Description != nil {
			t.Errorf("expected nil description for omitted field, got %v", *input.Description)
		}
		v := sampleVoice(actor.TenantID)
		v.ID = id
		v.Name = *input.Name
		v.Version = 2
		return v, nil
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPut, "/api/v1/voices/"+id.String(),
		map[string]string{"name": "Bold"}, p, map[string]string{"voiceID": id.String()})
	NewUpdateVoiceHandler(svc)(rec, req)

	data := parseData(t, rec, http.StatusOK)
	if data["name"] != "Bold" {
		t.Errorf("expected updated name, got %v", data["name"])
	}
	if data["version"] != float64(2) {
		t.Errorf("expected version 2, got %v", data["version"])
	}
}

func TestUpdateVoiceHandler_InvalidStatus(t *testing.T) {
	id := uuid.New()
	svc := &mockVoiceService{updateFn: func(_ voice.Actor, _ uuid.UUID, _ voice.UpdateInput) (*models.BrandVoice, error) {
		return nil, voice.ErrInvalidStatus
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPut, "/api/v1/voices/"+id.String(),
		map[string]string{"status": "archived"}, testPrincipal(), map[string]string{"voiceID": id.String()})
	NewUpdateVoiceHandler(svc)(rec, req)

	code, errCode := parseErr(t, rec)
	if code != http.StatusBadRequest || errCode != "VALIDATION_ERROR" {
		t.Errorf("expected 400 VALIDATION_ERROR, got %d %s", code, errCode)
	}
}

func TestUpdateVoiceHandler_WrongTenantLooksLikeMissing(t *testing.T) {
	id := uuid.New()
	svc := &mockVoiceService{updateFn: func(_ voice.Actor, _ uuid.UUID, _ voice.UpdateInput) (*models.BrandVoice, error) {
		return nil, store.ErrNotFound
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPut, "/api/v1/voices/"+id.String(),
		map[string]string{"name": "Bold"}, testPrincipal(), map[string]string{"voiceID": id.String()})
	NewUpdateVoiceHandler(svc)(rec, req)

	code, errCode := parseErr(t, rec)
	if code != http.StatusNotFound || errCode != "NOT_FOUND" {
		t.Errorf("expected 404 NOT_FOUND, got %d %s", code, errCode)
	}
}
