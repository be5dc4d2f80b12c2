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

// --- mock VersionService ---

type mockVersionService struct {
	versionsFn func(actor voice.Actor, voiceID uuid.UUID, page, limit int) ([]*models.BrandVoiceVersion, int, error)
	versionFn  func(actor voice.Actor, voiceID uuid.UUID, versionNumber int) (*models.BrandVoiceVersion, error)
	restoreFn  func(actor voice.Actor, voiceID uuid.UUID, versionNumber int) (*models.BrandVoice, error)
}

func (m *mockVersionService) Versions(_ context.Context, actor voice.Actor, voiceID uuid.UUID, page, limit int) ([]*models.BrandVoiceVersion, int, error) {
	return m.versionsFn(actor, voiceID, page, limit)
}

func (m *mockVersionService) Version(_ context.Context, actor voice.Actor, voiceID uuid.UUID, versionNumber int) (*models.BrandVoiceVersion, error) {
	return m.versionFn(actor, voiceID, versionNumber)
}

func (m *mockVersionService) Restore(_ context.Context, actor voice.Actor, voiceID uuid.UUID, versionNumber int) (*models.BrandVoice, error) {
	return m.restoreFn(actor, voiceID, versionNumber)
}

func sampleVersion(voiceID uuid.UUID, number int) *models.BrandVoiceVersion {
	return &models.BrandVoiceVersion{
		ID:            uuid.New(),
		BrandVoiceID:  voiceID,
		VersionNumber: number,
		Name:          "Friendly",
		Description:   "Warm and casual",
		Status:        models.StatusDraft,
	}
}

// --- List versions ---

func TestListVersionsHandler_Success(t *testing.T) {
	voiceID := uuid.New()
	svc := &mockVersionService{versionsFn: func(_ voice.Actor, id uuid.UUID, _, _ int) ([]*models.BrandVoiceVersion, int, error) {
		if id != voiceID {
			t.Errorf("expected voice ID %s, got %s", voiceID, id)
		}
		return []*models.BrandVoiceVersion{
			sampleVersion(voiceID, 2),
			sampleVersion(voiceID, 1),
		}, 2, nil
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/v1/voices/"+voiceID.String()+"/versions",
		nil, testPrincipal(), map[string]string{"voiceID": voiceID.String()})
	NewListVersionsHandler(svc)(rec, req)

	items, meta := parseCollection(t, rec)
	if len(items) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(items))
	}
	first := items[0].(map[string]any)
	if first["version_number"] != float64(2) {
		t.Errorf("expected newest version first, got %v", first["version_number"])
	}
	if meta["total"] != float64(2) {
		t.Errorf("expected total 2, got %v", meta["total"])
	}
}

func TestListVersionsHandler_VoiceNotFound(t *testing.T) {
	voiceID := uuid.New()
	svc := &mockVersionService{versionsFn: func(_ voice.Actor, _ uuid.UUID, _, _ int) ([]*models.BrandVoiceVersion, int, error) {
		return nil, 0, store.ErrNotFound
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/v1/voices/"+voiceID.String()+"/versions",
		nil, testPrincipal(), map[string]string{"voiceID": voiceID.String()})
	NewListVersionsHandler(svc)(rec, req)

	code, errCode := parseErr(t, rec)
	if code != http.StatusNotFound || errCode != "NOT_FOUND" {
		t.Errorf("expected 404 NOT_FOUND, got %d %s", code, errCode)
	}
}

// --- Get version ---

func TestGetVersionHandler_Success(t *testing.T) {
	voiceID := uuid.New()
	svc := &mockVersionService{versionFn: func(_ voice.Actor, _ uuid.UUID, n int) (*models.BrandVoiceVersion, error) {
		if n != 3 {
			t.Errorf("expected version 3, got %d", n)
		}
		return sampleVersion(voiceID, n), nil
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/api/v1/voices/"+voiceID.String()+"/versions/3",
		nil, testPrincipal(), map[string]string{"voiceID": voiceID.String(), "version": "3"})
	NewGetVersionHandler(svc)(rec, req)

	data := parseData(t, rec, http.StatusOK)
	if data["version_number"] != float64(3) {
		t.Errorf("expected version 3 in body, got %v", data["version_number"])
	}
}

func TestGetVersionHandler_BadVersionNumber(t *testing.T) {
	voiceID := uuid.New()
	svc := &mockVersionService{versionFn: func(_ voice.Actor, _ uuid.UUID, _ int) (*models.BrandVoiceVersion, error) {
		t.Fatal("service should not be called")
		return nil, nil
	}}

	for _, bad := range []string{"zero", "0", "-1"} {
		rec := httptest.NewRecorder()
		req := authedRequest(t, http.MethodGet, "/api/v1/voices/"+voiceID.String()+"/versions/"+bad,
			nil, testPrincipal(), map[string]string{"voiceID": voiceID.String(), "version": bad})
		NewGetVersionHandler(svc)(rec, req)

		code, errCode := parseErr(t, rec)
		if code != http.StatusBadRequest || errCode != "INVALID_REQUEST" {
			t.Errorf("version %q: expected 400 INVALID_REQUEST, got %d %s", bad, code, errCode)
		}
	}
}

// --- Restore ---

func TestRestoreVersionHandler_Success(t *testing.T) {
	p := testPrincipal()
	voiceID := uuid.New()
	svc := &mockVersionService{restoreFn: func(actor voice.Actor, id uuid.UUID, n int) (*models.BrandVoice, error) {
		if actor.UserID != p.UserID {
			t.Errorf("expected actor %s, got %s", p.UserID, actor.UserID)
		}
		if n != 1 {
			t.Errorf("expected restore of version 1, got %d", n)
		}
		v := sampleVoice(p.TenantID)
		v.ID = id
		v.Version = 3
		return v, nil
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/api/v1/voices/"+voiceID.String()+"/versions/1/restore",
		nil, p, map[string]string{"voiceID": voiceID.String(), "version": "1"})
	NewRestoreVersionHandler(svc)(rec, req)

	data := parseData(t, rec, http.StatusOK)
	if data["version"] != float64(3) {
		t.Errorf("expected bumped version after restore, got %v", data["version"])
	}
}

func TestRestoreVersionHandler_Forbidden(t *testing.T) {
	voiceID := uuid.New()
	svc := &mockVersionService{restoreFn: func(_ voice.Actor, _ uuid.UUID, _ int) (*models.BrandVoice, error) {
		return nil, voice.ErrForbidden
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/api/v1/voices/"+voiceID.String()+"/versions/1/restore",
		nil, testPrincipal(), map[string]string{"voiceID": voiceID.String(), "version": "1"})
	NewRestoreVersionHandler(svc)(rec, req)

	code, errCode := parseErr(t, rec)
	if code != http.StatusForbidden || errCode != "FORBIDDEN" {
		t.Errorf("expected 403 FORBIDDEN, got %d %s", code, errCode)
	}
}

// --- Compare ---

func TestCompareVersionsHandler_Success(t *testing.T) {
	voiceID := uuid.New()
	base := sampleVersion(voiceID, 1)
	compared := sampleVersion(voiceID, 2)
	compared.Name = "Bold"
	compared.Dos = "Use short sentences"

	svc := &mockVersionService{versionFn: func(_ voice.Actor, _ uuid.UUID, n int) (*models.BrandVoiceVersion, error) {
		switch n {
		case 1:
			return base, nil
		case 2:
			return compared, nil
		}
		t.Fatalf("unexpected version request: %d", n)
		return nil, nil
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet,
		"/api/v1/voices/"+voiceID.String()+"/versions/compare?base=1&compared=2",
		nil, testPrincipal(), map[string]string{"voiceID": voiceID.String()})
	NewCompareVersionsHandler(svc)(rec, req)

	data := parseData(t, rec, http.StatusOK)
	diffs, ok := data["differences"].([]any)
	if !ok {
		t.Fatalf("expected differences array, got %v", data["differences"])
	}
	if len(diffs) != 2 {
		t.Fatalf("expected 2 differences (name, dos), got %d", len(diffs))
	}

	byField := map[string]map[string]any{}
	for _, d := range diffs {
		m := d.(map[string]any)
		byField[m["field"].(string)] = m
	}

	name := byField["name"]
	if name == nil {
		t.Fatal("expected a name difference")
	}
	if name["change"] != "modified" {
		t.Errorf("expected modified change, got %v", name["change"])
	}
	if name["old_display"] != "Friendly" || name["new_display"] != "Bold" {
		t.Errorf("expected display values, got %v -> %v", name["old_display"], name["new_display"])
	}
	if name["color"] != "amber" {
		t.Errorf("expected amber for modified, got %v", name["color"])
	}

	dos := byField["dos"]
	if dos == nil {
		t.Fatal("expected a dos difference")
	}
	if dos["change"] != "added" {
		t.Errorf("expected added change for empty->set, got %v", dos["change"])
	}
	if dos["color"] != "green" {
		t.Errorf("expected green for added, got %v", dos["color"])
	}
}

func TestCompareVersionsHandler_MissingParams(t *testing.T) {
	voiceID := uuid.New()
	svc := &mockVersionService{versionFn: func(_ voice.Actor, _ uuid.UUID, _ int) (*models.BrandVoiceVersion, error) {
		t.Fatal("service should not be called")
		return nil, nil
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet,
		"/api/v1/voices/"+voiceID.String()+"/versions/compare?base=1",
		nil, testPrincipal(), map[string]string{"voiceID": voiceID.String()})
	NewCompareVersionsHandler(svc)(rec, req)

	code, errCode := parseErr(t, rec)
	if code != http.StatusBadRequest || errCode != "INVALID_REQUEST" {
		t.Errorf("expected 400 INVALID_REQUEST, got %d %s", code, errCode)
	}
}

func TestCompareVersionsHandler_VersionNotFound(t *testing.T) {
	voiceID := uuid.New()
	svc := &mockVersionService{versionFn: func(_ voice.Actor, _ uuid.UUID, n int) (*models.BrandVoiceVersion, error) {
		return nil, store.ErrNotFound
	}}

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet,
		"/api/v1/voices/"+voiceID.String()+"/versions/compare?base=1&compared=2",
		nil, testPrincipal(), map[string]string{"voiceID": voiceID.String()})
	NewCompareVersionsHandler(svc)(rec, req)

	code, errCode := parseErr(t, rec)
	if code != http.StatusNotFound || errCode != "NOT_FOUND" {
		t.Errorf("expected 404 NOT_FOUND, got %d %s", code, errCode)
	}
}
