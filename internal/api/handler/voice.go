// Package handler contains one constructor per API endpoint. Each handler
// depends on a small interface so tests can swap in fakes.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	mw "github.com/voicehub/voicehub/internal/api/middleware"
	"github.com/voicehub/voicehub/internal/api/response"
	"github.com/voicehub/voicehub/internal/store"
	"github.com/voicehub/voicehub/internal/voice"
	"github.com/voicehub/voicehub/pkg/models"
)

// VoiceService defines the voice operations the handlers depend on.
type VoiceService interface {
	Create(ctx context.Context, actor voice.Actor, input voice.CreateInput) (*models.BrandVoice, error)
	Get(ctx context.Context, actor voice.Actor, voiceID uuid.UUID) (*models.BrandVoice, error)
	List(ctx context.Context, actor voice.Actor, status string, page, limit int) ([]*models.BrandVoice, int, error)
	ListAll(ctx context.Context, status string, page, limit int) ([]*models.BrandVoice, int, error)
	Update(ctx context.Context, actor voice.Actor, voiceID uuid.UUID, input voice.UpdateInput) (*models.BrandVoice, error)
}

func actorFrom(p mw.Principal) voice.Actor {
	return voice.Actor{UserID: p.UserID, TenantID: p.TenantID, Role: p.Role}
}

// principal pulls the authenticated identity or writes a 401.
func principal(w http.ResponseWriter, r *http.Request) (mw.Principal, bool) {
	p, ok := mw.GetPrincipal(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing authentication", nil)
	}
	return p, ok
}

func pagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, param))
}

// writeVoiceError maps service errors onto HTTP responses.
func writeVoiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(w, "Voice not found")
	case errors.Is(err, voice.ErrForbidden):
		response.Forbidden(w, "Your role cannot modify voices")
	case errors.Is(err, voice.ErrNameRequired):
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "name is required", nil)
	case errors.Is(err, voice.ErrInvalidStatus):
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	default:
		response.Internal(w)
	}
}

type voiceBody struct {
	Name          *string               `json:"name"`
	Description   *string               `json:"description"`
	VoiceMetadata *models.VoiceMetadata `json:"voice_metadata"`
	Dos           *string               `json:"dos"`
	Donts         *string               `json:"donts"`
	SourceContent *string               `json:"source_content"`
	Status        *string               `json:"status"`
}

// NewCreateVoiceHandler returns an http.HandlerFunc for POST /api/v1/voices.
func NewCreateVoiceHandler(svc VoiceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		var req voiceBody
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		input := voice.CreateInput{SourceContent: req.SourceContent}
		if req.Name != nil {
			input.Name = *req.Name
		}
		if req.Description != nil {
			input.Description = *req.Description
		}
		if req.VoiceMetadata != nil {
			input.VoiceMetadata = *req.VoiceMetadata
		}
		if req.Dos != nil {
			input.Dos = *req.Dos
		}
		if req.Donts != nil {
			input.Donts = *req.Donts
		}
		if req.Status != nil {
			input.Status = *req.Status
		}

		created, err := svc.Create(r.Context(), actorFrom(p), input)
		if err != nil {
			writeVoiceError(w, err)
			return
		}
		response.Created(w, created)
	}
}

// NewGetVoiceHandler returns an http.HandlerFunc for GET /api/v1/voices/{voiceID}.
func NewGetVoiceHandler(svc VoiceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		voiceID, err := pathUUID(r, "voiceID")
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "voiceID must be a UUID", nil)
			return
		}

		v, err := svc.Get(r.Context(), actorFrom(p), voiceID)
		if err != nil {
			writeVoiceError(w, err)
			return
		}
		response.JSON(w, v)
	}
}

// NewListVoicesHandler returns an http.HandlerFunc for GET /api/v1/voices.
func NewListVoicesHandler(svc VoiceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		page, limit := pagination(r)
		status := r.URL.Query().Get("status")

		voices, total, err := svc.List(r.Context(), actorFrom(p), status, page, limit)
		if err != nil {
			writeVoiceError(w, err)
			return
		}
		if voices == nil {
			voices = []*models.BrandVoice{}
		}
		response.Collection(w, voices, response.NewPaginationMeta(page, limit, total))
	}
}

// NewAdminListVoicesHandler returns an http.HandlerFunc for GET /api/v1/admin/voices.
// Routing must gate it behind the admin role.
func NewAdminListVoicesHandler(svc VoiceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := pagination(r)
		status := r.URL.Query().Get("status")

		voices, total, err := svc.ListAll(r.Context(), status, page, limit)
		if err != nil {
			writeVoiceError(w, err)
			return
		}
		if voices == nil {
			voices = []*models.BrandVoice{}
		}
		response.Collection(w, voices, response.NewPaginationMeta(page, limit, total))
	}
}

// NewUpdateVoiceHandler returns an http.HandlerFunc for PUT /api/v1/voices/{voiceID}.
func NewUpdateVoiceHandler(svc VoiceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		voiceID, err := pathUUID(r, "voiceID")
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "voiceID must be a UUID", nil)
			return
		}

		var req voiceBody
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		updated, err := svc.Update(r.Context(), actorFrom(p), voiceID, voice.UpdateInput{
			Name:          req.Name,
			Description:   req.Description,
			VoiceMetadata: req.VoiceMetadata,
			Dos:           req.Dos,
			Donts:         req.Donts,
			SourceContent: req.SourceContent,
			Status:        req.Status,
		})
		if err != nil {
			writeVoiceError(w, err)
			return
		}
		response.JSON(w, updated)
	}
}
