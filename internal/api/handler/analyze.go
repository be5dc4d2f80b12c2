package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/voicehub/voicehub/internal/ai"
	"github.com/voicehub/voicehub/internal/api/response"
	"github.com/voicehub/voicehub/internal/store"
	"github.com/voicehub/voicehub/pkg/models"
)

// Analyzer defines the analysis operations the handlers depend on.
type Analyzer interface {
	AnalyzeContent(ctx context.Context, params ai.AnalyzeParams) (*ai.Outcome, error)
	CompareVoices(ctx context.Context, params ai.CompareParams) (*ai.ComparisonResult, error)
	History(ctx context.Context, tenantID, voiceID uuid.UUID, limit int) ([]*models.ContentAnalysis, error)
}

// writeAnalysisError maps analysis errors onto HTTP responses.
func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ai.ErrEmptyContent),
		errors.Is(err, ai.ErrCorpusTooLong),
		errors.Is(err, ai.ErrTooFewVoices),
		errors.Is(err, ai.ErrTooManyVoices):
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(w, "Voice not found")
	case errors.Is(err, ai.ErrInferenceTimeout):
		response.Error(w, http.StatusGatewayTimeout, "AI_TIMEOUT",
			"The AI provider took too long to respond", nil)
	case errors.Is(err, ai.ErrProviderUnavailable):
		response.Error(w, http.StatusBadGateway, "AI_PROVIDER_UNAVAILABLE",
			"The AI provider is not available", nil)
	case errors.Is(err, ai.ErrInvalidResponse):
		response.Error(w, http.StatusBadGateway, "AI_INVALID_RESPONSE",
			"The AI provider returned an unusable response", nil)
	default:
		response.Internal(w)
	}
}

// NewAnalyzeHandler returns an http.HandlerFunc for POST /api/v1/analysis/analyze.
func NewAnalyzeHandler(svc Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		var req struct {
			VoiceID uuid.UUID `json:"voice_id"`
			Content string    `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.VoiceID == uuid.Nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "voice_id is required", nil)
			return
		}

		outcome, err := svc.AnalyzeContent(r.Context(), ai.AnalyzeParams{
			TenantID: p.TenantID,
			UserID:   p.UserID,
			VoiceID:  req.VoiceID,
			Content:  req.Content,
		})
		if err != nil {
			writeAnalysisError(w, err)
			return
		}
		response.JSON(w, outcome)
	}
}

// NewAnalysisHistoryHandler returns an http.HandlerFunc for
// GET /api/v1/voices/{voiceID}/analyses.
func NewAnalysisHistoryHandler(svc Analyzer) http.HandlerFunc {
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

		_, limit := pagination(r)
		analyses, err := svc.History(r.Context(), p.TenantID, voiceID, limit)
		if err != nil {
			writeAnalysisError(w, err)
			return
		}
		if analyses == nil {
			analyses = []*models.ContentAnalysis{}
		}
		response.JSON(w, analyses)
	}
}

// NewCompareVoicesHandler returns an http.HandlerFunc for POST /api/v1/analysis/compare.
func NewCompareVoicesHandler(svc Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principal(w, r)
		if !ok {
			return
		}

		var req struct {
			VoiceIDs []uuid.UUID `json:"voice_ids"`
			Content  string      `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		result, err := svc.CompareVoices(r.Context(), ai.CompareParams{
			TenantID: p.TenantID,
			UserID:   p.UserID,
			VoiceIDs: req.VoiceIDs,
			Content:  req.Content,
		})
		if err != nil {
			writeAnalysisError(w, err)
			return
		}
		response.JSON(w, result)
	}
}
