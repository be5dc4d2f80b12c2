package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/voicehub/voicehub/internal/api/response"
	"github.com/voicehub/voicehub/internal/diff"
	"github.com/voicehub/voicehub/internal/voice"
	"github.com/voicehub/voicehub/pkg/models"
)

// VersionService defines the version operations the handlers depend on.
type VersionService interface {
	Versions(ctx context.Context, actor voice.Actor, voiceID uuid.UUID, page, limit int) ([]*models.BrandVoiceVersion, int, error)
	Version(ctx context.Context, actor voice.Actor, voiceID uuid.UUID, versionNumber int) (*models.BrandVoiceVersion, error)
	Restore(ctx context.Context, actor voice.Actor, voiceID uuid.UUID, versionNumber int) (*models.BrandVoice, error)
}

func pathVersion(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "version"))
	if err != nil || n < 1 {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "version must be a positive integer", nil)
		return 0, false
	}
	return n, true
}

// NewListVersionsHandler returns an http.HandlerFunc for
// GET /api/v1/voices/{voiceID}/versions.
func NewListVersionsHandler(svc VersionService) http.HandlerFunc {
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

		page, limit := pagination(r)
		versions, total, err := svc.Versions(r.Context(), actorFrom(p), voiceID, page, limit)
		if err != nil {
			writeVoiceError(w, err)
			return
		}
		if versions == nil {
			versions = []*models.BrandVoiceVersion{}
		}
		response.Collection(w, versions, response.NewPaginationMeta(page, limit, total))
	}
}

// NewGetVersionHandler returns an http.HandlerFunc for
// GET /api/v1/voices/{voiceID}/versions/{version}.
func NewGetVersionHandler(svc VersionService) http.HandlerFunc {
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
		versionNumber, ok := pathVersion(w, r)
		if !ok {
			return
		}

		v, err := svc.Version(r.Context(), actorFrom(p), voiceID, versionNumber)
		if err != nil {
			writeVoiceError(w, err)
			return
		}
		response.JSON(w, v)
	}
}

// NewRestoreVersionHandler returns an http.HandlerFunc for
// POST /api/v1/voices/{voiceID}/versions/{version}/restore.
func NewRestoreVersionHandler(svc VersionService) http.HandlerFunc {
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
		versionNumber, ok := pathVersion(w, r)
		if !ok {
			return
		}

		restored, err := svc.Restore(r.Context(), actorFrom(p), voiceID, versionNumber)
		if err != nil {
			writeVoiceError(w, err)
			return
		}
		response.JSON(w, restored)
	}
}

// fieldDiffView decorates a field difference with display strings and the
// highlight color the console uses for that change type.
type fieldDiffView struct {
	Field      string `json:"field"`
	Label      string `json:"label"`
	Change     string `json:"change"`
	OldValue   any    `json:"old_value"`
	NewValue   any    `json:"new_value"`
	OldDisplay string `json:"old_display"`
	NewDisplay string `json:"new_display"`
	Color      string `json:"color"`
}

type comparisonView struct {
	Base        *models.BrandVoiceVersion `json:"base"`
	Compared    *models.BrandVoiceVersion `json:"compared"`
	Differences []fieldDiffView           `json:"differences"`
}

// NewCompareVersionsHandler returns an http.HandlerFunc for
// GET /api/v1/voices/{voiceID}/versions/compare?base=N&compared=M.
func NewCompareVersionsHandler(svc VersionService) http.HandlerFunc {
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

		baseNum, err := strconv.Atoi(r.URL.Query().Get("base"))
		if err != nil || baseNum < 1 {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "base must be a positive integer", nil)
			return
		}
		comparedNum, err := strconv.Atoi(r.URL.Query().Get("compared"))
		if err != nil || comparedNum < 1 {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "compared must be a positive integer", nil)
			return
		}

		actor := actorFrom(p)
		base, err := svc.Version(r.Context(), actor, voiceID, baseNum)
		if err != nil {
			writeVoiceError(w, err)
			return
		}
		compared, err := svc.Version(r.Context(), actor, voiceID, comparedNum)
		if err != nil {
			writeVoiceError(w, err)
			return
		}

		comparison := diff.Compare(base, compared, diff.DefaultFields())

		views := make([]fieldDiffView, 0, len(comparison.Differences))
		for _, d := range comparison.Differences {
			views = append(views, fieldDiffView{
				Field:      d.Field,
				Label:      d.Label,
				Change:     string(d.Change),
				OldValue:   d.OldValue,
				NewValue:   d.NewValue,
				OldDisplay: diff.FormatValue(d.OldValue, d.Field),
				NewDisplay: diff.FormatValue(d.NewValue, d.Field),
				Color:      diff.Color(d.Change),
			})
		}

		response.JSON(w, comparisonView{
			Base:        comparison.Base,
			Compared:    comparison.Compared,
			Differences: views,
		})
	}
}
