package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/voicehub/voicehub/internal/api/middleware"
	"github.com/voicehub/voicehub/internal/api/response"
	"github.com/voicehub/voicehub/pkg/models"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit

	HealthHandler http.HandlerFunc
	LoginHandler  http.HandlerFunc

	CreateVoiceHandler http.HandlerFunc
	ListVoicesHandler  http.HandlerFunc
	GetVoiceHandler    http.HandlerFunc
	UpdateVoiceHandler http.HandlerFunc

	ListVersionsHandler    http.HandlerFunc
	GetVersionHandler      http.HandlerFunc
	CompareVersionsHandler http.HandlerFunc
	RestoreVersionHandler  http.HandlerFunc

	AnalyzeHandler         http.HandlerFunc
	CompareVoicesHandler   http.HandlerFunc
	AnalysisHistoryHandler http.HandlerFunc

	AdminListVoicesHandler http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	// Public routes
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))
	r.Post("/api/v1/auth/login", orNotImplemented(deps.LoginHandler))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.RateLimit.Limit)

		r.Post("/api/v1/voices", orNotImplemented(deps.CreateVoiceHandler))
		r.Get("/api/v1/voices", orNotImplemented(deps.ListVoicesHandler))
		r.Get("/api/v1/voices/{voiceID}", orNotImplemented(deps.GetVoiceHandler))
		r.Put("/api/v1/voices/{voiceID}", orNotImplemented(deps.UpdateVoiceHandler))

		r.Get("/api/v1/voices/{voiceID}/versions", orNotImplemented(deps.ListVersionsHandler))
		// The compare route must sit above the numeric version route so chi
		// does not swallow "compare" as a version number.
		r.Get("/api/v1/voices/{voiceID}/versions/compare", orNotImplemented(deps.CompareVersionsHandler))
		r.Get("/api/v1/voices/{voiceID}/versions/{version}", orNotImplemented(deps.GetVersionHandler))
		r.Post("/api/v1/voices/{voiceID}/versions/{version}/restore", orNotImplemented(deps.RestoreVersionHandler))

		r.Get("/api/v1/voices/{voiceID}/analyses", orNotImplemented(deps.AnalysisHistoryHandler))

		r.Post("/api/v1/analysis/analyze", orNotImplemented(deps.AnalyzeHandler))
		r.Post("/api/v1/analysis/compare", orNotImplemented(deps.CompareVoicesHandler))

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireRole(models.RoleAdmin))

			r.Get("/api/v1/admin/voices", orNotImplemented(deps.AdminListVoicesHandler))
		})
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
