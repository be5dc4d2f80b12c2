package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/voicehub/voicehub/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error

	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)

	CreateBrandVoice(ctx context.Context, voice *models.BrandVoice) error
	GetBrandVoice(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*models.BrandVoice, error)
	ListBrandVoices(ctx context.Context, filter VoiceFilter) ([]*models.BrandVoice, int, error)
	// UpdateBrandVoice persists the voice row and, when snapshot is non-nil,
	// inserts the prior state as a version record in the same transaction.
	UpdateBrandVoice(ctx context.Context, voice *models.BrandVoice, snapshot *models.BrandVoiceVersion) error

	ListVersions(ctx context.Context, voiceID uuid.UUID, page, limit int) ([]*models.BrandVoiceVersion, int, error)
	GetVersion(ctx context.Context, voiceID uuid.UUID, versionNumber int) (*models.BrandVoiceVersion, error)

	CreateAnalysis(ctx context.Context, analysis *models.ContentAnalysis) error
	ListAnalysesByVoice(ctx context.Context, voiceID uuid.UUID, tenantID uuid.UUID, limit int) ([]*models.ContentAnalysis, error)
}

// VoiceFilter narrows ListBrandVoices results. TenantID of uuid.Nil means
// no tenant restriction (admin listing).
type VoiceFilter struct {
	TenantID uuid.UUID
	Status   string
	Page     int
	Limit    int
}
