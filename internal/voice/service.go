// Package voice implements brand voice lifecycle management: creation,
// significant-change versioning, publication, and restore.
package voice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/voicehub/voicehub/internal/store"
	"github.com/voicehub/voicehub/pkg/models"
)

var (
	ErrForbidden     = errors.New("role is not allowed to modify voices")
	ErrNameRequired  = errors.New("voice name is required")
	ErrInvalidStatus = errors.New("invalid voice status")
)

// Actor identifies who is performing an operation.
type Actor struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Role     string
}

func (a Actor) canEdit() bool {
	return a.Role == models.RoleAdmin || a.Role == models.RoleBusinessUser
}

// CreateInput carries the fields for a new brand voice.
type CreateInput struct {
	Name          string
	Description   string
	VoiceMetadata models.VoiceMetadata
	Dos           string
	Donts         string
	SourceContent *string
	Status        string
}

// UpdateInput carries a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Name          *string
	Description   *string
	VoiceMetadata *models.VoiceMetadata
	Dos           *string
	Donts         *string
	SourceContent *string
	Status        *string
}

// Service owns brand voice reads and writes.
type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Create inserts a new draft voice at version 1.
func (s *Service) Create(ctx context.Context, actor Actor, input CreateInput) (*models.BrandVoice, error) {
	if !actor.canEdit() {
		return nil, ErrForbidden
	}
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	now := time.Now().UTC()
	voice := &models.BrandVoice{
		ID:            uuid.New(),
		TenantID:      actor.TenantID,
		Name:          input.Name,
		Description:   input.Description,
		Version:       1,
		VoiceMetadata: input.VoiceMetadata,
		Dos:           input.Dos,
		Donts:         input.Donts,
		SourceContent: input.SourceContent,
		Status:        status,
		CreatedByID:   actor.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if status == models.StatusPublished {
		voice.PublishedAt = &now
	}

	if err := s.store.CreateBrandVoice(ctx, voice); err != nil {
		return nil, err
	}
	return voice, nil
}

// Get returns one voice within the actor's tenant.
func (s *Service) Get(ctx context.Context, actor Actor, voiceID uuid.UUID) (*models.BrandVoice, error) {
	return s.store.GetBrandVoice(ctx, voiceID, actor.TenantID)
}

// List returns the actor's tenant voices, optionally filtered by status.
func (s *Service) List(ctx context.Context, actor Actor, status string, page, limit int) ([]*models.BrandVoice, int, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.store.ListBrandVoices(ctx, store.VoiceFilter{
		TenantID: actor.TenantID,
		Status:   status,
		Page:     page,
		Limit:    limit,
	})
}

// ListAll returns voices across every tenant. Callers must gate this behind
// an admin role check.
func (s *Service) ListAll(ctx context.Context, status string, page, limit int) ([]*models.BrandVoice, int, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.store.ListBrandVoices(ctx, store.VoiceFilter{
		Status: status,
		Page:   page,
		Limit:  limit,
	})
}

// significantChange reports whether the update touches a field that warrants
// a version snapshot. Status flips alone do not.
func significantChange(voice *models.BrandVoice, input UpdateInput) bool {
	if input.Name != nil && *input.Name != voice.Name {
		return true
	}
	if input.Description != nil && *input.Description != voice.Description {
		return true
	}
	if input.VoiceMetadata != nil && *input.VoiceMetadata != voice.VoiceMetadata {
		return true
	}
	if input.Dos != nil && *input.Dos != voice.Dos {
		return true
	}
	if input.Donts != nil && *input.Donts != voice.Donts {
		return true
	}
	return false
}

// Update applies a partial update. A change to any content field snapshots
// the pre-update state as a version and increments the version number.
// Setting status to published stamps published_at and requires a name.
func (s *Service) Update(ctx context.Context, actor Actor, voiceID uuid.UUID, input UpdateInput) (*models.BrandVoice, error) {
	if !actor.canEdit() {
		return nil, ErrForbidden
	}

	voice, err := s.store.GetBrandVoice(ctx, voiceID, actor.TenantID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.Status != nil && !models.ValidStatus(*input.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *input.Status)
	}

	now := time.Now().UTC()

	var snapshot *models.BrandVoiceVersion
	if significantChange(voice, input) {
		snapshot = voice.Snapshot(actor.UserID, now)
		voice.Version++
	}

	if input.Name != nil {
		voice.Name = *input.Name
	}
	if input.Description != nil {
		voice.Description = *input.Description
	}
	if input.VoiceMetadata != nil {
		voice.VoiceMetadata = *input.VoiceMetadata
	}
	if input.Dos != nil {
		voice.Dos = *input.Dos
	}
	if input.Donts != nil {
		voice.Donts = *input.Donts
	}
	if input.SourceContent != nil {
		voice.SourceContent = input.SourceContent
	}
	if input.Status != nil && *input.Status != voice.Status {
		if *input.Status == models.StatusPublished {
			if voice.Name == "" {
				return nil, ErrNameRequired
			}
			voice.PublishedAt = &now
		}
		voice.Status = *input.Status
	}
	voice.UpdatedAt = now

	if err := s.store.UpdateBrandVoice(ctx, voice, snapshot); err != nil {
		return nil, err
	}
	return voice, nil
}

// Versions lists a voice's historical snapshots, newest first.
func (s *Service) Versions(ctx context.Context, actor Actor, voiceID uuid.UUID, page, limit int) ([]*models.BrandVoiceVersion, int, error) {
	if _, err := s.store.GetBrandVoice(ctx, voiceID, actor.TenantID); err != nil {
		return nil, 0, err
	}
	return s.store.ListVersions(ctx, voiceID, page, limit)
}

// Version returns one historical snapshot by version number.
func (s *Service) Version(ctx context.Context, actor Actor, voiceID uuid.UUID, versionNumber int) (*models.BrandVoiceVersion, error) {
	if _, err := s.store.GetBrandVoice(ctx, voiceID, actor.TenantID); err != nil {
		return nil, err
	}
	return s.store.GetVersion(ctx, voiceID, versionNumber)
}

// Restore copies a historical snapshot's content fields back onto the voice.
// The pre-restore state is snapshotted first, and the version number
// increments as with any significant change. Status and published_at are
// left untouched.
func (s *Service) Restore(ctx context.Context, actor Actor, voiceID uuid.UUID, versionNumber int) (*models.BrandVoice, error) {
	if !actor.canEdit() {
		return nil, ErrForbidden
	}

	voice, err := s.store.GetBrandVoice(ctx, voiceID, actor.TenantID)
	if err != nil {
		return nil, err
	}

	target, err := s.store.GetVersion(ctx, voiceID, versionNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	snapshot := voice.Snapshot(actor.UserID, now)

	voice.Name = target.Name
	voice.Description = target.Description
	voice.VoiceMetadata = target.VoiceMetadata
	voice.Dos = target.Dos
	voice.Donts = target.Donts
	voice.Version++
	voice.UpdatedAt = now

	if err := s.store.UpdateBrandVoice(ctx, voice, snapshot); err != nil {
		return nil, err
	}
	return voice, nil
}
