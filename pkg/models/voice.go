// Package models contains shared data models used across the VoiceHub codebase.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle states for a brand voice record.
const (
	StatusDraft       = "draft"
	StatusPublished   = "published"
	StatusUnderReview = "under_review"
	StatusInactive    = "inactive"
)

// ValidStatus reports whether s is a recognized lifecycle status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusUnderReview, StatusInactive:
		return true
	}
	return false
}

// VoiceMetadata holds the style traits of a brand voice. Stored as JSONB.
type VoiceMetadata struct {
	Personality string `json:"personality,omitempty"`
	Tonality    string `json:"tonality,omitempty"`
}

// BrandVoice is a named content-style profile used to constrain generated
// marketing copy. The current record is mutable; every significant change is
// snapshotted into a BrandVoiceVersion before it is applied.
type BrandVoice struct {
	ID            uuid.UUID     `db:"id"             json:"id"`
	TenantID      uuid.UUID     `db:"tenant_id"      json:"tenant_id"`
	Name          string        `db:"name"           json:"name"`
	Description   string        `db:"description"    json:"description"`
	Version       int           `db:"version"        json:"version"`
	VoiceMetadata VoiceMetadata `db:"voice_metadata" json:"voice_metadata"`
	Dos           string        `db:"dos"            json:"dos"`
	Donts         string        `db:"donts"          json:"donts"`
	SourceContent *string       `db:"source_content" json:"source_content,omitempty"`
	Status        string        `db:"status"         json:"status"`
	CreatedByID   uuid.UUID     `db:"created_by_id"  json:"created_by_id"`
	CreatedAt     time.Time     `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"     json:"updated_at"`
	PublishedAt   *time.Time    `db:"published_at"   json:"published_at,omitempty"`
}

// Snapshot copies the voice's current content fields into an immutable
// version record carrying the voice's current version number.
func (v *BrandVoice) Snapshot(createdBy uuid.UUID, now time.Time) *BrandVoiceVersion {
	return &BrandVoiceVersion{
		ID:            uuid.New(),
		BrandVoiceID:  v.ID,
		VersionNumber: v.Version,
		Name:          v.Name,
		Description:   v.Description,
		VoiceMetadata: v.VoiceMetadata,
		Dos:           v.Dos,
		Donts:         v.Donts,
		Status:        v.Status,
		CreatedByID:   createdBy,
		CreatedAt:     now,
		PublishedAt:   v.PublishedAt,
	}
}
