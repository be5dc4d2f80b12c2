package models

import (
	"time"

	"github.com/google/uuid"
)

// BrandVoiceVersion is an immutable snapshot of a brand voice at a point in
// time. Version numbers are unique and strictly increasing per voice.
// Restoring a version never mutates it; a new version is created instead.
type BrandVoiceVersion struct {
	ID            uuid.UUID     `db:"id"             json:"id"`
	BrandVoiceID  uuid.UUID     `db:"brand_voice_id" json:"brand_voice_id"`
	VersionNumber int           `db:"version_number" json:"version_number"`
	Name          string        `db:"name"           json:"name"`
	Description   string        `db:"description"    json:"description"`
	VoiceMetadata VoiceMetadata `db:"voice_metadata" json:"voice_metadata"`
	Dos           string        `db:"dos"            json:"dos"`
	Donts         string        `db:"donts"          json:"donts"`
	Status        string        `db:"status"         json:"status"`
	CreatedByID   uuid.UUID     `db:"created_by_id"  json:"created_by_id"`
	CreatedAt     time.Time     `db:"created_at"     json:"created_at"`
	PublishedAt   *time.Time    `db:"published_at"   json:"published_at,omitempty"`
}
