package models

import (
	"time"

	"github.com/google/uuid"
)

// AlignmentScores are the sub-scores a provider assigns to a piece of
// content when judged against a brand voice. All values are in [0, 1].
type AlignmentScores struct {
	Overall     float64 `json:"overall_score"`
	Personality float64 `json:"personality_score"`
	Tonality    float64 `json:"tonality_score"`
	Dos         float64 `json:"dos_alignment"`
	Donts       float64 `json:"donts_alignment"`
}

// ContentAnalysis is a persisted record of one analysis run: the provider's
// free-text report plus the scores and counts derived from it. Extracted
// suggestions are deliberately NOT persisted; they are recomputed from the
// report text on demand.
type ContentAnalysis struct {
	ID               uuid.UUID `db:"id"                json:"id"`
	TenantID         uuid.UUID `db:"tenant_id"         json:"tenant_id"`
	BrandVoiceID     uuid.UUID `db:"brand_voice_id"    json:"brand_voice_id"`
	VoiceVersion     int       `db:"voice_version"     json:"voice_version"`
	Provider         string    `db:"provider"          json:"provider"`
	Model            string    `db:"model"             json:"model"`
	Report           string    `db:"report"            json:"report"`
	OverallScore     float64   `db:"overall_score"     json:"overall_score"`
	PersonalityScore float64   `db:"personality_score" json:"personality_score"`
	TonalityScore    float64   `db:"tonality_score"    json:"tonality_score"`
	DosAlignment     float64   `db:"dos_alignment"     json:"dos_alignment"`
	DontsAlignment   float64   `db:"donts_alignment"   json:"donts_alignment"`
	IssueCount       int       `db:"issue_count"       json:"issue_count"`
	SuggestionCount  int       `db:"suggestion_count"  json:"suggestion_count"`
	CreatedByID      uuid.UUID `db:"created_by_id"     json:"created_by_id"`
	CreatedAt        time.Time `db:"created_at"        json:"created_at"`
}

// Scores bundles the persisted sub-scores back into an AlignmentScores value.
func (a *ContentAnalysis) Scores() AlignmentScores {
	return AlignmentScores{
		Overall:     a.OverallScore,
		Personality: a.PersonalityScore,
		Tonality:    a.TonalityScore,
		Dos:         a.DosAlignment,
		Donts:       a.DontsAlignment,
	}
}
