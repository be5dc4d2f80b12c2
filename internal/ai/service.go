package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voicehub/voicehub/internal/cache"
	"github.com/voicehub/voicehub/internal/report"
	"github.com/voicehub/voicehub/internal/store"
	"github.com/voicehub/voicehub/pkg/models"
)

const (
	// MaxAnalysisWords bounds the corpus accepted by a single analysis call.
	MaxAnalysisWords = 500
	// MaxComparisonVoices bounds how many voices one comparison may rank.
	MaxComparisonVoices = 5

	analysisCacheTTL = 15 * time.Minute
)

// AnalyzeParams holds validated parameters for a content analysis request.
type AnalyzeParams struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	VoiceID  uuid.UUID
	Content  string
}

// Outcome is the result of one analysis run: the persisted record plus the
// suggestions extracted from the report text.
type Outcome struct {
	Analysis    models.ContentAnalysis `json:"analysis"`
	Suggestions []report.Suggestion    `json:"suggestions"`
	Cached      bool                   `json:"-"`
}

// CompareParams holds validated parameters for a voice comparison request.
type CompareParams struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	VoiceIDs []uuid.UUID
	Content  string
}

// VoiceRanking is one voice's standing within a comparison.
type VoiceRanking struct {
	VoiceID   uuid.UUID              `json:"voice_id"`
	VoiceName string                 `json:"voice_name"`
	Scores    models.AlignmentScores `json:"scores"`
}

// ComparisonResult ranks the compared voices by overall alignment, best first.
type ComparisonResult struct {
	Rankings  []VoiceRanking `json:"rankings"`
	BestMatch VoiceRanking   `json:"best_match"`
}

// AnalysisService orchestrates provider calls, caching, and persistence for
// content analysis.
type AnalysisService struct {
	provider models.VoiceAnalyzer
	store    store.Store
	cache    cache.Cache
	timeout  time.Duration
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(provider models.VoiceAnalyzer, st store.Store, ca cache.Cache, timeout time.Duration) *AnalysisService {
	return &AnalysisService{
		provider: provider,
		store:    st,
		cache:    ca,
		timeout:  timeout,
	}
}

// AnalyzeContent judges content against a brand voice. Results are cached per
// (voice, version, content) so repeated runs against an unchanged voice do
// not hit the provider again.
func (s *AnalysisService) AnalyzeContent(ctx context.Context, params AnalyzeParams) (*Outcome, error) {
	words := len(strings.Fields(params.Content))
	if words == 0 {
		return nil, ErrEmptyContent
	}
	if words > MaxAnalysisWords {
		return nil, fmt.Errorf("%w: %d words, limit %d", ErrCorpusTooLong, words, MaxAnalysisWords)
	}

	voice, err := s.store.GetBrandVoice(ctx, params.VoiceID, params.TenantID)
	if err != nil {
		return nil, err
	}

	key := cache.AnalysisKey(voice.ID, voice.Version, contentHash(params.Content))
	if cached, found, err := s.cache.Get(ctx, key); err == nil && found {
		var outcome Outcome
		if err := json.Unmarshal(cached, &outcome); err == nil {
			outcome.Cached = true
			return &outcome, nil
		}
	}

	inferCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.provider.AnalyzeContent(inferCtx, models.AnalysisRequest{
		Content: params.Content,
		Voice:   *voice,
	})
	if err != nil {
		return nil, classifyProviderError(err)
	}
	if strings.TrimSpace(resp.Report) == "" {
		return nil, fmt.Errorf("%w: empty report", ErrInvalidResponse)
	}

	scores := clampScores(resp.Scores)
	counts := report.CalculateCounts(resp.Report)
	suggestions := report.ExtractSuggestions(resp.Report)

	analysis := models.ContentAnalysis{
		ID:               uuid.New(),
		TenantID:         params.TenantID,
		BrandVoiceID:     voice.ID,
		VoiceVersion:     voice.Version,
		Provider:         s.provider.Name(),
		Model:            resp.Model,
		Report:           resp.Report,
		OverallScore:     scores.Overall,
		PersonalityScore: scores.Personality,
		TonalityScore:    scores.Tonality,
		DosAlignment:     scores.Dos,
		DontsAlignment:   scores.Donts,
		IssueCount:       counts.Issues,
		SuggestionCount:  counts.Suggestions,
		CreatedByID:      params.UserID,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.store.CreateAnalysis(ctx, &analysis); err != nil {
		return nil, fmt.Errorf("storing analysis: %w", err)
	}

	outcome := &Outcome{Analysis: analysis, Suggestions: suggestions}
	if encoded, err := json.Marshal(outcome); err == nil {
		if err := s.cache.Set(ctx, key, encoded, analysisCacheTTL); err != nil {
			slog.Warn("caching analysis failed", "error", err, "voice_id", voice.ID)
		}
	}

	return outcome, nil
}

// CompareVoices analyzes the same content against several voices and ranks
// them by overall alignment score, best match first.
func (s *AnalysisService) CompareVoices(ctx context.Context, params CompareParams) (*ComparisonResult, error) {
	if len(params.VoiceIDs) < 2 {
		return nil, ErrTooFewVoices
	}
	if len(params.VoiceIDs) > MaxComparisonVoices {
		return nil, fmt.Errorf("%w: %d voices, limit %d", ErrTooManyVoices, len(params.VoiceIDs), MaxComparisonVoices)
	}

	rankings := make([]VoiceRanking, 0, len(params.VoiceIDs))
	for _, voiceID := range params.VoiceIDs {
		voice, err := s.store.GetBrandVoice(ctx, voiceID, params.TenantID)
		if err != nil {
			return nil, err
		}

		outcome, err := s.AnalyzeContent(ctx, AnalyzeParams{
			TenantID: params.TenantID,
			UserID:   params.UserID,
			VoiceID:  voiceID,
			Content:  params.Content,
		})
		if err != nil {
			return nil, fmt.Errorf("analyzing against voice %q: %w", voice.Name, err)
		}

		rankings = append(rankings, VoiceRanking{
			VoiceID:   voice.ID,
			VoiceName: voice.Name,
			Scores:    outcome.Analysis.Scores(),
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Scores.Overall > rankings[j].Scores.Overall
	})

	return &ComparisonResult{
		Rankings:  rankings,
		BestMatch: rankings[0],
	}, nil
}

// History lists recent persisted analyses for a voice.
func (s *AnalysisService) History(ctx context.Context, tenantID, voiceID uuid.UUID, limit int) ([]*models.ContentAnalysis, error) {
	if _, err := s.store.GetBrandVoice(ctx, voiceID, tenantID); err != nil {
		return nil, err
	}
	return s.store.ListAnalysesByVoice(ctx, voiceID, tenantID, limit)
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func clampScores(s models.AlignmentScores) models.AlignmentScores {
	s.Overall = clamp(s.Overall)
	s.Personality = clamp(s.Personality)
	s.Tonality = clamp(s.Tonality)
	s.Dos = clamp(s.Dos)
	s.Donts = clamp(s.Donts)
	return s
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// classifyProviderError maps transport failures onto the package sentinels.
func classifyProviderError(err error) error {
	if errors.Is(err, ErrInferenceTimeout) || errors.Is(err, ErrProviderUnavailable) || errors.Is(err, ErrInvalidResponse) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrInferenceTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrInferenceTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}
