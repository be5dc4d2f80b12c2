// Package mock provides a configurable VoiceAnalyzer for tests.
package mock

import (
	"context"

	"github.com/voicehub/voicehub/internal/ai"
	"github.com/voicehub/voicehub/pkg/models"
)

// MockProvider satisfies models.VoiceAnalyzer for testing.
type MockProvider struct {
	Name_       string
	AnalyzeFunc func(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResponse, error)
}

func (m *MockProvider) Name() string { return m.Name_ }

func (m *MockProvider) AnalyzeContent(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResponse, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, req)
	}
	return models.AnalysisResponse{}, nil
}

// DefaultReport is the canned report returned by NewMockProvider. It carries
// every section a structured provider reply would have.
const DefaultReport = `**1. Executive Summary**
The content aligns reasonably well with the brand voice.

**2. Overall Scores**
overall score: 0.8
personality score: 0.75
tonality score: 0.7
dos score: 0.85
donts score: 0.8

**3. Key Issues**
- **Passive constructions**: Several sentences bury the actor.

**4. Improvement Suggestions**
- **Tighten the opening**: Lead with the customer benefit.
- **Moderate Use of Emojis**: Keep at most one per paragraph.

**5. Detailed Analysis**
Paragraph one reads on-voice; paragraph two drifts formal.`

// NewMockProvider returns a MockProvider with sensible default responses.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Name_: "mock",
		AnalyzeFunc: func(_ context.Context, _ models.AnalysisRequest) (models.AnalysisResponse, error) {
			return models.AnalysisResponse{
				Model:  "mock-v1",
				Report: DefaultReport,
				Scores: models.AlignmentScores{
					Overall:     0.8,
					Personality: 0.75,
					Tonality:    0.7,
					Dos:         0.85,
					Donts:       0.8,
				},
			}, nil
		},
	}
}

// NewFailingProvider returns a MockProvider that always returns the given error.
func NewFailingProvider(err error) *MockProvider {
	return &MockProvider{
		Name_: "mock-failing",
		AnalyzeFunc: func(_ context.Context, _ models.AnalysisRequest) (models.AnalysisResponse, error) {
			return models.AnalysisResponse{}, err
		},
	}
}

// NewTimeoutProvider returns a MockProvider that blocks until context is cancelled.
func NewTimeoutProvider() *MockProvider {
	return &MockProvider{
		Name_: "mock-timeout",
		AnalyzeFunc: func(ctx context.Context, _ models.AnalysisRequest) (models.AnalysisResponse, error) {
			<-ctx.Done()
			return models.AnalysisResponse{}, ai.ErrInferenceTimeout
		},
	}
}

// Compile-time check that MockProvider implements VoiceAnalyzer.
var _ models.VoiceAnalyzer = (*MockProvider)(nil)
