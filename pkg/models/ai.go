package models

import "context"

// VoiceAnalyzer is the core interface that all generative-AI integrations
// must implement. Never call specific providers directly — always inject
// this interface.
type VoiceAnalyzer interface {
	// AnalyzeContent judges a piece of content against a brand voice and
	// returns a markdown-style report with embedded alignment scores.
	AnalyzeContent(ctx context.Context, req AnalysisRequest) (AnalysisResponse, error)
	// Name returns the provider identifier (e.g., "ollama", "openai").
	Name() string
}

// AnalysisRequest is the input to a content-analysis operation.
type AnalysisRequest struct {
	Content string
	Voice   BrandVoice
}

// AnalysisResponse is the raw provider output before post-processing.
// Report holds the full generated text; Scores are the values parsed out of
// it, already clamped to [0, 1].
type AnalysisResponse struct {
	Model  string
	Report string
	Scores AlignmentScores
}
