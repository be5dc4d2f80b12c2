// Package ollama implements models.VoiceAnalyzer against a local Ollama
// instance using its non-streaming generate API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/voicehub/voicehub/internal/config"
	"github.com/voicehub/voicehub/pkg/models"
	"github.com/voicehub/voicehub/pkg/prompt"
)

type Provider struct {
	cfg    config.OllamaConfig
	client *http.Client
}

func NewProvider(cfg config.OllamaConfig) *Provider {
	return &Provider{cfg: cfg, client: &http.Client{}}
}

func (p *Provider) Name() string { return "ollama" }

type generateRequest struct {
	Model  string `json:"model"`
	System string `json:"system"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (p *Provider) AnalyzeContent(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResponse, error) {
	payload, err := json.Marshal(generateRequest{
		Model:  p.cfg.Model,
		System: prompt.SystemPrompt,
		Prompt: prompt.Analysis(req.Voice, req.Content),
		Stream: false,
	})
	if err != nil {
		return models.AnalysisResponse{}, fmt.Errorf("encoding ollama request: %w", err)
	}

	u := p.cfg.BaseURL + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return models.AnalysisResponse{}, fmt.Errorf("building ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return models.AnalysisResponse{}, fmt.Errorf("calling ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.AnalysisResponse{}, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return models.AnalysisResponse{}, fmt.Errorf("decoding ollama response: %w", err)
	}

	return models.AnalysisResponse{
		Model:  p.cfg.Model,
		Report: genResp.Response,
		Scores: prompt.ParseScores(genResp.Response),
	}, nil
}

var _ models.VoiceAnalyzer = (*Provider)(nil)
