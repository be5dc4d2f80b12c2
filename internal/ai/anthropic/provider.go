// Package anthropic implements models.VoiceAnalyzer against the Anthropic
// messages API.
package anthropic

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

const apiVersion = "2023-06-01"

type Provider struct {
	cfg    config.AnthropicConfig
	client *http.Client
}

func NewProvider(cfg config.AnthropicConfig) *Provider {
	return &Provider{cfg: cfg, client: &http.Client{}}
}

func (p *Provider) Name() string { return "anthropic" }

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (p *Provider) AnalyzeContent(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResponse, error) {
	payload, err := json.Marshal(messageRequest{
		Model:     p.cfg.Model,
		MaxTokens: 2048,
		System:    prompt.SystemPrompt,
		Messages: []message{
			{Role: "user", Content: prompt.Analysis(req.Voice, req.Content)},
		},
	})
	if err != nil {
		return models.AnalysisResponse{}, fmt.Errorf("encoding anthropic request: %w", err)
	}

	u := p.cfg.BaseURL + "/v1/messages"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return models.AnalysisResponse{}, fmt.Errorf("building anthropic request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return models.AnalysisResponse{}, fmt.Errorf("calling anthropic: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.AnalysisResponse{}, fmt.Errorf("anthropic returned status %d", resp.StatusCode)
	}

	var msgResp messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msgResp); err != nil {
		return models.AnalysisResponse{}, fmt.Errorf("decoding anthropic response: %w", err)
	}

	var report string
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			report = block.Text
			break
		}
	}

	return models.AnalysisResponse{
		Model:  p.cfg.Model,
		Report: report,
		Scores: prompt.ParseScores(report),
	}, nil
}

var _ models.VoiceAnalyzer = (*Provider)(nil)
