// Package openai implements models.VoiceAnalyzer against the OpenAI
// chat completions API.
package openai

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
	cfg    config.OpenAIConfig
	client *http.Client
}

func NewProvider(cfg config.OpenAIConfig) *Provider {
	return &Provider{cfg: cfg, client: &http.Client{}}
}

func (p *Provider) Name() string { return "openai" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *Provider) AnalyzeContent(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResponse, error) {
	payload, err := json.Marshal(chatRequest{
		Model: p.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.SystemPrompt},
			{Role: "user", Content: prompt.Analysis(req.Voice, req.Content)},
		},
	})
	if err != nil {
		return models.AnalysisResponse{}, fmt.Errorf("encoding openai request: %w", err)
	}

	u := p.cfg.BaseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return models.AnalysisResponse{}, fmt.Errorf("building openai request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return models.AnalysisResponse{}, fmt.Errorf("calling openai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.AnalysisResponse{}, fmt.Errorf("openai returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return models.AnalysisResponse{}, fmt.Errorf("decoding openai response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return models.AnalysisResponse{}, nil
	}

	report := chatResp.Choices[0].Message.Content
	return models.AnalysisResponse{
		Model:  p.cfg.Model,
		Report: report,
		Scores: prompt.ParseScores(report),
	}, nil
}

var _ models.VoiceAnalyzer = (*Provider)(nil)
