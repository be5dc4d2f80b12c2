package ai

import (
	"fmt"

	"github.com/voicehub/voicehub/internal/ai/anthropic"
	"github.com/voicehub/voicehub/internal/ai/ollama"
	"github.com/voicehub/voicehub/internal/ai/openai"
	"github.com/voicehub/voicehub/internal/config"
	"github.com/voicehub/voicehub/pkg/models"
)

// NewProvider constructs the appropriate inference provider based on config.
// Called once at server startup.
func NewProvider(cfg config.AIConfig) (models.VoiceAnalyzer, error) {
	switch cfg.Provider {
	case "ollama":
		return ollama.NewProvider(cfg.Ollama), nil
	case "openai":
		return openai.NewProvider(cfg.OpenAI), nil
	case "anthropic":
		return anthropic.NewProvider(cfg.Anthropic), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of ollama, openai, anthropic", cfg.Provider)
	}
}
