package ai

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/farmguru/backend/internal/domain/providers"
	genaiclient "github.com/farmguru/backend/internal/infrastructure/clients/genai"
	"github.com/farmguru/backend/internal/infrastructure/clients/huggingface"
	"github.com/farmguru/backend/pkg/config"
)

// NewAnswerProvider builds the configured synthesis provider. Returns nil
// when no provider is configured; the pipeline then runs fallback-only.
func NewAnswerProvider(ctx context.Context, cfg *config.LLMConfig) providers.AnswerProvider {
	switch cfg.Provider {
	case "gemini":
		client, err := genaiclient.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn().Err(err).Msg("gemini not configured, answers will use fallback only")
			return nil
		}
		return NewGeminiProvider(client)
	case "huggingface":
		client, err := huggingface.NewClient(cfg.HFAPIKey, cfg.HFModel, time.Duration(cfg.TimeoutSeconds)*time.Second)
		if err != nil {
			log.Warn().Err(err).Msg("huggingface not configured, answers will use fallback only")
			return nil
		}
		return NewHuggingFaceProvider(client)
	default:
		log.Info().Str("provider", cfg.Provider).Msg("no synthesis provider configured, answers will use fallback only")
		return nil
	}
}
