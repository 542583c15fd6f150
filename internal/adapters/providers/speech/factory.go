package speech

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/farmguru/backend/internal/domain/providers"
	genaiclient "github.com/farmguru/backend/internal/infrastructure/clients/genai"
	"github.com/farmguru/backend/pkg/config"
)

// NewSpeechProvider builds the configured speech provider, falling back
// to the unavailable stub so the endpoint never 404s.
func NewSpeechProvider(ctx context.Context, cfg *config.SpeechConfig, geminiAPIKey string) providers.SpeechProvider {
	switch cfg.Provider {
	case "gemini":
		client, err := genaiclient.NewClient(ctx, geminiAPIKey, cfg.Model)
		if err != nil {
			log.Warn().Err(err).Msg("speech provider not configured, transcription disabled")
			return NewUnavailableProvider()
		}
		return NewGeminiTranscriber(client)
	default:
		log.Info().Str("provider", cfg.Provider).Msg("no speech provider configured, transcription disabled")
		return NewUnavailableProvider()
	}
}
