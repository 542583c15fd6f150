package ai

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/farmguru/backend/internal/domain/providers"
)

// textGenerator is the single-call surface the providers need from an
// LLM client.
type textGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiProvider synthesizes answers with the Gemini API. One call per
// Synthesize; any failure collapses into the unavailable outcome so the
// pipeline falls back instead of retrying.
type GeminiProvider struct {
	gen textGenerator
}

var _ providers.AnswerProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a Gemini-backed answer provider.
func NewGeminiProvider(gen textGenerator) *GeminiProvider {
	return &GeminiProvider{gen: gen}
}

func (p *GeminiProvider) Synthesize(ctx context.Context, input providers.SynthesisInput) providers.SynthesisOutcome {
	raw, err := p.gen.GenerateText(ctx, buildPrompt(input))
	if err != nil {
		log.Warn().Err(err).Str("agent", string(input.Agent)).Msg("gemini synthesis unavailable")
		return providers.RemoteUnavailable()
	}

	resp, err := parseSynthesis(raw)
	if err != nil {
		log.Warn().Err(err).Str("agent", string(input.Agent)).Msg("gemini synthesis output unusable")
		return providers.RemoteUnavailable()
	}

	return providers.Ok(resultFromSynthesis(resp, input))
}
