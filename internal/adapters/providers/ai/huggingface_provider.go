package ai

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/farmguru/backend/internal/domain/providers"
)

// hfGenerator matches the Hugging Face inference client.
type hfGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// HuggingFaceProvider synthesizes answers through the Hugging Face
// inference API. Same single-attempt contract as the Gemini provider.
type HuggingFaceProvider struct {
	gen hfGenerator
}

var _ providers.AnswerProvider = (*HuggingFaceProvider)(nil)

// NewHuggingFaceProvider creates a Hugging Face backed answer provider.
func NewHuggingFaceProvider(gen hfGenerator) *HuggingFaceProvider {
	return &HuggingFaceProvider{gen: gen}
}

func (p *HuggingFaceProvider) Synthesize(ctx context.Context, input providers.SynthesisInput) providers.SynthesisOutcome {
	raw, err := p.gen.Generate(ctx, buildPrompt(input))
	if err != nil {
		log.Warn().Err(err).Str("agent", string(input.Agent)).Msg("huggingface synthesis unavailable")
		return providers.RemoteUnavailable()
	}

	resp, err := parseSynthesis(raw)
	if err != nil {
		log.Warn().Err(err).Str("agent", string(input.Agent)).Msg("huggingface synthesis output unusable")
		return providers.RemoteUnavailable()
	}

	return providers.Ok(resultFromSynthesis(resp, input))
}
