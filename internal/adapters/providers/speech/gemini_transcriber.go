package speech

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/farmguru/backend/internal/domain/providers"
)

// audioGenerator is the surface the transcriber needs from the Gemini client.
type audioGenerator interface {
	GenerateWithAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error)
}

// GeminiTranscriber implements single-shot speech recognition over the
// Gemini API. One transcript or one failure per call; a cancelled context
// discards any in-flight result.
type GeminiTranscriber struct {
	gen audioGenerator
}

var _ providers.SpeechProvider = (*GeminiTranscriber)(nil)

// NewGeminiTranscriber creates a Gemini-backed speech provider.
func NewGeminiTranscriber(gen audioGenerator) *GeminiTranscriber {
	return &GeminiTranscriber{gen: gen}
}

func (t *GeminiTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType, lang string) providers.TranscriptionOutcome {
	if len(audio) == 0 {
		return providers.TranscriptionError("audio payload is empty")
	}
	if !strings.HasPrefix(mimeType, "audio/") {
		return providers.TranscriptionError("unsupported content type: " + mimeType)
	}

	prompt := "Transcribe this audio verbatim. Respond with the transcript text only, no commentary."
	if lang != "" {
		prompt += " The speaker's language is " + lang + "."
	}

	raw, err := t.gen.GenerateWithAudio(ctx, prompt, audio, mimeType)
	if errors.Is(err, context.Canceled) || (err == nil && ctx.Err() != nil) {
		return providers.TranscriptionCancelledOutcome()
	}
	if err != nil {
		log.Warn().Err(err).Msg("transcription failed")
		return providers.TranscriptionError("speech recognition failed")
	}

	transcript := strings.TrimSpace(raw)
	if transcript == "" {
		return providers.TranscriptionError("empty transcript")
	}

	return providers.Transcribed(transcript)
}
