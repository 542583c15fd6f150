package speech

import (
	"context"

	"github.com/farmguru/backend/internal/domain/providers"
)

// UnavailableProvider is used when no speech backend is configured. The
// transcribe endpoint stays up and reports the capability as unsupported
// so clients fall back to typed input.
type UnavailableProvider struct{}

var _ providers.SpeechProvider = (*UnavailableProvider)(nil)

// NewUnavailableProvider creates the stub speech provider.
func NewUnavailableProvider() *UnavailableProvider {
	return &UnavailableProvider{}
}

func (p *UnavailableProvider) Transcribe(_ context.Context, _ []byte, _, _ string) providers.TranscriptionOutcome {
	return providers.TranscriptionUnavailable()
}
