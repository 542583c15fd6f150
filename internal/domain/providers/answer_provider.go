package providers

import (
	"context"

	"github.com/farmguru/backend/internal/domain/entities"
)

// SynthesisInput is everything the provider needs to ground an answer.
type SynthesisInput struct {
	Question string
	Agent    entities.Agent
	Docs     []entities.RetrievedDoc
}

// SynthesisOutcome is the classified result of exactly one synthesis
// attempt. Either Result is set (Ok) or Unavailable is true — transport
// failures, non-2xx statuses and unparseable output all collapse into
// Unavailable so the caller branches on a tag, not an error value.
type SynthesisOutcome struct {
	Result      *entities.QueryResult
	Unavailable bool
}

// Ok returns a successful outcome.
func Ok(result *entities.QueryResult) SynthesisOutcome {
	return SynthesisOutcome{Result: result}
}

// RemoteUnavailable returns the failure outcome.
func RemoteUnavailable() SynthesisOutcome {
	return SynthesisOutcome{Unavailable: true}
}

// AnswerProvider synthesizes a grounded answer from retrieved passages.
// Implementations make exactly one attempt per call; retries and fallback
// are the caller's concern.
type AnswerProvider interface {
	Synthesize(ctx context.Context, input SynthesisInput) SynthesisOutcome
}
