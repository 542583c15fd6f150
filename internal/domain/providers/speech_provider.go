package providers

import "context"

// TranscriptionTag discriminates the outcome of a transcription attempt.
type TranscriptionTag string

const (
	TranscriptionTranscribed TranscriptionTag = "transcribed"
	TranscriptionUnsupported TranscriptionTag = "unsupported"
	TranscriptionFailed      TranscriptionTag = "failed"
	TranscriptionCancelled   TranscriptionTag = "cancelled"
)

// TranscriptionOutcome is the tagged result of a single recognition pass.
type TranscriptionOutcome struct {
	Tag        TranscriptionTag `json:"status"`
	Transcript string           `json:"transcript,omitempty"`
	Reason     string           `json:"reason,omitempty"`
}

// Transcribed builds a successful outcome.
func Transcribed(text string) TranscriptionOutcome {
	return TranscriptionOutcome{Tag: TranscriptionTranscribed, Transcript: text}
}

// TranscriptionUnavailable builds the capability-missing outcome.
func TranscriptionUnavailable() TranscriptionOutcome {
	return TranscriptionOutcome{Tag: TranscriptionUnsupported, Reason: "speech recognition is not configured"}
}

// TranscriptionError builds a failure outcome.
func TranscriptionError(reason string) TranscriptionOutcome {
	return TranscriptionOutcome{Tag: TranscriptionFailed, Reason: reason}
}

// TranscriptionCancelledOutcome builds the caller-cancelled outcome.
func TranscriptionCancelledOutcome() TranscriptionOutcome {
	return TranscriptionOutcome{Tag: TranscriptionCancelled}
}

// SpeechProvider performs single-shot speech recognition: no interim
// results, one transcript or one failure per call. Cancellation via the
// context discards any in-flight transcript.
type SpeechProvider interface {
	Transcribe(ctx context.Context, audio []byte, mimeType, lang string) TranscriptionOutcome
}
