package handlers

import (
	"io"
	"net/http"

	"github.com/farmguru/backend/internal/domain/providers"
)

// maxAudioBytes caps voice clip uploads.
const maxAudioBytes = 10 << 20

// TranscribeHandler handles voice transcription requests.
type TranscribeHandler struct {
	provider providers.SpeechProvider
}

// NewTranscribeHandler creates a new transcribe handler
func NewTranscribeHandler(provider providers.SpeechProvider) *TranscribeHandler {
	return &TranscribeHandler{provider: provider}
}

// Transcribe handles POST /api/transcribe
func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "audio field is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read audio")
		return
	}

	outcome := h.provider.Transcribe(r.Context(), audio, header.Header.Get("Content-Type"), r.FormValue("lang"))

	respondWithJSON(w, statusForTranscription(outcome), outcome)
}

// statusForTranscription maps outcome tags onto HTTP statuses. Cancelled
// gets a 200 since the client has already walked away from the response.
func statusForTranscription(outcome providers.TranscriptionOutcome) int {
	switch outcome.Tag {
	case providers.TranscriptionTranscribed, providers.TranscriptionCancelled:
		return http.StatusOK
	case providers.TranscriptionUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusBadGateway
	}
}
