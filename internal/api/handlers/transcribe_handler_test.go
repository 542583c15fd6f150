package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmguru/backend/internal/api/handlers"
	"github.com/farmguru/backend/internal/domain/providers"
)

type stubSpeechProvider struct {
	outcome providers.TranscriptionOutcome

	gotAudio    []byte
	gotMimeType string
	gotLang     string
}

func (s *stubSpeechProvider) Transcribe(ctx context.Context, audio []byte, mimeType, lang string) providers.TranscriptionOutcome {
	s.gotAudio = audio
	s.gotMimeType = mimeType
	s.gotLang = lang
	return s.outcome
}

func multipartAudio(t *testing.T, lang string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="audio"; filename="clip.webm"`)
	header.Set("Content-Type", "audio/webm")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("audio-bytes"))
	require.NoError(t, err)

	if lang != "" {
		require.NoError(t, writer.WriteField("lang", lang))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestTranscribeHandler_Success(t *testing.T) {
	provider := &stubSpeechProvider{
		outcome: providers.Transcribed("mere tamatar ke daam kya hain"),
	}
	handler := handlers.NewTranscribeHandler(provider)

	body, contentType := multipartAudio(t, "hi")
	req := httptest.NewRequest("POST", "/api/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.Transcribe(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte("audio-bytes"), provider.gotAudio)
	assert.Equal(t, "audio/webm", provider.gotMimeType)
	assert.Equal(t, "hi", provider.gotLang)

	var response providers.TranscriptionOutcome
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, providers.TranscriptionTranscribed, response.Tag)
	assert.Equal(t, "mere tamatar ke daam kya hain", response.Transcript)
}

func TestTranscribeHandler_MissingAudio(t *testing.T) {
	handler := handlers.NewTranscribeHandler(&stubSpeechProvider{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("lang", "en"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/transcribe", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()

	handler.Transcribe(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTranscribeHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		outcome  providers.TranscriptionOutcome
		expected int
	}{
		{"transcribed", providers.Transcribed("hello"), http.StatusOK},
		{"cancelled", providers.TranscriptionCancelledOutcome(), http.StatusOK},
		{"unsupported", providers.TranscriptionUnavailable(), http.StatusNotImplemented},
		{"failed", providers.TranscriptionError("model rejected clip"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.NewTranscribeHandler(&stubSpeechProvider{outcome: tt.outcome})

			body, contentType := multipartAudio(t, "")
			req := httptest.NewRequest("POST", "/api/transcribe", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			handler.Transcribe(w, req)

			assert.Equal(t, tt.expected, w.Code)

			var response providers.TranscriptionOutcome
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.outcome.Tag, response.Tag)
		})
	}
}
