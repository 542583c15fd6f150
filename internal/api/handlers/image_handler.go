package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/farmguru/backend/internal/domain/entities"
)

// multipartMemoryLimit caps in-memory multipart parsing.
const multipartMemoryLimit = 8 << 20

// ImageService is the upload surface the handler needs.
type ImageService interface {
	Upload(ctx context.Context, userID, filename, contentType string, data []byte) (*entities.CropImage, error)
	Get(ctx context.Context, id string) (*entities.CropImage, error)
}

// ImageHandler handles crop image uploads.
type ImageHandler struct {
	service ImageService
}

// NewImageHandler creates a new image handler
func NewImageHandler(service ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// UploadImage handles POST /api/images
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	// Read one byte past the limit so oversized uploads are detected
	// without buffering arbitrarily large bodies.
	data, err := io.ReadAll(io.LimitReader(file, entities.MaxImageSizeBytes+1))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	image, err := h.service.Upload(
		r.Context(),
		r.FormValue("user_id"),
		header.Filename,
		header.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, image)
}

// GetImage handles GET /api/images/{id}
func (h *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "image ID is required")
		return
	}

	image, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, image)
}
