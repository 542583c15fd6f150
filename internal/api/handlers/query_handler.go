package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/farmguru/backend/internal/application/services"
	"github.com/farmguru/backend/internal/domain/entities"
)

// QueryService is the pipeline surface the handler needs.
type QueryService interface {
	Submit(ctx context.Context, req *entities.QueryRequest) (*services.QueryResponse, error)
	History(ctx context.Context, userID string, limit int) ([]entities.QueryLog, error)
}

// QueryHandler handles query submissions. A per-user in-flight guard
// rejects a second submission while one is still resolving, mirroring
// the client-side resubmission lock.
type QueryHandler struct {
	service  QueryService
	inFlight *inFlightGuard
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(service QueryService) *QueryHandler {
	return &QueryHandler{
		service:  service,
		inFlight: newInFlightGuard(),
	}
}

// SubmitQuery handles POST /api/query
func (h *QueryHandler) SubmitQuery(w http.ResponseWriter, r *http.Request) {
	var payload entities.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	guardKey := payload.UserID
	if guardKey == "" {
		guardKey = r.RemoteAddr
	}

	if !h.inFlight.acquire(guardKey) {
		respondWithError(w, http.StatusConflict, "a query is already in flight for this user")
		return
	}
	defer h.inFlight.release(guardKey)

	result, err := h.service.Submit(r.Context(), &payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetHistory handles GET /api/query/history
func (h *QueryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	logs, err := h.service.History(r.Context(), userID, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"queries": logs,
		"count":   len(logs),
	})
}

// inFlightGuard tracks which users currently have a submission resolving.
type inFlightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInFlightGuard() *inFlightGuard {
	return &inFlightGuard{active: make(map[string]struct{})}
}

func (g *inFlightGuard) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[key]; busy {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

func (g *inFlightGuard) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}
