package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmguru/backend/internal/api/handlers"
	"github.com/farmguru/backend/internal/application/services"
	"github.com/farmguru/backend/internal/domain/entities"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

type stubQueryService struct {
	mu         sync.Mutex
	submitted  []*entities.QueryRequest
	response   *services.QueryResponse
	err        error
	blockFirst chan struct{}
	logs       []entities.QueryLog
	histErr    error
}

// Submit records the request. The first call blocks on blockFirst when
// set, so tests can hold a submission in flight.
func (s *stubQueryService) Submit(ctx context.Context, req *entities.QueryRequest) (*services.QueryResponse, error) {
	s.mu.Lock()
	s.submitted = append(s.submitted, req)
	first := len(s.submitted) == 1
	s.mu.Unlock()
	if first && s.blockFirst != nil {
		<-s.blockFirst
	}
	return s.response, s.err
}

func (s *stubQueryService) History(ctx context.Context, userID string, limit int) ([]entities.QueryLog, error) {
	return s.logs, s.histErr
}

func highConfidenceResponse() *services.QueryResponse {
	return &services.QueryResponse{
		QueryResult: entities.QueryResult{
			Answer:     "Water in the early morning.",
			Confidence: 0.85,
			Meta:       entities.QueryMeta{Agent: entities.AgentAdvisory},
		},
		Band:     entities.BandHigh,
		Escalate: false,
	}
}

func TestQueryHandler_SubmitQuery_Success(t *testing.T) {
	service := &stubQueryService{response: highConfidenceResponse()}
	handler := handlers.NewQueryHandler(service)

	body := `{"user_id":"farmer-1","text":"when should I irrigate?","lang":"en"}`
	req := httptest.NewRequest("POST", "/api/query", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitQuery(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, service.submitted, 1)
	assert.Equal(t, "farmer-1", service.submitted[0].UserID)

	var response map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, "Water in the early morning.", response["answer"])
	assert.Equal(t, "high", response["band"])
	assert.Equal(t, false, response["escalate"])
}

func TestQueryHandler_SubmitQuery_InvalidJSON(t *testing.T) {
	service := &stubQueryService{response: highConfidenceResponse()}
	handler := handlers.NewQueryHandler(service)

	req := httptest.NewRequest("POST", "/api/query", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.SubmitQuery(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.submitted)
}

func TestQueryHandler_SubmitQuery_ValidationError(t *testing.T) {
	service := &stubQueryService{err: apperrors.NewValidationError("query text or image is required")}
	handler := handlers.NewQueryHandler(service)

	req := httptest.NewRequest("POST", "/api/query", strings.NewReader(`{"user_id":"farmer-1"}`))
	w := httptest.NewRecorder()

	handler.SubmitQuery(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "query text or image is required", response["error"])
}

func TestQueryHandler_SubmitQuery_ConcurrentSameUserRejected(t *testing.T) {
	service := &stubQueryService{
		response:   highConfidenceResponse(),
		blockFirst: make(chan struct{}),
	}
	handler := handlers.NewQueryHandler(service)

	body := `{"user_id":"farmer-1","text":"first question"}`
	firstDone := make(chan *httptest.ResponseRecorder)
	go func() {
		req := httptest.NewRequest("POST", "/api/query", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.SubmitQuery(w, req)
		firstDone <- w
	}()

	// Wait for the first submission to enter the service before racing it.
	assert.Eventually(t, func() bool {
		service.mu.Lock()
		defer service.mu.Unlock()
		return len(service.submitted) == 1
	}, time.Second, 5*time.Millisecond)

	req := httptest.NewRequest("POST", "/api/query", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.SubmitQuery(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	close(service.blockFirst)
	first := <-firstDone
	assert.Equal(t, http.StatusOK, first.Code)

	// The guard is released once the first submission resolves.
	req = httptest.NewRequest("POST", "/api/query", strings.NewReader(body))
	w = httptest.NewRecorder()
	handler.SubmitQuery(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQueryHandler_SubmitQuery_DifferentUsersNotBlocked(t *testing.T) {
	service := &stubQueryService{
		response:   highConfidenceResponse(),
		blockFirst: make(chan struct{}),
	}
	handler := handlers.NewQueryHandler(service)

	firstDone := make(chan struct{})
	go func() {
		req := httptest.NewRequest("POST", "/api/query", strings.NewReader(`{"user_id":"farmer-1","text":"q"}`))
		handler.SubmitQuery(httptest.NewRecorder(), req)
		close(firstDone)
	}()

	assert.Eventually(t, func() bool {
		service.mu.Lock()
		defer service.mu.Unlock()
		return len(service.submitted) == 1
	}, time.Second, 5*time.Millisecond)

	// A second user submits while the first is still resolving.
	req := httptest.NewRequest("POST", "/api/query", strings.NewReader(`{"user_id":"farmer-2","text":"q"}`))
	w := httptest.NewRecorder()
	handler.SubmitQuery(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	close(service.blockFirst)
	<-firstDone
}

func TestQueryHandler_GetHistory_Success(t *testing.T) {
	service := &stubQueryService{
		logs: []entities.QueryLog{
			{ID: 2, UserID: "farmer-1", Question: "second"},
			{ID: 1, UserID: "farmer-1", Question: "first"},
		},
	}
	handler := handlers.NewQueryHandler(service)

	req := httptest.NewRequest("GET", "/api/query/history?user_id=farmer-1", nil)
	w := httptest.NewRecorder()

	handler.GetHistory(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Queries []entities.QueryLog `json:"queries"`
		Count   int                 `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, "second", response.Queries[0].Question)
}

func TestQueryHandler_GetHistory_MissingUserID(t *testing.T) {
	handler := handlers.NewQueryHandler(&stubQueryService{})

	req := httptest.NewRequest("GET", "/api/query/history", nil)
	w := httptest.NewRecorder()

	handler.GetHistory(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
