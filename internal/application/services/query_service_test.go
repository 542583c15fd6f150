package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/providers"
	"github.com/farmguru/backend/internal/domain/repositories"
)

type stubAnswerProvider struct {
	outcome providers.SynthesisOutcome
	gotDocs []entities.RetrievedDoc
}

func (s *stubAnswerProvider) Synthesize(_ context.Context, input providers.SynthesisInput) providers.SynthesisOutcome {
	s.gotDocs = input.Docs
	return s.outcome
}

type stubSearchRepo struct {
	docs []entities.RetrievedDoc
	err  error
}

func (s *stubSearchRepo) Search(_ context.Context, _ string, _ int) ([]entities.RetrievedDoc, error) {
	return s.docs, s.err
}

func (s *stubSearchRepo) Index(_ context.Context, _ *entities.Document) error { return nil }

type stubDocRepo struct {
	docs []entities.RetrievedDoc
	err  error
}

func (s *stubDocRepo) Search(_ context.Context, _ string, _ int) ([]entities.RetrievedDoc, error) {
	return s.docs, s.err
}

func (s *stubDocRepo) GetByIDs(_ context.Context, _ []string) ([]entities.Document, error) {
	return nil, nil
}

func (s *stubDocRepo) Upsert(_ context.Context, _ *entities.Document) error { return nil }

type stubLogRepo struct {
	mu      sync.Mutex
	entries []*entities.QueryLog
	err     error
}

func (s *stubLogRepo) Append(_ context.Context, log *entities.QueryLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, log)
	return s.err
}

func (s *stubLogRepo) ListRecent(_ context.Context, _ string, _ int) ([]entities.QueryLog, error) {
	return nil, nil
}

func (s *stubLogRepo) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *stubLogRepo) last() *entities.QueryLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

type stubImageRepo struct {
	image *entities.CropImage
	err   error
}

func (s *stubImageRepo) Create(_ context.Context, _ *entities.CropImage) error { return nil }

func (s *stubImageRepo) GetByID(_ context.Context, _ string) (*entities.CropImage, error) {
	return s.image, s.err
}

type stubEventBus struct {
	mu     sync.Mutex
	events []*entities.QueryEvent
}

func (s *stubEventBus) Publish(_ context.Context, _ string, event *entities.QueryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *stubEventBus) Subscribe(_ context.Context, _ string) (<-chan *entities.QueryEvent, error) {
	return nil, nil
}

func (s *stubEventBus) Close() error { return nil }

func (s *stubEventBus) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

var _ repositories.DocumentSearchRepository = (*stubSearchRepo)(nil)
var _ repositories.DocumentRepository = (*stubDocRepo)(nil)
var _ repositories.QueryLogRepository = (*stubLogRepo)(nil)
var _ repositories.ImageRepository = (*stubImageRepo)(nil)
var _ providers.EventBus = (*stubEventBus)(nil)

func okOutcome(answer string, confidence float64) providers.SynthesisOutcome {
	return providers.Ok(&entities.QueryResult{
		Answer:     answer,
		Confidence: confidence,
		Actions:    []string{"do the thing"},
		Meta:       entities.QueryMeta{Agent: entities.AgentGeneral},
	})
}

func TestSubmitRejectsEmptyText(t *testing.T) {
	svc := NewQueryService(nil, nil, nil, &stubLogRepo{}, nil, nil, nil)

	_, err := svc.Submit(context.Background(), &entities.QueryRequest{Text: "   "})
	assert.Error(t, err)
}

func TestSubmitAcceptsImageOnly(t *testing.T) {
	svc := NewQueryService(nil, nil, nil, nil, &stubImageRepo{err: errors.New("missing")}, nil, nil)

	resp, err := svc.Submit(context.Background(), &entities.QueryRequest{ImageID: "img-1"})
	require.NoError(t, err)
	// Image-only submission with remote unavailable resolves to the pest fallback.
	assert.Contains(t, resp.Answer, "Likely aphid infestation")
	assert.Equal(t, 0.65, resp.Confidence)
}

func TestSubmitUsesProviderResult(t *testing.T) {
	provider := &stubAnswerProvider{outcome: okOutcome("Water twice a week.", 0.9)}
	svc := NewQueryService(provider, nil, nil, nil, nil, nil, nil)

	resp, err := svc.Submit(context.Background(), &entities.QueryRequest{UserID: "u1", Text: "watering schedule"})
	require.NoError(t, err)
	assert.Equal(t, "Water twice a week.", resp.Answer)
	assert.Equal(t, entities.BandHigh, resp.Band)
	assert.False(t, resp.Escalate)
	assert.False(t, resp.Meta.Fallback)
}

func TestSubmitFallsBackWhenUnavailable(t *testing.T) {
	provider := &stubAnswerProvider{outcome: providers.RemoteUnavailable()}
	svc := NewQueryService(provider, nil, nil, nil, nil, nil, nil)

	resp, err := svc.Submit(context.Background(), &entities.QueryRequest{Text: "which fertilizer for tomato"})
	require.NoError(t, err)
	assert.Equal(t, 0.78, resp.Confidence)
	assert.True(t, resp.Meta.Fallback)
	assert.Equal(t, entities.BandHigh, resp.Band)
}

func TestSubmitFallsBackWithoutProvider(t *testing.T) {
	svc := NewQueryService(nil, nil, nil, nil, nil, nil, nil)

	resp, err := svc.Submit(context.Background(), &entities.QueryRequest{Text: "how to irrigate"})
	require.NoError(t, err)
	assert.True(t, resp.Meta.Fallback)
	assert.Equal(t, 0.85, resp.Confidence)
}

func TestSubmitSentinelEscalates(t *testing.T) {
	provider := &stubAnswerProvider{outcome: okOutcome(entities.SentinelAnswer, 0.95)}
	svc := NewQueryService(provider, nil, nil, nil, nil, nil, nil)

	resp, err := svc.Submit(context.Background(), &entities.QueryRequest{Text: "something obscure"})
	require.NoError(t, err)
	assert.True(t, resp.Escalate)
}

func TestSubmitLogsResolvedQuery(t *testing.T) {
	logRepo := &stubLogRepo{}
	provider := &stubAnswerProvider{outcome: okOutcome("Answer.", 0.5)}
	svc := NewQueryService(provider, nil, nil, logRepo, nil, nil, nil)

	_, err := svc.Submit(context.Background(), &entities.QueryRequest{UserID: "u1", Text: "a question", Lang: "hi"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return logRepo.count() == 1 }, time.Second, 10*time.Millisecond)

	entry := logRepo.last()
	assert.Equal(t, "u1", entry.UserID)
	assert.Equal(t, "a question", entry.Question)
	assert.Equal(t, "hi", entry.Lang)
	assert.True(t, entry.Flagged, "confidence 0.5 is below the flag threshold")
	assert.NotEmpty(t, entry.Response)
}

func TestSubmitLogFailureDoesNotBlock(t *testing.T) {
	logRepo := &stubLogRepo{err: errors.New("disk full")}
	provider := &stubAnswerProvider{outcome: okOutcome("Answer.", 0.9)}
	svc := NewQueryService(provider, nil, nil, logRepo, nil, nil, nil)

	resp, err := svc.Submit(context.Background(), &entities.QueryRequest{Text: "a question"})
	require.NoError(t, err)
	assert.Equal(t, "Answer.", resp.Answer)
}

func TestSubmitPublishesEscalationEvent(t *testing.T) {
	bus := &stubEventBus{}
	provider := &stubAnswerProvider{outcome: okOutcome("Not sure.", 0.3)}
	svc := NewQueryService(provider, nil, nil, nil, nil, bus, nil)

	_, err := svc.Submit(context.Background(), &entities.QueryRequest{UserID: "u1", Text: "hard question"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return bus.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestSubmitNoEventForConfidentAnswer(t *testing.T) {
	bus := &stubEventBus{}
	provider := &stubAnswerProvider{outcome: okOutcome("Sure thing.", 0.9)}
	svc := NewQueryService(provider, nil, nil, nil, nil, bus, nil)

	_, err := svc.Submit(context.Background(), &entities.QueryRequest{Text: "easy question"})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, bus.count())
}

func TestRetrievalPrefersSearchEngine(t *testing.T) {
	searchDocs := []entities.RetrievedDoc{
		{Document: entities.Document{ID: "s1"}, Similarity: 0.9},
	}
	provider := &stubAnswerProvider{outcome: okOutcome("Answer.", 0.9)}
	svc := NewQueryService(provider, &stubSearchRepo{docs: searchDocs}, &stubDocRepo{}, nil, nil, nil, nil)

	_, err := svc.Submit(context.Background(), &entities.QueryRequest{Text: "a question"})
	require.NoError(t, err)
	require.Len(t, provider.gotDocs, 1)
	assert.Equal(t, "s1", provider.gotDocs[0].ID)
}

func TestRetrievalFallsBackToDatabase(t *testing.T) {
	dbDocs := []entities.RetrievedDoc{
		{Document: entities.Document{ID: "d1"}, Similarity: 0.8},
	}
	provider := &stubAnswerProvider{outcome: okOutcome("Answer.", 0.9)}
	svc := NewQueryService(provider, &stubSearchRepo{err: errors.New("typesense down")}, &stubDocRepo{docs: dbDocs}, nil, nil, nil, nil)

	_, err := svc.Submit(context.Background(), &entities.QueryRequest{Text: "a question"})
	require.NoError(t, err)
	require.Len(t, provider.gotDocs, 1)
	assert.Equal(t, "d1", provider.gotDocs[0].ID)
}

func TestRetrievalDropsWeakMatches(t *testing.T) {
	docs := []entities.RetrievedDoc{
		{Document: entities.Document{ID: "strong"}, Similarity: 0.7},
		{Document: entities.Document{ID: "weak"}, Similarity: 0.1},
	}
	provider := &stubAnswerProvider{outcome: okOutcome("Answer.", 0.9)}
	svc := NewQueryService(provider, &stubSearchRepo{docs: docs}, nil, nil, nil, nil, nil)

	_, err := svc.Submit(context.Background(), &entities.QueryRequest{Text: "a question"})
	require.NoError(t, err)
	require.Len(t, provider.gotDocs, 1)
	assert.Equal(t, "strong", provider.gotDocs[0].ID)
}

func TestSubmitAppendsImageCaption(t *testing.T) {
	imageRepo := &stubImageRepo{image: &entities.CropImage{ID: "img-1", Label: "Pest damage"}}
	provider := &stubAnswerProvider{outcome: okOutcome("Treat for pests.", 0.8)}
	logRepo := &stubLogRepo{}
	svc := NewQueryService(provider, nil, nil, logRepo, imageRepo, nil, nil)

	_, err := svc.Submit(context.Background(), &entities.QueryRequest{Text: "what is wrong", ImageID: "img-1"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return logRepo.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "what is wrong Image shows: Pest damage", logRepo.last().Question)
}
