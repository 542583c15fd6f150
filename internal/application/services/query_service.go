package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/providers"
	"github.com/farmguru/backend/internal/domain/repositories"
	"github.com/farmguru/backend/internal/infrastructure/observability"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

// retrievalLimit caps the passages handed to synthesis.
const retrievalLimit = 5

// similarityFloor drops weak retrieval hits before synthesis.
const similarityFloor = 0.3

// logTimeout bounds the detached best-effort log write.
const logTimeout = 5 * time.Second

// QueryResponse is the resolved answer envelope returned to clients,
// carrying the display band and escalation decision alongside the result.
type QueryResponse struct {
	entities.QueryResult
	Band     entities.ConfidenceBand `json:"band"`
	Escalate bool                    `json:"escalate"`
}

// QueryService runs the submission pipeline: route the question to an
// agent, retrieve grounding passages, attempt remote synthesis exactly
// once, and fall back to a deterministic canned result when the remote
// side is unavailable. Every accepted submission yields exactly one
// result; there is no error terminal state past validation.
type QueryService struct {
	answerProvider providers.AnswerProvider
	searchRepo     repositories.DocumentSearchRepository
	docRepo        repositories.DocumentRepository
	logRepo        repositories.QueryLogRepository
	imageRepo      repositories.ImageRepository
	eventBus       providers.EventBus
	metrics        *observability.Metrics
}

// NewQueryService creates a new query service. answerProvider, searchRepo,
// eventBus and metrics may be nil; the pipeline degrades gracefully.
func NewQueryService(
	answerProvider providers.AnswerProvider,
	searchRepo repositories.DocumentSearchRepository,
	docRepo repositories.DocumentRepository,
	logRepo repositories.QueryLogRepository,
	imageRepo repositories.ImageRepository,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *QueryService {
	return &QueryService{
		answerProvider: answerProvider,
		searchRepo:     searchRepo,
		docRepo:        docRepo,
		logRepo:        logRepo,
		imageRepo:      imageRepo,
		eventBus:       eventBus,
		metrics:        metrics,
	}
}

// Submit resolves one query. The only error it can return is validation;
// once a submission is accepted the fallback resolver guarantees a result.
func (s *QueryService) Submit(ctx context.Context, req *entities.QueryRequest) (*QueryResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" && req.ImageID == "" {
		return nil, apperrors.NewValidationError("query text is required")
	}

	lang := req.Lang
	if lang == "" {
		lang = "en"
	}

	hasImage := req.ImageID != ""
	if hasImage {
		text = s.appendImageCaption(ctx, text, req.ImageID)
	}

	agent := RouteAgent(text)
	docs := s.retrieve(ctx, text)

	var result *entities.QueryResult
	outcome := s.synthesize(ctx, providers.SynthesisInput{Question: text, Agent: agent, Docs: docs})
	if outcome.Unavailable {
		result = ResolveFallback(text, hasImage, agent)
	} else {
		result = outcome.Result
	}

	resp := &QueryResponse{
		QueryResult: *result,
		Band:        result.Band(),
		Escalate:    result.Escalate(),
	}

	s.logResolved(req.UserID, text, lang, result)
	s.publishEvents(req.UserID, text, result, resp.Escalate)
	observability.RecordQueryMetric(ctx, s.metrics, string(agent), result.Meta.Fallback, resp.Escalate)

	return resp, nil
}

// History returns a user's recent resolved queries, newest first.
func (s *QueryService) History(ctx context.Context, userID string, limit int) ([]entities.QueryLog, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	return s.logRepo.ListRecent(ctx, userID, limit)
}

// synthesize makes exactly one remote attempt. A missing provider is the
// same as an unavailable one.
func (s *QueryService) synthesize(ctx context.Context, input providers.SynthesisInput) providers.SynthesisOutcome {
	if s.answerProvider == nil {
		return providers.RemoteUnavailable()
	}
	return s.answerProvider.Synthesize(ctx, input)
}

// retrieve pulls grounding passages, preferring the search engine and
// falling back to database full-text search. Retrieval failure is not
// fatal; synthesis runs with whatever survived.
func (s *QueryService) retrieve(ctx context.Context, text string) []entities.RetrievedDoc {
	var docs []entities.RetrievedDoc
	var err error

	if s.searchRepo != nil {
		docs, err = s.searchRepo.Search(ctx, text, retrievalLimit)
		if err != nil {
			log.Warn().Err(err).Msg("search engine retrieval failed, trying database")
		}
	}

	if len(docs) == 0 && s.docRepo != nil {
		docs, err = s.docRepo.Search(ctx, text, retrievalLimit)
		if err != nil {
			log.Warn().Err(err).Msg("database retrieval failed")
		}
	}

	filtered := docs[:0]
	for _, doc := range docs {
		if doc.Similarity >= similarityFloor {
			filtered = append(filtered, doc)
		}
	}

	return filtered
}

// appendImageCaption folds the stored analysis label of an attached image
// into the question text so routing and synthesis can see it.
func (s *QueryService) appendImageCaption(ctx context.Context, text, imageID string) string {
	if s.imageRepo == nil {
		return text
	}

	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		log.Warn().Err(err).Str("image_id", imageID).Msg("image lookup failed")
		return text
	}
	if image.Label == "" {
		return text
	}

	if text == "" {
		return "Image shows: " + image.Label
	}
	return text + " Image shows: " + image.Label
}

// logResolved appends the resolved pair to the audit log. The write is
// detached and best-effort: failures are logged and swallowed, and the
// caller never waits on it.
func (s *QueryService) logResolved(userID, question, lang string, result *entities.QueryResult) {
	if s.logRepo == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal query result for logging")
		return
	}

	entry := &entities.QueryLog{
		UserID:     userID,
		Question:   question,
		Agent:      result.Meta.Agent,
		Response:   payload,
		Confidence: result.Confidence,
		Flagged:    result.Confidence < entities.EscalationThreshold,
		Lang:       lang,
		CreatedAt:  time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
		defer cancel()
		if err := s.logRepo.Append(ctx, entry); err != nil {
			log.Warn().Err(err).Msg("query log write failed")
		}
	}()
}

// publishEvents emits the escalation event for the expert feed.
func (s *QueryService) publishEvents(userID, question string, result *entities.QueryResult, escalate bool) {
	if s.eventBus == nil || !escalate {
		return
	}

	event := &entities.QueryEvent{
		ID:         uuid.New().String(),
		Type:       entities.EventQueryEscalated,
		UserID:     userID,
		Question:   question,
		Agent:      result.Meta.Agent,
		Answer:     result.Answer,
		Confidence: result.Confidence,
		Fallback:   result.Meta.Fallback,
		Timestamp:  time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
		defer cancel()
		if err := s.eventBus.Publish(ctx, providers.EscalationChannel, event); err != nil {
			log.Warn().Err(err).Msg("failed to publish escalation event")
		}
	}()
}
