package entities

import "time"

// SentinelAnswer is the exact answer text the synthesis provider returns
// when it cannot ground a response in the retrieved passages. A result
// carrying it is escalated to a human expert regardless of its confidence.
const SentinelAnswer = "I don't know — please consult a local expert."

// Confidence thresholds for presentation and escalation.
const (
	EscalationThreshold = 0.6
	BandHighThreshold   = 0.7
	BandMediumThreshold = 0.4
)

// ConfidenceBand is the display band for a confidence score.
type ConfidenceBand string

const (
	BandHigh   ConfidenceBand = "high"
	BandMedium ConfidenceBand = "medium"
	BandLow    ConfidenceBand = "low"
)

// Agent identifies which advisory domain handles a query.
type Agent string

const (
	AgentWeather  Agent = "weather"
	AgentMarket   Agent = "market"
	AgentPolicy   Agent = "policy"
	AgentAdvisory Agent = "advisory"
	AgentVision   Agent = "vision"
	AgentGeneral  Agent = "general"
)

// QueryRequest is a farmer's submitted question. Immutable once accepted.
type QueryRequest struct {
	UserID  string `json:"user_id"`
	Text    string `json:"text"`
	Lang    string `json:"lang"`
	ImageID string `json:"image_id,omitempty"`
}

// Source is a citation backing an answer.
type Source struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// QueryMeta carries provenance for a resolved query.
type QueryMeta struct {
	Agent        Agent    `json:"agent"`
	Fallback     bool     `json:"fallback"`
	RetrievedIDs []string `json:"retrieved_ids"`
}

// QueryResult is the single resolved answer for a submission. It is
// produced either by the synthesis provider or by the fallback resolver;
// every accepted submission yields exactly one.
type QueryResult struct {
	Answer     string    `json:"answer"`
	Confidence float64   `json:"confidence"`
	Actions    []string  `json:"actions"`
	Sources    []Source  `json:"sources"`
	Meta       QueryMeta `json:"meta"`
}

// Band returns the display band for the result's confidence.
// Boundaries sit at 0.7 and 0.4; the lower band is inclusive.
func (r *QueryResult) Band() ConfidenceBand {
	switch {
	case r.Confidence >= BandHighThreshold:
		return BandHigh
	case r.Confidence >= BandMediumThreshold:
		return BandMedium
	default:
		return BandLow
	}
}

// Escalate reports whether the result should surface the expert-escalation
// affordance: confidence below the threshold, or the sentinel answer.
func (r *QueryResult) Escalate() bool {
	return r.Confidence < EscalationThreshold || r.Answer == SentinelAnswer
}

// QueryLog is an append-only record of a resolved query. Written once
// after resolution, never mutated, read newest-first.
type QueryLog struct {
	ID         int64     `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Question   string    `json:"question" db:"question"`
	Agent      Agent     `json:"agent" db:"agent"`
	Response   []byte    `json:"response" db:"response"`
	Confidence float64   `json:"confidence" db:"confidence"`
	Flagged    bool      `json:"flagged" db:"flagged"`
	Lang       string    `json:"lang" db:"lang"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
