package entities

import "time"

// QueryEventType classifies pipeline events published on the bus.
type QueryEventType string

const (
	// EventQueryEscalated fires when a resolved query needs a human expert.
	EventQueryEscalated QueryEventType = "query.escalated"

	// EventQueryResolved fires for every resolved query.
	EventQueryResolved QueryEventType = "query.resolved"
)

// QueryEvent is a pipeline event consumed by the escalation feed.
type QueryEvent struct {
	ID         string         `json:"id"`
	Type       QueryEventType `json:"type"`
	UserID     string         `json:"user_id"`
	Question   string         `json:"question"`
	Agent      Agent          `json:"agent"`
	Answer     string         `json:"answer"`
	Confidence float64        `json:"confidence"`
	Fallback   bool           `json:"fallback"`
	Timestamp  time.Time      `json:"timestamp"`
}
