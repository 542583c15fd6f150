package providers

import (
	"context"

	"github.com/farmguru/backend/internal/domain/entities"
)

// EscalationChannel carries every query event needing expert attention.
const EscalationChannel = "queries:escalations"

// EventBus publishes and subscribes to query pipeline events.
type EventBus interface {
	Publish(ctx context.Context, channel string, event *entities.QueryEvent) error
	Subscribe(ctx context.Context, channel string) (<-chan *entities.QueryEvent, error)
	Close() error
}
