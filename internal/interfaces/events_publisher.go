package interfaces

import (
	"context"

	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models/events"
)

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}
