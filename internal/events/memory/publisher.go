package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/profit-distribution-tracker/internal/interfaces"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models/events"
)

// Publisher keeps published events in memory. It is used when no broker
// is configured and by tests.
type Publisher struct {
	mu     sync.Mutex
	events []events.Event
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (p *Publisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	copied := make([]events.Event, len(p.events))
	copy(copied, p.events)
	return copied
}

func (p *Publisher) Close() error { return nil }

var _ interfaces.EventPublisher = (*Publisher)(nil)
