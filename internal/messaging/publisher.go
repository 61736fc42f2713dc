package messaging

import (
	"context"

	"github.com/chainpass/ticketing/internal/domain"
)

// Publisher defines the interface for publishing ticketing events to the message broker.
// Publishing is best effort: callers log failures and carry on.
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishTicketEvent publishes a registration or check-in event
	PublishTicketEvent(ctx context.Context, event *domain.TicketEvent) error
	// Close closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every event, used when no broker is configured
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishTicketEvent(context.Context, *domain.TicketEvent) error {
	return nil
}

func (noopPublisher) Close() {}
