package ports

import (
	"context"

	"github.com/gigforge/marketplace/internal/core/domain"
)

// AccountEventPublisher hands an event off for asynchronous delivery. It must
// not block the caller.
type AccountEventPublisher interface {
	Publish(event domain.AccountEvent)
}

// AccountEventSink delivers a single event to one downstream system.
type AccountEventSink interface {
	Name() string
	Handle(ctx context.Context, event domain.AccountEvent) error
}
