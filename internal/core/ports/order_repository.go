// Package ports defines the contracts between the core and its adapters:
// repositories and the unit of work, the price feed, and the event publisher.
package ports

import (
	"context"

	"otcdesk/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add inserts a newly mirrored order. When the id is taken it writes
	// nothing and returns an errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order only if its stored status still equals
	// expected. When it does not, an errs.VersionIsInvalidError is returned
	// and nothing is written.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get returns the order or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id int64) (*order.Order, error)
}

// OrderEventRepository appends to the order audit trail.
type OrderEventRepository interface {
	Add(ctx context.Context, events ...*order.Event) error
}

// OrderEventPublisher fans committed events out to live subscribers.
// Publishing is best effort and never fails the command that produced them.
type OrderEventPublisher interface {
	Publish(ctx context.Context, events ...*order.Event)
}

// TransitionObserver records the outcome of every transition decision.
// Outcome is "APPLIED", "CONFLICT" or a rejection reason code.
type TransitionObserver interface {
	ObserveTransition(from, to order.Status, outcome string)
}
