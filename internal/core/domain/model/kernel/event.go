package kernel

import "time"

// DomainEvent is implemented by every typed event raised by an aggregate.
// Events are collected by the unit of work and published to the change feed
// after a successful commit; subscribers fold them into their own view state
// instead of re-fetching whole collections.
type DomainEvent interface {
	// EventName is the stable routing name, e.g. "order.item_ready".
	EventName() string

	// TenantID scopes the event; the change feed never crosses tenants.
	TenantID() UUID

	// OccurredAt is the time the mutation was applied.
	OccurredAt() time.Time
}

// EventCarrier is implemented by aggregates that record domain events.
// PullEvents drains the recorded events so each is published exactly once.
type EventCarrier interface {
	PullEvents() []DomainEvent
}
