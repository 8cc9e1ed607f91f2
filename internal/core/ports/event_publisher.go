package ports

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
)

// EventPublisher pushes committed domain events onto the change feed.
// Publishing is fire-and-forget: subscribers never acknowledge, and a
// publish failure is logged, not propagated to the command that committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent)
}
