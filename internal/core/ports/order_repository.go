// Package ports defines the contracts between the domain layer and
// infrastructure: repositories bound to a unit of work, the event
// publisher, and the read-mostly catalog and identity collaborators.
package ports

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Writes are conditional on the stored status so concurrent actors
// mutating the same order surface as state conflicts rather than lost
// updates.
type OrderRepository interface {
	// Add persists a new order aggregate with all its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order and its items.
	// Item status writes are compare-and-swap on the previously loaded
	// status; a row that moved under the caller returns a state conflict.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its items, scoped to tenantID.
	// An order belonging to another tenant is reported as not found.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)

	// GetOpenByEvent retrieves orders of an event that are not yet paid
	// and not fully retired, for waiter and cashier dashboards.
	GetOpenByEvent(ctx context.Context, tenantID, eventID kernel.UUID) ([]*order.Order, error)

	// GetWithRoutableItemsForMenuItem retrieves every order of the tenant
	// holding at least one pending or dispatched item of menuItemID.
	// Out-of-stock sweeps load these aggregates, reject the matching
	// items, and write them back in one transaction.
	GetWithRoutableItemsForMenuItem(ctx context.Context, tenantID, menuItemID kernel.UUID) ([]*order.Order, error)
}
