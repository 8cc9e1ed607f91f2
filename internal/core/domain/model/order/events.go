package order

import (
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
)

// baseEvent carries the fields every order event shares.
type baseEvent struct {
	tenantID   kernel.UUID
	orderID    kernel.UUID
	occurredAt time.Time
}

// TenantID returns the tenant the event belongs to.
func (e baseEvent) TenantID() kernel.UUID { return e.tenantID }

// OrderID returns the order the event refers to.
func (e baseEvent) OrderID() kernel.UUID { return e.orderID }

// OccurredAt returns when the mutation was applied.
func (e baseEvent) OccurredAt() time.Time { return e.occurredAt }

// CreatedEvent is raised when a new order (including walk-up sales) is placed.
type CreatedEvent struct {
	baseEvent
	WaiterID  kernel.UUID
	ItemCount int
}

// EventName implements kernel.DomainEvent.
func (CreatedEvent) EventName() string { return "order.created" }

// DispatchedEvent is raised when pending items are sent to their stations.
type DispatchedEvent struct {
	baseEvent
	ItemIDs []kernel.UUID
}

// EventName implements kernel.DomainEvent.
func (DispatchedEvent) EventName() string { return "order.dispatched" }

// ItemReadyEvent is raised when a station actor finishes preparing an item.
type ItemReadyEvent struct {
	baseEvent
	ItemID      kernel.UUID
	StationType StationType
	PreparedBy  kernel.UUID
}

// EventName implements kernel.DomainEvent.
func (ItemReadyEvent) EventName() string { return "order.item_ready" }

// ItemRejectedEvent is raised for every item a station refuses or that is
// rejected by an out-of-stock sweep.
type ItemRejectedEvent struct {
	baseEvent
	ItemID     kernel.UUID
	MenuItemID kernel.UUID
}

// EventName implements kernel.DomainEvent.
func (ItemRejectedEvent) EventName() string { return "order.item_rejected" }

// ServedEvent is raised when the waiter confirms the whole order reached the
// guests; any items still ready were cascaded to served with it.
type ServedEvent struct {
	baseEvent
	CascadedItemIDs []kernel.UUID
}

// EventName implements kernel.DomainEvent.
func (ServedEvent) EventName() string { return "order.served" }

// PaidEvent is raised when the cashier confirms the order is fully paid.
type PaidEvent struct {
	baseEvent
	Total kernel.Money
}

// EventName implements kernel.DomainEvent.
func (PaidEvent) EventName() string { return "order.paid" }

// ItemReturnedEvent is raised when a served item is reported returned.
type ItemReturnedEvent struct {
	baseEvent
	ItemID   kernel.UUID
	ReturnID kernel.UUID
}

// EventName implements kernel.DomainEvent.
func (ItemReturnedEvent) EventName() string { return "order.item_returned" }
