package order

import (
	"errors"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder, NewWalkUpSale, or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder, NewWalkUpSale, or RestoreOrder")

	// ErrOrderHasNoItems is returned when creating an order without items.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("items")
)

// Order is the aggregate root owning the order header and its child items.
//
// Invariants:
//   - at least one item, every item created through its constructor
//   - the stored total always equals the sum of active (non-rejected,
//     non-returned) item line totals until the order is paid; at payment the
//     total freezes as the settled snapshot
//   - order status is derived from the items except the two elevated
//     transitions: the waiter's serve (which cascades ready items to served in
//     the same mutation) and the cashier's paid confirmation
//   - all mutations are tenant-scoped; an order never changes tenants
//
// The aggregate records typed domain events for every mutation; the unit of
// work drains them after commit and hands them to the change feed.
type Order struct {
	id       kernel.UUID
	tenantID kernel.UUID
	eventID  kernel.UUID
	waiterID kernel.UUID
	// tableID references the physical table; nil denotes a walk-up bar sale.
	tableID   *kernel.UUID
	guestName string
	status    Status
	// totalAmount tracks the active-item total until the order is paid,
	// then freezes as the settled snapshot.
	totalAmount  kernel.Money
	dispatchedAt *time.Time
	readyAt      *time.Time
	servedAt     *time.Time
	paidAt       *time.Time
	items        []*OrderItem

	events []kernel.DomainEvent
	guard  guard.ConstructorGuard
}

// NewOrder creates a waiter-placed order with routed items in pending status.
func NewOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	eventID kernel.UUID,
	waiterID kernel.UUID,
	tableID *kernel.UUID,
	guestName string,
	items []*OrderItem,
	now time.Time,
) (*Order, error) {
	o := &Order{
		guestName: guestName,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setEventID(eventID),
		o.setWaiterID(waiterID),
		o.setTableID(tableID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.status = DeriveStatus(Pending, o.items)
	o.totalAmount = o.ActiveTotal()

	o.record(CreatedEvent{
		baseEvent: o.base(now),
		WaiterID:  waiterID,
		ItemCount: len(o.items),
	})
	return o, nil
}

// NewWalkUpSale creates a fast-path bar order: no table, every item already
// served, ready for immediate payment. Station routing is bypassed entirely
// but the ledger invariants are identical to a routed order.
func NewWalkUpSale(
	id kernel.UUID,
	tenantID kernel.UUID,
	eventID kernel.UUID,
	sellerID kernel.UUID,
	guestName string,
	items []*OrderItem,
	now time.Time,
) (*Order, error) {
	o, err := NewOrder(id, tenantID, eventID, sellerID, nil, guestName, items, now)
	if err != nil {
		return nil, err
	}

	for _, item := range o.items {
		if item.Status() != ItemServed {
			return nil, errs.NewValueIsInvalidError("walk-up sale items must be created in served status")
		}
	}

	o.status = Served
	o.servedAt = &now
	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistence.
func RestoreOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	eventID kernel.UUID,
	waiterID kernel.UUID,
	tableID *kernel.UUID,
	guestName string,
	status Status,
	totalAmount kernel.Money,
	dispatchedAt, readyAt, servedAt, paidAt *time.Time,
	items []*OrderItem,
) (*Order, error) {
	o := &Order{
		guestName:    guestName,
		totalAmount:  totalAmount,
		dispatchedAt: dispatchedAt,
		readyAt:      readyAt,
		servedAt:     servedAt,
		paidAt:       paidAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setEventID(eventID),
		o.setWaiterID(waiterID),
		o.setTableID(tableID),
		o.setItems(items),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// TenantID returns the owning tenant.
func (o *Order) TenantID() kernel.UUID { return o.tenantID }

// EventID returns the live event this order belongs to.
func (o *Order) EventID() kernel.UUID { return o.eventID }

// WaiterID returns the creator of the order.
func (o *Order) WaiterID() kernel.UUID { return o.waiterID }

// TableID returns the table reference; nil denotes a walk-up bar sale.
func (o *Order) TableID() *kernel.UUID { return o.tableID }

// GuestName returns the guest display name.
func (o *Order) GuestName() string { return o.guestName }

// Status returns the current order status.
func (o *Order) Status() Status { return o.status }

// Total returns the stored total: the active-item total before payment, the
// frozen settlement snapshot afterwards.
func (o *Order) Total() kernel.Money { return o.totalAmount }

// DispatchedAt returns when items were first sent to stations, if ever.
func (o *Order) DispatchedAt() *time.Time { return o.dispatchedAt }

// ReadyAt returns when the last active item became ready, if ever.
func (o *Order) ReadyAt() *time.Time { return o.readyAt }

// ServedAt returns when the waiter confirmed service, if ever.
func (o *Order) ServedAt() *time.Time { return o.servedAt }

// PaidAt returns when the cashier confirmed full payment, if ever.
func (o *Order) PaidAt() *time.Time { return o.paidAt }

// Items returns the child items of the order.
func (o *Order) Items() []*OrderItem { return o.items }

// Item looks up a child item by ID.
func (o *Order) Item(itemID kernel.UUID) (*OrderItem, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderItem", itemID.String())
}

// ActiveTotal recomputes the payable total from non-rejected, non-returned
// items. This is the single authoritative total computation; every display
// value derives from it.
func (o *Order) ActiveTotal() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		if item.Status().IsActive() {
			total = total.Add(item.LineTotal())
		}
	}
	return total
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Dispatch sends every pending item to its station and records the dispatch
// timestamp. Dispatching an order with no pending items is a state conflict.
func (o *Order) Dispatch(now time.Time) error {
	var dispatched []kernel.UUID
	for _, item := range o.items {
		if item.Status() != ItemPending {
			continue
		}
		if err := item.MarkDispatched(now); err != nil {
			return err
		}
		dispatched = append(dispatched, item.ID())
	}

	if len(dispatched) == 0 {
		return errs.NewStateConflictError("order has no pending items to dispatch")
	}

	if o.dispatchedAt == nil {
		o.dispatchedAt = &now
	}
	o.status = DeriveStatus(o.status, o.items)

	o.record(DispatchedEvent{baseEvent: o.base(now), ItemIDs: dispatched})
	return nil
}

// MarkItemReady records that a station actor finished preparing an item.
// The transition is only legal from pending or dispatched; racing actors see
// exactly one winner, the rest get a state conflict.
func (o *Order) MarkItemReady(itemID kernel.UUID, actor kernel.UUID, now time.Time) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}

	if err = item.MarkReady(actor, now); err != nil {
		return err
	}

	o.status = DeriveStatus(o.status, o.items)
	if o.status == Ready && o.readyAt == nil {
		o.readyAt = &now
	}

	o.record(ItemReadyEvent{
		baseEvent:   o.base(now),
		ItemID:      item.ID(),
		StationType: item.StationType(),
		PreparedBy:  actor,
	})
	return nil
}

// RejectItem side-exits a pending or dispatched item, shrinking the payable
// total accordingly.
func (o *Order) RejectItem(itemID kernel.UUID, now time.Time) error {
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}

	if err = item.Reject(); err != nil {
		return err
	}

	o.afterItemRetired()
	o.record(ItemRejectedEvent{
		baseEvent:  o.base(now),
		ItemID:     item.ID(),
		MenuItemID: item.MenuItemID(),
	})
	return nil
}

// RejectItemsForMenuItem rejects every pending or dispatched item referencing
// the given menu item, used when the catalog marks it unavailable. Items
// already ready, served, paid, or terminal are untouched. Returns the IDs of
// the rejected items; an empty result is not an error.
func (o *Order) RejectItemsForMenuItem(menuItemID kernel.UUID, now time.Time) ([]kernel.UUID, error) {
	if err := menuItemID.Validate(); err != nil {
		return nil, err
	}

	var rejected []kernel.UUID
	for _, item := range o.items {
		if !item.MenuItemID().IsEqual(menuItemID) || !item.Status().IsRoutable() {
			continue
		}
		if err := item.Reject(); err != nil {
			return rejected, err
		}
		rejected = append(rejected, item.ID())
		o.record(ItemRejectedEvent{
			baseEvent:  o.base(now),
			ItemID:     item.ID(),
			MenuItemID: menuItemID,
		})
	}

	if len(rejected) > 0 {
		o.afterItemRetired()
	}
	return rejected, nil
}

// MarkServed is the waiter's elevated transition. It requires at least one
// active item and every active item to be ready or already served; ready items
// cascade to served in the same mutation, so an order is never observed served
// while one of its items is still ready.
func (o *Order) MarkServed(now time.Time) error {
	if o.status == Served || o.status == Paid {
		return errs.NewStateConflictError("order is already served")
	}

	active := 0
	for _, item := range o.items {
		if !item.Status().IsActive() {
			continue
		}
		active++
		if item.Status() != ItemReady && item.Status() != ItemServed {
			return errs.NewStateConflictError("order has items that are not ready yet")
		}
	}
	if active == 0 {
		return errs.NewStateConflictError("order has no active items to serve")
	}

	var cascaded []kernel.UUID
	for _, item := range o.items {
		if item.Status() != ItemReady {
			continue
		}
		if err := item.MarkServed(); err != nil {
			return err
		}
		cascaded = append(cascaded, item.ID())
	}

	o.status = Served
	o.servedAt = &now

	o.record(ServedEvent{baseEvent: o.base(now), CascadedItemIDs: cascaded})
	return nil
}

// MarkPaid is the cashier's elevated transition, valid only from served.
// Ledger reconciliation happens before this is called; confirming an
// already-paid order is a state conflict, never a second settlement. The
// total freezes as the settled snapshot and served items cascade to paid.
func (o *Order) MarkPaid(now time.Time) error {
	if o.status == Paid {
		return errs.NewStateConflictError("order is already paid")
	}
	if o.status != Served {
		return errs.NewStateConflictError("order is not served")
	}

	for _, item := range o.items {
		if item.Status() != ItemServed {
			continue
		}
		if err := item.MarkPaid(); err != nil {
			return err
		}
	}

	o.totalAmount = o.ActiveTotal()
	o.status = Paid
	o.paidAt = &now

	o.record(PaidEvent{baseEvent: o.base(now), Total: o.totalAmount})
	return nil
}

// ReturnItem side-exits a served item after a return report. The caller
// creates the return record in the same transaction; the aggregate only owns
// the item transition and the payable-total shrink.
func (o *Order) ReturnItem(itemID kernel.UUID, returnID kernel.UUID, now time.Time) error {
	if err := returnID.Validate(); err != nil {
		return err
	}

	item, err := o.Item(itemID)
	if err != nil {
		return err
	}

	if err = item.MarkReturned(); err != nil {
		return err
	}

	o.afterItemRetired()
	o.record(ItemReturnedEvent{
		baseEvent: o.base(now),
		ItemID:    item.ID(),
		ReturnID:  returnID,
	})
	return nil
}

// PullEvents drains the recorded domain events.
func (o *Order) PullEvents() []kernel.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

// afterItemRetired re-derives the status and, before payment, re-anchors the
// stored total to the active items.
func (o *Order) afterItemRetired() {
	if o.status != Paid {
		o.totalAmount = o.ActiveTotal()
	}
	o.status = DeriveStatus(o.status, o.items)
}

func (o *Order) base(now time.Time) baseEvent {
	return baseEvent{tenantID: o.tenantID, orderID: o.id, occurredAt: now}
}

func (o *Order) record(event kernel.DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.tenantID = id
	return nil
}

func (o *Order) setEventID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.eventID = id
	return nil
}

func (o *Order) setWaiterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.waiterID = id
	return nil
}

func (o *Order) setTableID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.tableID = id
	return nil
}

func (o *Order) setItems(items []*OrderItem) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
