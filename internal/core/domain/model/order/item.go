package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrOrderItemIsNotConstructed is returned when an OrderItem was not created
// through one of its constructors.
var ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem, NewServedOrderItem, or RestoreOrderItem")

// OrderItem is a child entity of the Order aggregate: one menu item line with
// the quantity, the unit price captured at order time, and the routing state.
// Items are owned exclusively by their order and are soft-retired through
// status, never hard-deleted.
type OrderItem struct {
	id          kernel.UUID
	menuItemID  kernel.UUID
	stationType StationType
	quantity    int
	// price is the unit price at order time. It is immutable even if the
	// catalog price later changes.
	price        kernel.Money
	status       ItemStatus
	dispatchedAt *time.Time
	readyAt      *time.Time
	// assignedTo is the station actor who prepared the item.
	assignedTo *kernel.UUID
	notes      string

	guard guard.ConstructorGuard
}

// NewOrderItem creates a routed item in pending status.
func NewOrderItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	stationType StationType,
	quantity int,
	price kernel.Money,
	notes string,
) (*OrderItem, error) {
	item := &OrderItem{
		status: ItemPending,
		notes:  notes,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setMenuItemID(menuItemID),
		item.setStationType(stationType),
		item.setQuantity(quantity),
		item.setPrice(price),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// NewServedOrderItem creates a fast-path item directly in served status, used
// for walk-up bar sales that bypass dispatch and station routing. The price is
// still captured by value so the payment ledger invariants hold.
func NewServedOrderItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	quantity int,
	price kernel.Money,
	notes string,
) (*OrderItem, error) {
	item, err := NewOrderItem(id, menuItemID, StationBar, quantity, price, notes)
	if err != nil {
		return nil, err
	}

	item.status = ItemServed
	return item, nil
}

// RestoreOrderItem reconstructs an item from persistence with its full state.
func RestoreOrderItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	stationType StationType,
	quantity int,
	price kernel.Money,
	status ItemStatus,
	dispatchedAt, readyAt *time.Time,
	assignedTo *kernel.UUID,
	notes string,
) (*OrderItem, error) {
	item := &OrderItem{
		dispatchedAt: dispatchedAt,
		readyAt:      readyAt,
		assignedTo:   assignedTo,
		notes:        notes,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setMenuItemID(menuItemID),
		item.setStationType(stationType),
		item.setQuantity(quantity),
		item.setPrice(price),
		item.setStatus(status),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the item was created through a constructor.
func (i *OrderItem) Validate() error {
	if i == nil {
		return ErrOrderItemIsNotConstructed
	}
	return i.guard.Validate(ErrOrderItemIsNotConstructed)
}

// ID returns the item's unique identifier.
func (i *OrderItem) ID() kernel.UUID {
	return i.id
}

// MenuItemID returns the catalog identifier of the ordered menu item.
func (i *OrderItem) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// StationType returns the preparation station this item routes to.
func (i *OrderItem) StationType() StationType {
	return i.stationType
}

// Quantity returns the ordered quantity.
func (i *OrderItem) Quantity() int {
	return i.quantity
}

// Price returns the unit price captured at order time.
func (i *OrderItem) Price() kernel.Money {
	return i.price
}

// Status returns the current item status.
func (i *OrderItem) Status() ItemStatus {
	return i.status
}

// DispatchedAt returns when the item was sent to its station, if ever.
func (i *OrderItem) DispatchedAt() *time.Time {
	return i.dispatchedAt
}

// ReadyAt returns when the station finished the item, if ever.
func (i *OrderItem) ReadyAt() *time.Time {
	return i.readyAt
}

// AssignedTo returns the station actor who prepared the item, if any.
func (i *OrderItem) AssignedTo() *kernel.UUID {
	return i.assignedTo
}

// Notes returns the free-form preparation notes.
func (i *OrderItem) Notes() string {
	return i.notes
}

// LineTotal returns price multiplied by quantity.
func (i *OrderItem) LineTotal() kernel.Money {
	return i.price.MulQuantity(i.quantity)
}

// MarkDispatched transitions the item to dispatched and records the timestamp.
func (i *OrderItem) MarkDispatched(at time.Time) error {
	newStatus, err := i.status.Dispatch()
	if err != nil {
		return err
	}

	i.status = newStatus
	i.dispatchedAt = &at
	return nil
}

// MarkReady transitions the item to ready, recording the timestamp and the
// station actor who prepared it. Only pending or dispatched items qualify.
func (i *OrderItem) MarkReady(actor kernel.UUID, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	newStatus, err := i.status.Ready()
	if err != nil {
		return err
	}

	i.status = newStatus
	i.readyAt = &at
	i.assignedTo = &actor
	return nil
}

// MarkServed transitions a ready item to served. Used by the order-level
// serve cascade.
func (i *OrderItem) MarkServed() error {
	newStatus, err := i.status.Serve()
	if err != nil {
		return err
	}

	i.status = newStatus
	return nil
}

// MarkPaid settles a served item. Used by the order-level paid cascade.
func (i *OrderItem) MarkPaid() error {
	newStatus, err := i.status.Pay()
	if err != nil {
		return err
	}

	i.status = newStatus
	return nil
}

// Reject side-exits a pending or dispatched item.
func (i *OrderItem) Reject() error {
	newStatus, err := i.status.Reject()
	if err != nil {
		return err
	}

	i.status = newStatus
	return nil
}

// MarkReturned side-exits a served item after a return report.
func (i *OrderItem) MarkReturned() error {
	newStatus, err := i.status.Return()
	if err != nil {
		return err
	}

	i.status = newStatus
	return nil
}

func (i *OrderItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *OrderItem) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.menuItemID = id
	return nil
}

func (i *OrderItem) setStationType(stationType StationType) error {
	if err := stationType.Validate(); err != nil {
		return err
	}
	i.stationType = stationType
	return nil
}

func (i *OrderItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *OrderItem) setPrice(price kernel.Money) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidError("price")
	}
	i.price = price
	return nil
}

func (i *OrderItem) setStatus(status ItemStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	i.status = status
	return nil
}
