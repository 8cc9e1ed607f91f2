package order

import (
	"fmt"

	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

// ItemStatus is the lifecycle state of a single order item.
//
// State transitions:
//
//	pending ──> dispatched ──> ready ──> served ──> paid
//	   │             │                     │
//	   └──> rejected <┘                    └──> returned
//
// paid, rejected, and returned are terminal. Walk-up bar sales create items
// directly in served, bypassing dispatch and routing.
type ItemStatus int

const (
	// ItemStatusUnknown catches uninitialized values; it is never valid.
	ItemStatusUnknown ItemStatus = iota

	// ItemPending is the initial status of a routed item, waiting for dispatch.
	ItemPending

	// ItemDispatched means the item has been sent to its station queue.
	ItemDispatched

	// ItemReady means a station actor finished preparing the item.
	ItemReady

	// ItemServed means the item reached the guest.
	ItemServed

	// ItemPaid is terminal: the item was settled by the cashier.
	ItemPaid

	// ItemRejected is terminal: the station refused the item or the menu item
	// went out of stock before preparation.
	ItemRejected

	// ItemReturned is terminal: the guest sent the served item back.
	ItemReturned
)

func itemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemStatusUnknown: "unknown",
		ItemPending:       "pending",
		ItemDispatched:    "dispatched",
		ItemReady:         "ready",
		ItemServed:        "served",
		ItemPaid:          "paid",
		ItemRejected:      "rejected",
		ItemReturned:      "returned",
	}
}

// Validate checks the status against the set of valid item statuses.
func (s ItemStatus) Validate() error {
	if s == ItemStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("itemStatus",
			fmt.Errorf("%d is not a valid item status", s))
	}
	if _, ok := itemStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("itemStatus",
			fmt.Errorf("%d is not a valid item status", s))
	}
	return nil
}

// String implements fmt.Stringer; unknown values render as "unknown".
func (s ItemStatus) String() string {
	if str, ok := itemStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsActive reports whether the item counts toward the order's payable total.
// Rejected and returned items are inactive.
func (s ItemStatus) IsActive() bool {
	return s != ItemRejected && s != ItemReturned
}

// IsTerminal reports whether no further transitions are possible.
func (s ItemStatus) IsTerminal() bool {
	return s == ItemPaid || s == ItemRejected || s == ItemReturned
}

// IsRoutable reports whether the item is still visible in a station queue.
func (s ItemStatus) IsRoutable() bool {
	return s == ItemPending || s == ItemDispatched
}

// Dispatch transitions pending -> dispatched.
func (s ItemStatus) Dispatch() (ItemStatus, error) {
	if s != ItemPending {
		return 0, errs.NewStateConflictErrorWithCause("item is not pending",
			fmt.Errorf("%s cannot be dispatched", s))
	}
	return ItemDispatched, nil
}

// Ready transitions pending|dispatched -> ready. Any other source status is a
// state conflict; two racing station actors see exactly one winner.
func (s ItemStatus) Ready() (ItemStatus, error) {
	if !s.IsRoutable() {
		return 0, errs.NewStateConflictErrorWithCause("item is not pending or dispatched",
			fmt.Errorf("%s cannot be marked ready", s))
	}
	return ItemReady, nil
}

// Serve transitions ready -> served.
func (s ItemStatus) Serve() (ItemStatus, error) {
	if s != ItemReady {
		return 0, errs.NewStateConflictErrorWithCause("item is not ready",
			fmt.Errorf("%s cannot be served", s))
	}
	return ItemServed, nil
}

// Pay transitions served -> paid.
func (s ItemStatus) Pay() (ItemStatus, error) {
	if s != ItemServed {
		return 0, errs.NewStateConflictErrorWithCause("item is not served",
			fmt.Errorf("%s cannot be paid", s))
	}
	return ItemPaid, nil
}

// Reject transitions pending|dispatched -> rejected. Items already ready,
// served, paid, or in a terminal status are never rejected.
func (s ItemStatus) Reject() (ItemStatus, error) {
	if !s.IsRoutable() {
		return 0, errs.NewStateConflictErrorWithCause("item is not pending or dispatched",
			fmt.Errorf("%s cannot be rejected", s))
	}
	return ItemRejected, nil
}

// Return transitions served -> returned.
func (s ItemStatus) Return() (ItemStatus, error) {
	if s != ItemServed {
		return 0, errs.NewStateConflictErrorWithCause("item is not served",
			fmt.Errorf("%s cannot be returned", s))
	}
	return ItemReturned, nil
}

// Status is the order-level lifecycle state. It is derived from the item
// collection except for the two elevated transitions: the waiter moving the
// order to Served and the cashier moving it to Paid.
type Status int

const (
	// Unknown catches uninitialized values; it is never valid.
	Unknown Status = iota

	// Pending means at least one active item has not been dispatched yet.
	Pending

	// Dispatched means all pending work has been sent to stations.
	Dispatched

	// Ready means every active item is prepared and awaiting the waiter.
	Ready

	// Served is set by the waiter once all active items reached the guests.
	Served

	// Paid is terminal, set by the cashier after ledger reconciliation.
	Paid

	// Cancelled means the order has no active items left: everything was
	// rejected or returned before payment.
	Cancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Dispatched: "dispatched",
		Ready:      "ready",
		Served:     "served",
		Paid:       "paid",
		Cancelled:  "cancelled",
	}
}

// Validate checks the status against the set of valid order statuses.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("orderStatus",
			fmt.Errorf("%d is not a valid order status", s))
	}
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("orderStatus",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String implements fmt.Stringer; unknown values render as "unknown".
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// DeriveStatus computes the order status from an item snapshot. Served and Paid
// are sticky: once the order passed an elevated transition the derived value
// never regresses it.
func DeriveStatus(current Status, items []*OrderItem) Status {
	if current == Served || current == Paid {
		return current
	}

	active := 0
	pending := 0
	unprepared := 0
	for _, item := range items {
		if !item.Status().IsActive() {
			continue
		}
		active++
		switch item.Status() {
		case ItemPending:
			pending++
			unprepared++
		case ItemDispatched:
			unprepared++
		}
	}

	switch {
	case active == 0:
		return Cancelled
	case pending > 0:
		return Pending
	case unprepared > 0:
		return Dispatched
	default:
		return Ready
	}
}
