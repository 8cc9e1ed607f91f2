package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrTransferRecordIsNotConstructed is returned when a TransferRecord
// bypassed its constructor.
var ErrTransferRecordIsNotConstructed = errors.New(
	"TransferRecord must be created via NewTransferRecord constructor")

// TransferRecord is one immutable line of the transfer log: quantity units
// of a menu item moved from one zone to another.
type TransferRecord struct {
	id         kernel.UUID
	tenantID   kernel.UUID
	menuItemID kernel.UUID
	fromZoneID kernel.UUID
	toZoneID   kernel.UUID
	quantity   int
	reason     string
	movedBy    kernel.UUID
	movedAt    time.Time

	events []kernel.DomainEvent
	guard  guard.ConstructorGuard
}

// NewTransferRecord logs a zone-to-zone move. The paired allocation rows
// are adjusted by the caller in the same transaction.
func NewTransferRecord(
	id, tenantID, menuItemID, fromZoneID, toZoneID kernel.UUID,
	quantity int,
	reason string,
	movedBy kernel.UUID,
	movedAt time.Time,
) (*TransferRecord, error) {
	r := &TransferRecord{
		reason:  reason,
		movedAt: movedAt,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateInto(&r.id, id),
		validateInto(&r.tenantID, tenantID),
		validateInto(&r.menuItemID, menuItemID),
		validateInto(&r.fromZoneID, fromZoneID),
		validateInto(&r.toZoneID, toZoneID),
		validateInto(&r.movedBy, movedBy),
	); err != nil {
		return nil, err
	}
	if fromZoneID.IsEqual(toZoneID) {
		return nil, errs.NewValueIsInvalidErrorWithCause("toZoneID",
			fmt.Errorf("transfer source and destination are the same zone %s", toZoneID))
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxAllocationQuantity)
	}

	r.quantity = quantity

	r.events = append(r.events, TransferredEvent{
		tenantID:   tenantID,
		occurredAt: movedAt,
		TransferID: id,
		MenuItemID: menuItemID,
		FromZoneID: fromZoneID,
		ToZoneID:   toZoneID,
		Quantity:   quantity,
	})

	return r, nil
}

// RestoreTransferRecord rebuilds a log line from storage.
func RestoreTransferRecord(
	id, tenantID, menuItemID, fromZoneID, toZoneID kernel.UUID,
	quantity int,
	reason string,
	movedBy kernel.UUID,
	movedAt time.Time,
) (*TransferRecord, error) {
	r, err := NewTransferRecord(id, tenantID, menuItemID, fromZoneID, toZoneID, quantity, reason, movedBy, movedAt)
	if err != nil {
		return nil, err
	}
	r.events = nil
	return r, nil
}

// Validate ensures the record was created through its constructor.
func (r *TransferRecord) Validate() error {
	if r == nil {
		return ErrTransferRecordIsNotConstructed
	}
	return r.guard.Validate(ErrTransferRecordIsNotConstructed)
}

// ID returns the transfer identifier.
func (r *TransferRecord) ID() kernel.UUID { return r.id }

// TenantID returns the owning tenant.
func (r *TransferRecord) TenantID() kernel.UUID { return r.tenantID }

// MenuItemID returns the moved menu item.
func (r *TransferRecord) MenuItemID() kernel.UUID { return r.menuItemID }

// FromZoneID returns the source zone.
func (r *TransferRecord) FromZoneID() kernel.UUID { return r.fromZoneID }

// ToZoneID returns the destination zone.
func (r *TransferRecord) ToZoneID() kernel.UUID { return r.toZoneID }

// Quantity returns the moved units.
func (r *TransferRecord) Quantity() int { return r.quantity }

// Reason returns the optional operator note.
func (r *TransferRecord) Reason() string { return r.reason }

// MovedBy returns who performed the transfer.
func (r *TransferRecord) MovedBy() kernel.UUID { return r.movedBy }

// MovedAt returns when the transfer happened.
func (r *TransferRecord) MovedAt() time.Time { return r.movedAt }

// PullEvents returns recorded domain events and clears the internal list.
func (r *TransferRecord) PullEvents() []kernel.DomainEvent {
	events := r.events
	r.events = nil
	return events
}

// Apply moves the units between the two allocation rows. Both rows mutate
// or neither does; the deduct runs first so an insufficient source leaves
// the destination untouched.
func (r *TransferRecord) Apply(from, to *ZoneAllocation) error {
	if !from.ZoneID().IsEqual(r.fromZoneID) || !to.ZoneID().IsEqual(r.toZoneID) {
		return errs.NewValueIsInvalidErrorWithCause("allocations",
			fmt.Errorf("allocation rows do not match transfer %s", r.id))
	}
	if !from.MenuItemID().IsEqual(r.menuItemID) || !to.MenuItemID().IsEqual(r.menuItemID) {
		return errs.NewValueIsInvalidErrorWithCause("allocations",
			fmt.Errorf("allocation rows reference a different menu item than transfer %s", r.id))
	}

	if err := from.Deduct(r.quantity); err != nil {
		return err
	}
	if err := to.AddUnits(r.quantity); err != nil {
		// Undo the deduct so a bad destination never strands units.
		_ = from.AddUnits(r.quantity)
		return err
	}

	return nil
}

func validateInto(dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	*dst = id
	return nil
}

// TransferredEvent is raised for every zone-to-zone move.
type TransferredEvent struct {
	tenantID   kernel.UUID
	occurredAt time.Time
	TransferID kernel.UUID
	MenuItemID kernel.UUID
	FromZoneID kernel.UUID
	ToZoneID   kernel.UUID
	Quantity   int
}

// EventName implements kernel.DomainEvent.
func (TransferredEvent) EventName() string { return "inventory.transferred" }

// TenantID returns the tenant the event belongs to.
func (e TransferredEvent) TenantID() kernel.UUID { return e.tenantID }

// OccurredAt returns when the transfer happened.
func (e TransferredEvent) OccurredAt() time.Time { return e.occurredAt }
