// Package inventory distributes a menu item's stock across event zones and
// moves units between zones. Allocations gate the out-of-stock sweeps that
// reject pending order items; every transfer leaves an immutable log entry.
package inventory

import (
	"errors"
	"fmt"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrZoneAllocationIsNotConstructed is returned when a ZoneAllocation
// bypassed its constructor.
var ErrZoneAllocationIsNotConstructed = errors.New(
	"ZoneAllocation must be created via NewZoneAllocation constructor")

// ZoneAllocation is the stock of one menu item parked in one zone. The
// (menu item, zone) pair is unique per tenant; the storage layer enforces
// the uniqueness.
type ZoneAllocation struct {
	id         kernel.UUID
	tenantID   kernel.UUID
	menuItemID kernel.UUID
	zoneID     kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewZoneAllocation creates an allocation row. Zero quantity is allowed:
// an emptied allocation stays on record so transfers back into the zone
// have a target row.
func NewZoneAllocation(id, tenantID, menuItemID, zoneID kernel.UUID, quantity int) (*ZoneAllocation, error) {
	a := &ZoneAllocation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setTenantID(tenantID),
		a.setMenuItemID(menuItemID),
		a.setZoneID(zoneID),
	); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, maxAllocationQuantity)
	}

	a.quantity = quantity
	return a, nil
}

// RestoreZoneAllocation rebuilds an allocation from storage.
func RestoreZoneAllocation(id, tenantID, menuItemID, zoneID kernel.UUID, quantity int) (*ZoneAllocation, error) {
	return NewZoneAllocation(id, tenantID, menuItemID, zoneID, quantity)
}

const maxAllocationQuantity = 1_000_000

// Validate ensures the allocation was created through its constructor.
func (a *ZoneAllocation) Validate() error {
	if a == nil {
		return ErrZoneAllocationIsNotConstructed
	}
	return a.guard.Validate(ErrZoneAllocationIsNotConstructed)
}

// ID returns the allocation identifier.
func (a *ZoneAllocation) ID() kernel.UUID { return a.id }

// TenantID returns the owning tenant.
func (a *ZoneAllocation) TenantID() kernel.UUID { return a.tenantID }

// MenuItemID returns the allocated menu item.
func (a *ZoneAllocation) MenuItemID() kernel.UUID { return a.menuItemID }

// ZoneID returns the zone holding the units.
func (a *ZoneAllocation) ZoneID() kernel.UUID { return a.zoneID }

// Quantity returns the units currently parked in the zone.
func (a *ZoneAllocation) Quantity() int { return a.quantity }

// Deduct removes units, refusing to go below zero.
func (a *ZoneAllocation) Deduct(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxAllocationQuantity)
	}
	if quantity > a.quantity {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("cannot deduct %d units, zone %s holds %d", quantity, a.zoneID, a.quantity))
	}
	a.quantity -= quantity
	return nil
}

// AddUnits adds units moved into the zone.
func (a *ZoneAllocation) AddUnits(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxAllocationQuantity)
	}
	a.quantity += quantity
	return nil
}

func (a *ZoneAllocation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *ZoneAllocation) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.tenantID = id
	return nil
}

func (a *ZoneAllocation) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.menuItemID = id
	return nil
}

func (a *ZoneAllocation) setZoneID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.zoneID = id
	return nil
}

// ValidateAllocationPlan checks a requested distribution before any row is
// written: zone IDs must be distinct and valid, quantities non-negative.
// The plan's sum plus the units already parked in zones the plan does not
// touch must not exceed the item's current inventory; the cross-zone sum
// invariant holds over all zones, not just the requested ones.
func ValidateAllocationPlan(plan map[kernel.UUID]int, existing []*ZoneAllocation, currentInventory int) error {
	if len(plan) == 0 {
		return errs.NewValueIsRequiredError("zoneAllocations")
	}

	sum := 0
	for zoneID, quantity := range plan {
		if err := zoneID.Validate(); err != nil {
			return err
		}
		if quantity < 0 {
			return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, maxAllocationQuantity)
		}
		sum += quantity
	}

	parked := 0
	for _, row := range existing {
		if _, replanned := plan[row.ZoneID()]; replanned {
			continue
		}
		parked += row.Quantity()
	}

	if sum+parked > currentInventory {
		return errs.NewValueIsInvalidErrorWithCause("zoneAllocations",
			fmt.Errorf("requested %d units with %d already parked in other zones, current inventory is %d",
				sum, parked, currentInventory))
	}

	return nil
}
