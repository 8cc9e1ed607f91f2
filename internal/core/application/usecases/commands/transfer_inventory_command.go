package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrTransferInventoryCommandIsNotConstructed is returned when the
// command bypassed its constructor.
var ErrTransferInventoryCommandIsNotConstructed = errors.New(
	"TransferInventoryCommand must be created via NewTransferInventoryCommand constructor")

// TransferInventoryCommand moves units of a menu item between two zones.
type TransferInventoryCommand struct { //nolint:recvcheck //using for validation
	menuItemID kernel.UUID
	fromZoneID kernel.UUID
	toZoneID   kernel.UUID
	quantity   int
	reason     string
	caller     staffing.Caller

	guard guard.ConstructorGuard
}

// NewTransferInventoryCommand creates a transfer command.
func NewTransferInventoryCommand(
	menuItemID, fromZoneID, toZoneID kernel.UUID,
	quantity int,
	reason string,
	caller staffing.Caller,
) (TransferInventoryCommand, error) {
	cmd := TransferInventoryCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMenuItemID(menuItemID),
		cmd.setZones(fromZoneID, toZoneID),
		cmd.setQuantity(quantity),
		cmd.setCaller(caller),
	); err != nil {
		return TransferInventoryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransferInventoryCommand) Validate() error {
	return c.guard.Validate(ErrTransferInventoryCommandIsNotConstructed)
}

// MenuItemID returns the menu item being moved.
func (c TransferInventoryCommand) MenuItemID() kernel.UUID { return c.menuItemID }

// FromZoneID returns the source zone.
func (c TransferInventoryCommand) FromZoneID() kernel.UUID { return c.fromZoneID }

// ToZoneID returns the destination zone.
func (c TransferInventoryCommand) ToZoneID() kernel.UUID { return c.toZoneID }

// Quantity returns the units to move.
func (c TransferInventoryCommand) Quantity() int { return c.quantity }

// Reason returns the optional operator note.
func (c TransferInventoryCommand) Reason() string { return c.reason }

// Caller returns the scoped caller.
func (c TransferInventoryCommand) Caller() staffing.Caller { return c.caller }

func (c *TransferInventoryCommand) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.menuItemID = id
	return nil
}

func (c *TransferInventoryCommand) setZones(fromZoneID, toZoneID kernel.UUID) error {
	if err := errors.Join(fromZoneID.Validate(), toZoneID.Validate()); err != nil {
		return err
	}
	if fromZoneID.IsEqual(toZoneID) {
		return errs.NewValueIsInvalidError("toZoneID")
	}
	c.fromZoneID = fromZoneID
	c.toZoneID = toZoneID
	return nil
}

func (c *TransferInventoryCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, 1_000_000)
	}
	c.quantity = quantity
	return nil
}

func (c *TransferInventoryCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
