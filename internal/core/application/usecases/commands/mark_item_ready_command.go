package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrMarkItemReadyCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrMarkItemReadyCommandIsNotConstructed = errors.New(
	"MarkItemReadyCommand must be created via NewMarkItemReadyCommand constructor")

// MarkItemReadyCommand is a station actor finishing one item.
type MarkItemReadyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	caller  staffing.Caller

	guard guard.ConstructorGuard
}

// NewMarkItemReadyCommand creates a command to mark an item ready.
func NewMarkItemReadyCommand(orderID, itemID kernel.UUID, caller staffing.Caller) (MarkItemReadyCommand, error) {
	cmd := MarkItemReadyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setCaller(caller),
	); err != nil {
		return MarkItemReadyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkItemReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkItemReadyCommandIsNotConstructed)
}

// OrderID returns the parent order.
func (c MarkItemReadyCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the finished item.
func (c MarkItemReadyCommand) ItemID() kernel.UUID { return c.itemID }

// Caller returns the scoped station caller.
func (c MarkItemReadyCommand) Caller() staffing.Caller { return c.caller }

func (c *MarkItemReadyCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *MarkItemReadyCommand) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.itemID = id
	return nil
}

func (c *MarkItemReadyCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
