package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrRejectItemCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrRejectItemCommandIsNotConstructed = errors.New(
	"RejectItemCommand must be created via NewRejectItemCommand constructor")

// RejectItemCommand is a station refusing one pending or dispatched item.
type RejectItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	caller  staffing.Caller

	guard guard.ConstructorGuard
}

// NewRejectItemCommand creates a command to reject an item.
func NewRejectItemCommand(orderID, itemID kernel.UUID, caller staffing.Caller) (RejectItemCommand, error) {
	cmd := RejectItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setCaller(caller),
	); err != nil {
		return RejectItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectItemCommand) Validate() error {
	return c.guard.Validate(ErrRejectItemCommandIsNotConstructed)
}

// OrderID returns the parent order.
func (c RejectItemCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the refused item.
func (c RejectItemCommand) ItemID() kernel.UUID { return c.itemID }

// Caller returns the scoped station caller.
func (c RejectItemCommand) Caller() staffing.Caller { return c.caller }

func (c *RejectItemCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *RejectItemCommand) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.itemID = id
	return nil
}

func (c *RejectItemCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
