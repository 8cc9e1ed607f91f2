package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrMarkOrderServedCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrMarkOrderServedCommandIsNotConstructed = errors.New(
	"MarkOrderServedCommand must be created via NewMarkOrderServedCommand constructor")

// MarkOrderServedCommand is the waiter confirming the whole order reached
// the table.
type MarkOrderServedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  staffing.Caller

	guard guard.ConstructorGuard
}

// NewMarkOrderServedCommand creates a command to mark an order served.
func NewMarkOrderServedCommand(orderID kernel.UUID, caller staffing.Caller) (MarkOrderServedCommand, error) {
	cmd := MarkOrderServedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCaller(caller),
	); err != nil {
		return MarkOrderServedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderServedCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderServedCommandIsNotConstructed)
}

// OrderID returns the order to mark served.
func (c MarkOrderServedCommand) OrderID() kernel.UUID { return c.orderID }

// Caller returns the scoped caller.
func (c MarkOrderServedCommand) Caller() staffing.Caller { return c.caller }

func (c *MarkOrderServedCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *MarkOrderServedCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
