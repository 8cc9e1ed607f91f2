package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrConfirmOrderPaidCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrConfirmOrderPaidCommandIsNotConstructed = errors.New(
	"ConfirmOrderPaidCommand must be created via NewConfirmOrderPaidCommand constructor")

// ConfirmOrderPaidCommand is the cashier closing an order after the
// ledger balances.
type ConfirmOrderPaidCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  staffing.Caller

	guard guard.ConstructorGuard
}

// NewConfirmOrderPaidCommand creates a command to close an order as paid.
func NewConfirmOrderPaidCommand(orderID kernel.UUID, caller staffing.Caller) (ConfirmOrderPaidCommand, error) {
	cmd := ConfirmOrderPaidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCaller(caller),
	); err != nil {
		return ConfirmOrderPaidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmOrderPaidCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderPaidCommandIsNotConstructed)
}

// OrderID returns the order to close.
func (c ConfirmOrderPaidCommand) OrderID() kernel.UUID { return c.orderID }

// Caller returns the scoped caller.
func (c ConfirmOrderPaidCommand) Caller() staffing.Caller { return c.caller }

func (c *ConfirmOrderPaidCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ConfirmOrderPaidCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
