package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrRecordSplitPaymentCommandIsNotConstructed is returned when the
// command bypassed its constructor.
var ErrRecordSplitPaymentCommandIsNotConstructed = errors.New(
	"RecordSplitPaymentCommand must be created via NewRecordSplitPaymentCommand constructor")

// RecordSplitPaymentCommand settles an order across multiple methods in
// one logical transaction.
type RecordSplitPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	components payment.SplitComponents
	caller     staffing.Caller

	guard guard.ConstructorGuard
}

// NewRecordSplitPaymentCommand creates a split payment command.
func NewRecordSplitPaymentCommand(
	orderID kernel.UUID,
	components payment.SplitComponents,
	caller staffing.Caller,
) (RecordSplitPaymentCommand, error) {
	cmd := RecordSplitPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setComponents(components),
		cmd.setCaller(caller),
	); err != nil {
		return RecordSplitPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordSplitPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordSplitPaymentCommandIsNotConstructed)
}

// OrderID returns the order being settled.
func (c RecordSplitPaymentCommand) OrderID() kernel.UUID { return c.orderID }

// Components returns the per-method amounts.
func (c RecordSplitPaymentCommand) Components() payment.SplitComponents { return c.components }

// Caller returns the scoped caller.
func (c RecordSplitPaymentCommand) Caller() staffing.Caller { return c.caller }

func (c *RecordSplitPaymentCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *RecordSplitPaymentCommand) setComponents(components payment.SplitComponents) error {
	if components.Sum().IsZero() {
		return errs.NewValueIsRequiredError("components")
	}
	c.components = components
	return nil
}

func (c *RecordSplitPaymentCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
