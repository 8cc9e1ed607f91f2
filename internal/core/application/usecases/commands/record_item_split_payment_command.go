package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrRecordItemSplitPaymentCommandIsNotConstructed is returned when the
// command bypassed its constructor.
var ErrRecordItemSplitPaymentCommandIsNotConstructed = errors.New(
	"RecordItemSplitPaymentCommand must be created via NewRecordItemSplitPaymentCommand constructor")

// RecordItemSplitPaymentCommand splits a bill by specific items rather
// than by amount.
type RecordItemSplitPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	allocations []payment.ItemAllocation
	caller      staffing.Caller

	guard guard.ConstructorGuard
}

// NewRecordItemSplitPaymentCommand creates a per-item split command.
func NewRecordItemSplitPaymentCommand(
	orderID kernel.UUID,
	allocations []payment.ItemAllocation,
	caller staffing.Caller,
) (RecordItemSplitPaymentCommand, error) {
	cmd := RecordItemSplitPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAllocations(allocations),
		cmd.setCaller(caller),
	); err != nil {
		return RecordItemSplitPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordItemSplitPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordItemSplitPaymentCommandIsNotConstructed)
}

// OrderID returns the order being settled.
func (c RecordItemSplitPaymentCommand) OrderID() kernel.UUID { return c.orderID }

// Allocations returns the per-item amounts.
func (c RecordItemSplitPaymentCommand) Allocations() []payment.ItemAllocation { return c.allocations }

// Caller returns the scoped caller.
func (c RecordItemSplitPaymentCommand) Caller() staffing.Caller { return c.caller }

func (c *RecordItemSplitPaymentCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *RecordItemSplitPaymentCommand) setAllocations(allocations []payment.ItemAllocation) error {
	if len(allocations) == 0 {
		return errs.NewValueIsRequiredError("allocations")
	}
	c.allocations = allocations
	return nil
}

func (c *RecordItemSplitPaymentCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
