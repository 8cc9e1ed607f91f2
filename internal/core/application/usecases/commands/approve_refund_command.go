package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrApproveRefundCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrApproveRefundCommandIsNotConstructed = errors.New(
	"ApproveRefundCommand must be created via NewApproveRefundCommand constructor")

// ApproveRefundCommand sets the refund amount of a reported return. A nil
// amount approves the full line total.
type ApproveRefundCommand struct { //nolint:recvcheck //using for validation
	returnID kernel.UUID
	amount   *kernel.Money
	caller   staffing.Caller

	guard guard.ConstructorGuard
}

// NewApproveRefundCommand creates a refund approval command.
func NewApproveRefundCommand(
	returnID kernel.UUID,
	amount *kernel.Money,
	caller staffing.Caller,
) (ApproveRefundCommand, error) {
	cmd := ApproveRefundCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReturnID(returnID),
		cmd.setAmount(amount),
		cmd.setCaller(caller),
	); err != nil {
		return ApproveRefundCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveRefundCommand) Validate() error {
	return c.guard.Validate(ErrApproveRefundCommandIsNotConstructed)
}

// ReturnID returns the return being approved.
func (c ApproveRefundCommand) ReturnID() kernel.UUID { return c.returnID }

// Amount returns the explicit refund amount, nil for the full line total.
func (c ApproveRefundCommand) Amount() *kernel.Money { return c.amount }

// Caller returns the scoped caller.
func (c ApproveRefundCommand) Caller() staffing.Caller { return c.caller }

func (c *ApproveRefundCommand) setReturnID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.returnID = id
	return nil
}

func (c *ApproveRefundCommand) setAmount(amount *kernel.Money) error {
	if amount != nil && !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount")
	}
	c.amount = amount
	return nil
}

func (c *ApproveRefundCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
