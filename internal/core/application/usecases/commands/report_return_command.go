package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrReportReturnCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrReportReturnCommandIsNotConstructed = errors.New(
	"ReportReturnCommand must be created via NewReportReturnCommand constructor")

// ReportReturnCommand reports that a served item came back to the counter.
type ReportReturnCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	reason  string
	caller  staffing.Caller

	guard guard.ConstructorGuard
}

// NewReportReturnCommand creates a command to report a return.
func NewReportReturnCommand(
	orderID, itemID kernel.UUID,
	reason string,
	caller staffing.Caller,
) (ReportReturnCommand, error) {
	cmd := ReportReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setReason(reason),
		cmd.setCaller(caller),
	); err != nil {
		return ReportReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportReturnCommand) Validate() error {
	return c.guard.Validate(ErrReportReturnCommandIsNotConstructed)
}

// OrderID returns the parent order.
func (c ReportReturnCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the item coming back.
func (c ReportReturnCommand) ItemID() kernel.UUID { return c.itemID }

// Reason returns the human-readable return reason.
func (c ReportReturnCommand) Reason() string { return c.reason }

// Caller returns the scoped caller.
func (c ReportReturnCommand) Caller() staffing.Caller { return c.caller }

func (c *ReportReturnCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ReportReturnCommand) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.itemID = id
	return nil
}

func (c *ReportReturnCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}

func (c *ReportReturnCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
