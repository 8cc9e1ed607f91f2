package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrRecordPaymentCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor")

// RecordPaymentCommand appends one single-method row to an order's ledger.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  kernel.Money
	method  payment.Method
	notes   string
	caller  staffing.Caller

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to record a payment.
func NewRecordPaymentCommand(
	orderID kernel.UUID,
	amount kernel.Money,
	method payment.Method,
	notes string,
	caller staffing.Caller,
) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAmount(amount),
		cmd.setMethod(method),
		cmd.setCaller(caller),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// OrderID returns the order being paid.
func (c RecordPaymentCommand) OrderID() kernel.UUID { return c.orderID }

// Amount returns the paid amount.
func (c RecordPaymentCommand) Amount() kernel.Money { return c.amount }

// Method returns the payment method.
func (c RecordPaymentCommand) Method() payment.Method { return c.method }

// Notes returns the optional cashier notes.
func (c RecordPaymentCommand) Notes() string { return c.notes }

// Caller returns the scoped caller.
func (c RecordPaymentCommand) Caller() staffing.Caller { return c.caller }

func (c *RecordPaymentCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *RecordPaymentCommand) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount")
	}
	c.amount = amount
	return nil
}

func (c *RecordPaymentCommand) setMethod(method payment.Method) error {
	if err := method.Validate(); err != nil {
		return err
	}
	if method == payment.MethodSplitComponent {
		return errs.NewValueIsInvalidError("method")
	}
	c.method = method
	return nil
}

func (c *RecordPaymentCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
