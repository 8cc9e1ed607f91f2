package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrCreateWalkUpSaleCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrCreateWalkUpSaleCommandIsNotConstructed = errors.New(
	"CreateWalkUpSaleCommand must be created via NewCreateWalkUpSaleCommand constructor")

// CreateWalkUpSaleCommand represents a bar selling directly to a guest:
// no table, no station routing, items handed over on the spot.
type CreateWalkUpSaleCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	caller    staffing.Caller
	eventID   kernel.UUID
	guestName string
	lines     []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateWalkUpSaleCommand creates a command for a direct bar sale.
func NewCreateWalkUpSaleCommand(
	orderID kernel.UUID,
	caller staffing.Caller,
	eventID kernel.UUID,
	guestName string,
	lines []OrderLine,
) (CreateWalkUpSaleCommand, error) {
	cmd := CreateWalkUpSaleCommand{
		guestName: guestName,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCaller(caller),
		cmd.setEventID(eventID),
		cmd.setLines(lines),
	); err != nil {
		return CreateWalkUpSaleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateWalkUpSaleCommand) Validate() error {
	return c.guard.Validate(ErrCreateWalkUpSaleCommandIsNotConstructed)
}

// OrderID returns the identity the new sale will carry.
func (c CreateWalkUpSaleCommand) OrderID() kernel.UUID { return c.orderID }

// Caller returns the scoped caller recording the sale.
func (c CreateWalkUpSaleCommand) Caller() staffing.Caller { return c.caller }

// EventID returns the event the sale belongs to.
func (c CreateWalkUpSaleCommand) EventID() kernel.UUID { return c.eventID }

// GuestName returns the optional guest name.
func (c CreateWalkUpSaleCommand) GuestName() string { return c.guestName }

// Lines returns the sold lines.
func (c CreateWalkUpSaleCommand) Lines() []OrderLine { return c.lines }

func (c *CreateWalkUpSaleCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateWalkUpSaleCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *CreateWalkUpSaleCommand) setEventID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.eventID = id
	return nil
}

func (c *CreateWalkUpSaleCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	for _, line := range lines {
		if err := line.MenuItemID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, 999)
		}
	}
	c.lines = lines
	return nil
}
