package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor")

// OrderLine is one requested item of a new order. Price and station type
// come from the catalog at handling time, never from the client.
type OrderLine struct {
	MenuItemID kernel.UUID
	Quantity   int
	Notes      string
}

// CreateOrderCommand represents a waiter placing a table order.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	caller    staffing.Caller
	eventID   kernel.UUID
	tableID   kernel.UUID
	guestName string
	lines     []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new table order.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	caller staffing.Caller,
	eventID, tableID kernel.UUID,
	guestName string,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guestName: guestName,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCaller(caller),
		cmd.setEventID(eventID),
		cmd.setTableID(tableID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identity the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Caller returns the scoped caller placing the order.
func (c CreateOrderCommand) Caller() staffing.Caller { return c.caller }

// EventID returns the event the order belongs to.
func (c CreateOrderCommand) EventID() kernel.UUID { return c.eventID }

// TableID returns the table the order is served at.
func (c CreateOrderCommand) TableID() kernel.UUID { return c.tableID }

// GuestName returns the optional guest name.
func (c CreateOrderCommand) GuestName() string { return c.guestName }

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []OrderLine { return c.lines }

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *CreateOrderCommand) setEventID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.eventID = id
	return nil
}

func (c *CreateOrderCommand) setTableID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.tableID = id
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
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
