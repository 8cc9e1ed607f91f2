package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrMarkMenuItemUnavailableCommandIsNotConstructed is returned when the
// command bypassed its constructor.
var ErrMarkMenuItemUnavailableCommandIsNotConstructed = errors.New(
	"MarkMenuItemUnavailableCommand must be created via NewMarkMenuItemUnavailableCommand constructor")

// MarkMenuItemUnavailableCommand takes a menu item off sale and sweeps
// its still-routable order items to rejected.
type MarkMenuItemUnavailableCommand struct { //nolint:recvcheck //using for validation
	menuItemID kernel.UUID
	caller     staffing.Caller

	guard guard.ConstructorGuard
}

// NewMarkMenuItemUnavailableCommand creates an out-of-stock command.
func NewMarkMenuItemUnavailableCommand(menuItemID kernel.UUID, caller staffing.Caller) (MarkMenuItemUnavailableCommand, error) {
	cmd := MarkMenuItemUnavailableCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMenuItemID(menuItemID),
		cmd.setCaller(caller),
	); err != nil {
		return MarkMenuItemUnavailableCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkMenuItemUnavailableCommand) Validate() error {
	return c.guard.Validate(ErrMarkMenuItemUnavailableCommandIsNotConstructed)
}

// MenuItemID returns the menu item going off sale.
func (c MarkMenuItemUnavailableCommand) MenuItemID() kernel.UUID { return c.menuItemID }

// Caller returns the scoped caller.
func (c MarkMenuItemUnavailableCommand) Caller() staffing.Caller { return c.caller }

func (c *MarkMenuItemUnavailableCommand) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.menuItemID = id
	return nil
}

func (c *MarkMenuItemUnavailableCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
