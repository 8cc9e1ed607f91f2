package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrAllocateInventoryCommandIsNotConstructed is returned when the
// command bypassed its constructor.
var ErrAllocateInventoryCommandIsNotConstructed = errors.New(
	"AllocateInventoryCommand must be created via NewAllocateInventoryCommand constructor")

// AllocateInventoryCommand distributes a menu item's stock across zones.
type AllocateInventoryCommand struct { //nolint:recvcheck //using for validation
	menuItemID kernel.UUID
	plan       map[kernel.UUID]int
	caller     staffing.Caller

	guard guard.ConstructorGuard
}

// NewAllocateInventoryCommand creates an allocation command. plan maps
// zone IDs to the units parked there.
func NewAllocateInventoryCommand(
	menuItemID kernel.UUID,
	plan map[kernel.UUID]int,
	caller staffing.Caller,
) (AllocateInventoryCommand, error) {
	cmd := AllocateInventoryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMenuItemID(menuItemID),
		cmd.setPlan(plan),
		cmd.setCaller(caller),
	); err != nil {
		return AllocateInventoryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AllocateInventoryCommand) Validate() error {
	return c.guard.Validate(ErrAllocateInventoryCommandIsNotConstructed)
}

// MenuItemID returns the menu item being distributed.
func (c AllocateInventoryCommand) MenuItemID() kernel.UUID { return c.menuItemID }

// Plan returns the requested zone distribution.
func (c AllocateInventoryCommand) Plan() map[kernel.UUID]int { return c.plan }

// Caller returns the scoped caller.
func (c AllocateInventoryCommand) Caller() staffing.Caller { return c.caller }

func (c *AllocateInventoryCommand) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.menuItemID = id
	return nil
}

func (c *AllocateInventoryCommand) setPlan(plan map[kernel.UUID]int) error {
	if len(plan) == 0 {
		return errs.NewValueIsRequiredError("plan")
	}
	c.plan = plan
	return nil
}

func (c *AllocateInventoryCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
