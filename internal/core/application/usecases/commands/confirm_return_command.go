package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrConfirmReturnCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrConfirmReturnCommandIsNotConstructed = errors.New(
	"ConfirmReturnCommand must be created via NewConfirmReturnCommand constructor")

// ConfirmReturnCommand is the station acknowledging the physical item
// came back.
type ConfirmReturnCommand struct { //nolint:recvcheck //using for validation
	returnID kernel.UUID
	caller   staffing.Caller

	guard guard.ConstructorGuard
}

// NewConfirmReturnCommand creates a return confirmation command.
func NewConfirmReturnCommand(returnID kernel.UUID, caller staffing.Caller) (ConfirmReturnCommand, error) {
	cmd := ConfirmReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReturnID(returnID),
		cmd.setCaller(caller),
	); err != nil {
		return ConfirmReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmReturnCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReturnCommandIsNotConstructed)
}

// ReturnID returns the return being confirmed.
func (c ConfirmReturnCommand) ReturnID() kernel.UUID { return c.returnID }

// Caller returns the scoped caller.
func (c ConfirmReturnCommand) Caller() staffing.Caller { return c.caller }

func (c *ConfirmReturnCommand) setReturnID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.returnID = id
	return nil
}

func (c *ConfirmReturnCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
