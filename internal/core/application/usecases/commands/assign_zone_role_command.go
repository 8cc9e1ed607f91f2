package commands

import (
	"errors"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrAssignZoneRoleCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrAssignZoneRoleCommandIsNotConstructed = errors.New(
	"AssignZoneRoleCommand must be created via NewAssignZoneRoleCommand constructor")

// AssignZoneRoleCommand binds a station-role user to a zone of an event.
type AssignZoneRoleCommand struct { //nolint:recvcheck //using for validation
	eventID kernel.UUID
	zoneID  kernel.UUID
	userID  kernel.UUID
	role    staffing.Role
	caller  staffing.Caller

	guard guard.ConstructorGuard
}

// NewAssignZoneRoleCommand creates a zone-role assignment command.
func NewAssignZoneRoleCommand(
	eventID, zoneID, userID kernel.UUID,
	role staffing.Role,
	caller staffing.Caller,
) (AssignZoneRoleCommand, error) {
	cmd := AssignZoneRoleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEventID(eventID),
		cmd.setZoneID(zoneID),
		cmd.setUserID(userID),
		cmd.setRole(role),
		cmd.setCaller(caller),
	); err != nil {
		return AssignZoneRoleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignZoneRoleCommand) Validate() error {
	return c.guard.Validate(ErrAssignZoneRoleCommandIsNotConstructed)
}

// EventID returns the event the binding belongs to.
func (c AssignZoneRoleCommand) EventID() kernel.UUID { return c.eventID }

// ZoneID returns the zone being bound.
func (c AssignZoneRoleCommand) ZoneID() kernel.UUID { return c.zoneID }

// UserID returns the user being bound.
func (c AssignZoneRoleCommand) UserID() kernel.UUID { return c.userID }

// Role returns the station role of the binding.
func (c AssignZoneRoleCommand) Role() staffing.Role { return c.role }

// Caller returns the scoped caller.
func (c AssignZoneRoleCommand) Caller() staffing.Caller { return c.caller }

func (c *AssignZoneRoleCommand) setEventID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.eventID = id
	return nil
}

func (c *AssignZoneRoleCommand) setZoneID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.zoneID = id
	return nil
}

func (c *AssignZoneRoleCommand) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.userID = id
	return nil
}

func (c *AssignZoneRoleCommand) setRole(role staffing.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}

func (c *AssignZoneRoleCommand) setCaller(caller staffing.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}
