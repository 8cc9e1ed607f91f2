package staffing

import (
	"errors"
	"fmt"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrZoneRoleAssignmentIsNotConstructed is returned when a ZoneRoleAssignment
// bypassed its constructor.
var ErrZoneRoleAssignmentIsNotConstructed = errors.New(
	"ZoneRoleAssignment must be created via NewZoneRoleAssignment constructor")

// ZoneRoleAssignment binds a station-role user to exactly one zone of an
// event. A user holds at most one assignment per (zone, role) pair; the
// storage layer enforces the uniqueness, the entity enforces that only
// station roles are ever bound.
type ZoneRoleAssignment struct {
	id         kernel.UUID
	tenantID   kernel.UUID
	eventID    kernel.UUID
	zoneID     kernel.UUID
	userID     kernel.UUID
	role       Role
	assignedAt time.Time

	events []kernel.DomainEvent
	guard  guard.ConstructorGuard
}

// NewZoneRoleAssignment binds a station-role user to a zone. Non-station
// roles (admin, waiter, cashier) see every zone and cannot be bound.
func NewZoneRoleAssignment(
	id, tenantID, eventID, zoneID, userID kernel.UUID,
	role Role,
	assignedAt time.Time,
) (*ZoneRoleAssignment, error) {
	a := &ZoneRoleAssignment{
		assignedAt: assignedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&a.id, id),
		validateID(&a.tenantID, tenantID),
		validateID(&a.eventID, eventID),
		validateID(&a.zoneID, zoneID),
		validateID(&a.userID, userID),
		a.setRole(role),
	); err != nil {
		return nil, err
	}

	a.events = append(a.events, ZoneRoleAssignedEvent{
		tenantID:   tenantID,
		occurredAt: assignedAt,
		EventID:    eventID,
		ZoneID:     zoneID,
		UserID:     userID,
		Role:       role,
	})

	return a, nil
}

// RestoreZoneRoleAssignment rebuilds an assignment from storage without
// re-running creation side effects.
func RestoreZoneRoleAssignment(
	id, tenantID, eventID, zoneID, userID kernel.UUID,
	role Role,
	assignedAt time.Time,
) (*ZoneRoleAssignment, error) {
	a := &ZoneRoleAssignment{
		assignedAt: assignedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID(&a.id, id),
		validateID(&a.tenantID, tenantID),
		validateID(&a.eventID, eventID),
		validateID(&a.zoneID, zoneID),
		validateID(&a.userID, userID),
		a.setRole(role),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *ZoneRoleAssignment) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if !role.IsStationRole() {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("role %q is not a station role and cannot be zone-bound", role))
	}
	a.role = role
	return nil
}

// Validate ensures the assignment was created through its constructor.
func (a *ZoneRoleAssignment) Validate() error {
	if a == nil {
		return ErrZoneRoleAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrZoneRoleAssignmentIsNotConstructed)
}

// ID returns the assignment identifier.
func (a *ZoneRoleAssignment) ID() kernel.UUID { return a.id }

// TenantID returns the owning tenant.
func (a *ZoneRoleAssignment) TenantID() kernel.UUID { return a.tenantID }

// EventID returns the event the assignment belongs to.
func (a *ZoneRoleAssignment) EventID() kernel.UUID { return a.eventID }

// ZoneID returns the zone the user is bound to.
func (a *ZoneRoleAssignment) ZoneID() kernel.UUID { return a.zoneID }

// UserID returns the bound user.
func (a *ZoneRoleAssignment) UserID() kernel.UUID { return a.userID }

// Role returns the station role of the binding.
func (a *ZoneRoleAssignment) Role() Role { return a.role }

// AssignedAt returns when the binding was made.
func (a *ZoneRoleAssignment) AssignedAt() time.Time { return a.assignedAt }

// PullEvents returns recorded domain events and clears the internal list.
func (a *ZoneRoleAssignment) PullEvents() []kernel.DomainEvent {
	events := a.events
	a.events = nil
	return events
}

// ZoneRoleAssignedEvent is raised when a station-role user is bound to a zone.
type ZoneRoleAssignedEvent struct {
	tenantID   kernel.UUID
	occurredAt time.Time
	EventID    kernel.UUID
	ZoneID     kernel.UUID
	UserID     kernel.UUID
	Role       Role
}

// EventName implements kernel.DomainEvent.
func (ZoneRoleAssignedEvent) EventName() string { return "staffing.role_assigned" }

// TenantID returns the tenant the event belongs to.
func (e ZoneRoleAssignedEvent) TenantID() kernel.UUID { return e.tenantID }

// OccurredAt returns when the assignment was made.
func (e ZoneRoleAssignedEvent) OccurredAt() time.Time { return e.occurredAt }
