package commands

import (
	"context"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
)

// AssignZoneRoleCommandHandler binds a station-role user to a zone,
// replacing a previous holder of the same zone and role in one
// transaction. The entity refuses non-station roles; a racing duplicate
// binding surfaces from the storage layer as a state conflict.
type AssignZoneRoleCommandHandler struct {
	uowFactory StaffingUoWFactory
	publisher  ports.EventPublisher
}

// NewAssignZoneRoleCommandHandler creates an assignment handler.
func NewAssignZoneRoleCommandHandler(
	uowFactory StaffingUoWFactory,
	publisher ports.EventPublisher,
) AssignZoneRoleCommandHandler {
	return AssignZoneRoleCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the assignment command.
func (h *AssignZoneRoleCommandHandler) Handle(ctx context.Context, cmd AssignZoneRoleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	caller := cmd.Caller()
	if err := caller.RequireRole(staffing.RoleAdmin); err != nil {
		return err
	}

	assignment, err := staffing.NewZoneRoleAssignment(
		kernel.NewUUID(), caller.TenantID(), cmd.EventID(), cmd.ZoneID(),
		cmd.UserID(), cmd.Role(), time.Now().UTC())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.StaffingRepository().AddAssignment(ctx, assignment); err != nil {
		return err
	}

	uow.Track(assignment)
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.PullCommittedEvents()...)
	return nil
}
