package commands

import (
	"context"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

// ConfirmReturnCommandHandler records the station's acknowledgement of a
// physical return. The item was already moved to returned when the report
// was filed; this only stamps the audit fields, exactly once.
type ConfirmReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	publisher  ports.EventPublisher
}

// NewConfirmReturnCommandHandler creates a return confirmation handler.
func NewConfirmReturnCommandHandler(
	uowFactory ReturnUoWFactory,
	publisher ports.EventPublisher,
) ConfirmReturnCommandHandler {
	return ConfirmReturnCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the confirmation.
func (h *ConfirmReturnCommandHandler) Handle(ctx context.Context, cmd ConfirmReturnCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	caller := cmd.Caller()
	if caller.Role() != staffing.RoleAdmin && !caller.Role().IsStationRole() {
		return errs.NewScopeError("role")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ReturnRepository()
	record, err := repo.Get(ctx, caller.TenantID(), cmd.ReturnID())
	if err != nil {
		return err
	}

	if err = record.ConfirmReturn(caller.UserID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, record); err != nil {
		return err
	}

	uow.Track(record)
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.PullCommittedEvents()...)
	return nil
}
