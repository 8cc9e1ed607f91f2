package commands

import (
	"context"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
)

// ApproveRefundCommandHandler sets the refund amount of a return. The
// amount is capped by the item's line total; a second approval is a state
// conflict rather than an overwrite.
type ApproveRefundCommandHandler struct {
	uowFactory ReturnUoWFactory
	publisher  ports.EventPublisher
}

// NewApproveRefundCommandHandler creates a refund approval handler.
func NewApproveRefundCommandHandler(
	uowFactory ReturnUoWFactory,
	publisher ports.EventPublisher,
) ApproveRefundCommandHandler {
	return ApproveRefundCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the refund approval.
func (h *ApproveRefundCommandHandler) Handle(ctx context.Context, cmd ApproveRefundCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	caller := cmd.Caller()
	if err := caller.RequireRole(staffing.RoleCashier, staffing.RoleAdmin); err != nil {
		return err
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

	if err = record.ApproveRefund(cmd.Amount(), caller.UserID(), time.Now().UTC()); err != nil {
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
