package commands

import (
	"context"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/orderreturn"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
)

// ReportReturnCommandHandler creates the return record and moves the item
// to returned in one transaction. Neither a return without the item
// transition nor the transition without a traceable record can ever be
// observed.
type ReportReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	publisher  ports.EventPublisher
}

// NewReportReturnCommandHandler creates a handler for return reports.
func NewReportReturnCommandHandler(
	uowFactory ReturnUoWFactory,
	publisher ports.EventPublisher,
) ReportReturnCommandHandler {
	return ReportReturnCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the return report.
func (h *ReportReturnCommandHandler) Handle(ctx context.Context, cmd ReportReturnCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	caller := cmd.Caller()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, caller.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	item, err := aggregate.Item(cmd.ItemID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	returnID := kernel.NewUUID()

	record, err := orderreturn.NewOrderReturn(
		returnID, caller.TenantID(), aggregate.ID(), item.ID(),
		caller.UserID(), cmd.Reason(), item.LineTotal(), now)
	if err != nil {
		return err
	}

	if err = aggregate.ReturnItem(cmd.ItemID(), returnID, now); err != nil {
		return err
	}

	if err = uow.ReturnRepository().Add(ctx, record); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	uow.Track(record)
	uow.Track(aggregate)
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.PullCommittedEvents()...)
	return nil
}
