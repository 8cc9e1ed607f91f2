package commands

import (
	"context"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
)

// RejectItemCommandHandler records a station refusing one item. Items
// already being prepared elsewhere, served, or retired cannot be rejected;
// the aggregate reports those as state conflicts.
type RejectItemCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	publisher  ports.EventPublisher
}

// NewRejectItemCommandHandler creates a handler for item rejection.
func NewRejectItemCommandHandler(
	uowFactory FulfillmentUoWFactory,
	publisher ports.EventPublisher,
) RejectItemCommandHandler {
	return RejectItemCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the rejection command.
func (h *RejectItemCommandHandler) Handle(ctx context.Context, cmd RejectItemCommand) error {
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

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, caller.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	item, err := aggregate.Item(cmd.ItemID())
	if err != nil {
		return err
	}

	if err = requireStationScope(ctx, uow.StaffingRepository(), caller, aggregate, item); err != nil {
		return err
	}

	if err = aggregate.RejectItem(cmd.ItemID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	uow.Track(aggregate)
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.PullCommittedEvents()...)
	return nil
}
