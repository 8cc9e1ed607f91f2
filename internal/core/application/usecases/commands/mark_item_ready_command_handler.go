package commands

import (
	"context"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
)

// MarkItemReadyCommandHandler records a station finishing one item. The
// caller's station role and zone scope are verified against the item and
// its order's table before the transition runs.
type MarkItemReadyCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	publisher  ports.EventPublisher
}

// NewMarkItemReadyCommandHandler creates a handler for item completion.
func NewMarkItemReadyCommandHandler(
	uowFactory FulfillmentUoWFactory,
	publisher ports.EventPublisher,
) MarkItemReadyCommandHandler {
	return MarkItemReadyCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the item completion command.
func (h *MarkItemReadyCommandHandler) Handle(ctx context.Context, cmd MarkItemReadyCommand) error {
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

	if err = aggregate.MarkItemReady(cmd.ItemID(), caller.UserID(), time.Now().UTC()); err != nil {
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
