package commands

import (
	"context"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
)

// MarkMenuItemUnavailableCommandHandler flips availability off and, in the
// same transaction, rejects every pending or dispatched item referencing
// the menu item. Items already ready or beyond are left alone. The flip
// and the sweep share one transaction, so an item can never end up
// unavailable with its routable items left pending.
type MarkMenuItemUnavailableCommandHandler struct {
	uowFactory OutOfStockUoWFactory
	publisher  ports.EventPublisher
}

// NewMarkMenuItemUnavailableCommandHandler creates an out-of-stock handler.
func NewMarkMenuItemUnavailableCommandHandler(
	uowFactory OutOfStockUoWFactory,
	publisher ports.EventPublisher,
) MarkMenuItemUnavailableCommandHandler {
	return MarkMenuItemUnavailableCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the out-of-stock command.
func (h *MarkMenuItemUnavailableCommandHandler) Handle(ctx context.Context, cmd MarkMenuItemUnavailableCommand) error {
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

	if err := uow.CatalogService().SetUnavailable(ctx, caller.TenantID(), cmd.MenuItemID()); err != nil {
		return err
	}

	repo := uow.OrderRepository()
	affected, err := repo.GetWithRoutableItemsForMenuItem(ctx, caller.TenantID(), cmd.MenuItemID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, aggregate := range affected {
		rejected, err := aggregate.RejectItemsForMenuItem(cmd.MenuItemID(), now)
		if err != nil {
			return err
		}
		if len(rejected) == 0 {
			continue
		}

		if err = repo.Update(ctx, aggregate); err != nil {
			return err
		}
		uow.Track(aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.PullCommittedEvents()...)
	return nil
}
