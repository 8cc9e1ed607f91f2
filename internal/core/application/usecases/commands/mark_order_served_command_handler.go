package commands

import (
	"context"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
)

// MarkOrderServedCommandHandler applies the waiter's elevated transition
// to served. Items still sitting in ready cascade to served in the same
// write, never staying behind the order.
type MarkOrderServedCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewMarkOrderServedCommandHandler creates a handler for serving orders.
func NewMarkOrderServedCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) MarkOrderServedCommandHandler {
	return MarkOrderServedCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the serve command.
func (h *MarkOrderServedCommandHandler) Handle(ctx context.Context, cmd MarkOrderServedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	caller := cmd.Caller()
	if err := caller.RequireRole(staffing.RoleWaiter, staffing.RoleAdmin); err != nil {
		return err
	}

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

	if err = aggregate.MarkServed(time.Now().UTC()); err != nil {
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
