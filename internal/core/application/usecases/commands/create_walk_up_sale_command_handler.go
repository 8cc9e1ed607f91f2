package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

// CreateWalkUpSaleCommandHandler records a direct bar sale: the order is
// created already served, skipping dispatch and station routing, and goes
// straight to the cashier's ledger.
type CreateWalkUpSaleCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.CatalogService
	publisher  ports.EventPublisher
}

// NewCreateWalkUpSaleCommandHandler creates a handler for walk-up sales.
func NewCreateWalkUpSaleCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.CatalogService,
	publisher ports.EventPublisher,
) CreateWalkUpSaleCommandHandler {
	return CreateWalkUpSaleCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		publisher:  publisher,
	}
}

// Handle processes the walk-up sale command.
func (h *CreateWalkUpSaleCommandHandler) Handle(ctx context.Context, cmd CreateWalkUpSaleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	caller := cmd.Caller()
	if err := caller.RequireRole(
		staffing.RoleBarStaff, staffing.RoleCashier, staffing.RoleWaiter, staffing.RoleAdmin,
	); err != nil {
		return err
	}

	items := make([]*order.OrderItem, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		menuItem, err := h.catalog.GetMenuItem(ctx, caller.TenantID(), line.MenuItemID)
		if err != nil {
			return err
		}
		if !menuItem.IsAvailable {
			return errs.NewValueIsInvalidErrorWithCause("lines",
				fmt.Errorf("menu item %s is not available", menuItem.Name))
		}

		item, err := order.NewServedOrderItem(
			kernel.NewUUID(), menuItem.ID, line.Quantity, menuItem.Price, line.Notes)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	aggregate, err := order.NewWalkUpSale(
		cmd.OrderID(), caller.TenantID(), cmd.EventID(), caller.UserID(),
		cmd.GuestName(), items, time.Now().UTC())
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

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	uow.Track(aggregate)
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.PullCommittedEvents()...)
	return nil
}
