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

// CreateOrderCommandHandler places a new table order. Prices and station
// types are captured from the catalog at this moment; later catalog
// changes never move an existing order's numbers.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.CatalogService
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.CatalogService,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		publisher:  publisher,
	}
}

// Handle processes the order placement command.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	caller := cmd.Caller()
	if err := caller.RequireRole(staffing.RoleWaiter, staffing.RoleAdmin); err != nil {
		return err
	}

	items, err := h.buildItems(ctx, caller.TenantID(), cmd.Lines())
	if err != nil {
		return err
	}

	tableID := cmd.TableID()
	aggregate, err := order.NewOrder(
		cmd.OrderID(), caller.TenantID(), cmd.EventID(), caller.UserID(),
		&tableID, cmd.GuestName(), items, time.Now().UTC())
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

func (h *CreateOrderCommandHandler) buildItems(
	ctx context.Context,
	tenantID kernel.UUID,
	lines []OrderLine,
) ([]*order.OrderItem, error) {
	items := make([]*order.OrderItem, 0, len(lines))
	for _, line := range lines {
		menuItem, err := h.catalog.GetMenuItem(ctx, tenantID, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if !menuItem.IsAvailable {
			return nil, errs.NewValueIsInvalidErrorWithCause("lines",
				fmt.Errorf("menu item %s is not available", menuItem.Name))
		}

		item, err := order.NewOrderItem(
			kernel.NewUUID(), menuItem.ID, menuItem.StationType,
			line.Quantity, menuItem.Price, line.Notes)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
