package commands

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/inventory"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
)

// AllocateInventoryCommandHandler upserts one allocation row per zone.
// The whole plan is validated against the catalog's current inventory
// before any row is written; a failed plan touches nothing.
type AllocateInventoryCommandHandler struct {
	uowFactory InventoryUoWFactory
	catalog    ports.CatalogService
	publisher  ports.EventPublisher
}

// NewAllocateInventoryCommandHandler creates an allocation handler.
func NewAllocateInventoryCommandHandler(
	uowFactory InventoryUoWFactory,
	catalog ports.CatalogService,
	publisher ports.EventPublisher,
) AllocateInventoryCommandHandler {
	return AllocateInventoryCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		publisher:  publisher,
	}
}

// Handle processes the allocation command.
func (h *AllocateInventoryCommandHandler) Handle(ctx context.Context, cmd AllocateInventoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	caller := cmd.Caller()
	if err := caller.RequireRole(staffing.RoleAdmin); err != nil {
		return err
	}

	menuItem, err := h.catalog.GetMenuItem(ctx, caller.TenantID(), cmd.MenuItemID())
	if err != nil {
		return err
	}

	rows := make([]*inventory.ZoneAllocation, 0, len(cmd.Plan()))
	for zoneID, quantity := range cmd.Plan() {
		row, err := inventory.NewZoneAllocation(
			kernel.NewUUID(), caller.TenantID(), menuItem.ID, zoneID, quantity)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.InventoryRepository()

	// The cap spans every zone, so rows the plan leaves untouched count
	// against it. Read inside the transaction to keep the sum honest.
	existing, err := repo.GetAllocationsByMenuItem(ctx, caller.TenantID(), menuItem.ID)
	if err != nil {
		return err
	}
	if err = inventory.ValidateAllocationPlan(cmd.Plan(), existing, menuItem.CurrentInventory); err != nil {
		return err
	}

	if err = repo.UpsertAllocations(ctx, rows); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.PullCommittedEvents()...)
	return nil
}
