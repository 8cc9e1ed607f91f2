package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/commands"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/inventory"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

func TestAllocateInventoryCommandHandler(t *testing.T) {
	stockItem := func(id kernel.UUID, stock int) ports.MenuItem {
		return ports.MenuItem{
			ID:               id,
			Name:             "bratwurst",
			CurrentInventory: stock,
			IsAvailable:      true,
		}
	}

	t.Run("distributes stock across zones", func(t *testing.T) {
		tenantID := kernel.NewUUID()
		menuItemID := kernel.NewUUID()
		caller := callerForTenant(t, tenantID, staffing.RoleAdmin)

		catalog := new(MockCatalogService)
		catalog.On("GetMenuItem", mock.Anything, tenantID, menuItemID).
			Return(stockItem(menuItemID, 10), nil)

		uow := newFakeUoW()
		uow.inv.On("GetAllocationsByMenuItem", mock.Anything, tenantID, menuItemID).
			Return([]*inventory.ZoneAllocation{}, nil)
		var written []*inventory.ZoneAllocation
		uow.inv.On("UpsertAllocations", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { written = args.Get(1).([]*inventory.ZoneAllocation) }).
			Return(nil)

		handler := commands.NewAllocateInventoryCommandHandler(
			fakeInventoryUoWFactory{uow}, catalog, &recordingPublisher{})

		cmd, err := commands.NewAllocateInventoryCommand(
			menuItemID, map[kernel.UUID]int{kernel.NewUUID(): 6, kernel.NewUUID(): 4}, caller)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(context.Background(), cmd))
		assert.True(t, uow.committed)
		assert.Len(t, written, 2)
	})

	t.Run("allocations left in other zones count against the cap", func(t *testing.T) {
		tenantID := kernel.NewUUID()
		menuItemID := kernel.NewUUID()
		caller := callerForTenant(t, tenantID, staffing.RoleAdmin)

		catalog := new(MockCatalogService)
		catalog.On("GetMenuItem", mock.Anything, tenantID, menuItemID).
			Return(stockItem(menuItemID, 10), nil)

		// Zones A and B already hold all ten units; a later plan for a
		// third zone must not push the cross-zone sum past the stock.
		parked := []*inventory.ZoneAllocation{
			allocation(t, tenantID, menuItemID, kernel.NewUUID(), 6),
			allocation(t, tenantID, menuItemID, kernel.NewUUID(), 4),
		}

		uow := newFakeUoW()
		uow.inv.On("GetAllocationsByMenuItem", mock.Anything, tenantID, menuItemID).
			Return(parked, nil)

		handler := commands.NewAllocateInventoryCommandHandler(
			fakeInventoryUoWFactory{uow}, catalog, &recordingPublisher{})

		cmd, err := commands.NewAllocateInventoryCommand(
			menuItemID, map[kernel.UUID]int{kernel.NewUUID(): 10}, caller)
		require.NoError(t, err)

		err = handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, uow.rolledBack)
		uow.inv.AssertNotCalled(t, "UpsertAllocations", mock.Anything, mock.Anything)
	})

	t.Run("replanning the same zones replaces their quantities", func(t *testing.T) {
		tenantID := kernel.NewUUID()
		menuItemID := kernel.NewUUID()
		zoneA := kernel.NewUUID()
		zoneB := kernel.NewUUID()
		caller := callerForTenant(t, tenantID, staffing.RoleAdmin)

		catalog := new(MockCatalogService)
		catalog.On("GetMenuItem", mock.Anything, tenantID, menuItemID).
			Return(stockItem(menuItemID, 10), nil)

		parked := []*inventory.ZoneAllocation{
			allocation(t, tenantID, menuItemID, zoneA, 6),
			allocation(t, tenantID, menuItemID, zoneB, 4),
		}

		uow := newFakeUoW()
		uow.inv.On("GetAllocationsByMenuItem", mock.Anything, tenantID, menuItemID).
			Return(parked, nil)
		uow.inv.On("UpsertAllocations", mock.Anything, mock.Anything).Return(nil)

		handler := commands.NewAllocateInventoryCommandHandler(
			fakeInventoryUoWFactory{uow}, catalog, &recordingPublisher{})

		cmd, err := commands.NewAllocateInventoryCommand(
			menuItemID, map[kernel.UUID]int{zoneA: 2, zoneB: 8}, caller)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(context.Background(), cmd))
		assert.True(t, uow.committed)
	})

	t.Run("plan above current inventory touches nothing", func(t *testing.T) {
		tenantID := kernel.NewUUID()
		menuItemID := kernel.NewUUID()
		caller := callerForTenant(t, tenantID, staffing.RoleAdmin)

		catalog := new(MockCatalogService)
		catalog.On("GetMenuItem", mock.Anything, tenantID, menuItemID).
			Return(stockItem(menuItemID, 5), nil)

		uow := newFakeUoW()
		uow.inv.On("GetAllocationsByMenuItem", mock.Anything, tenantID, menuItemID).
			Return([]*inventory.ZoneAllocation{}, nil)

		handler := commands.NewAllocateInventoryCommandHandler(
			fakeInventoryUoWFactory{uow}, catalog, &recordingPublisher{})

		cmd, err := commands.NewAllocateInventoryCommand(
			menuItemID, map[kernel.UUID]int{kernel.NewUUID(): 6}, caller)
		require.NoError(t, err)

		err = handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		uow.inv.AssertNotCalled(t, "UpsertAllocations", mock.Anything, mock.Anything)
	})

	t.Run("only admins distribute inventory", func(t *testing.T) {
		caller := newCaller(t, staffing.RoleWaiter)

		uow := newFakeUoW()
		handler := commands.NewAllocateInventoryCommandHandler(
			fakeInventoryUoWFactory{uow}, new(MockCatalogService), &recordingPublisher{})

		cmd, err := commands.NewAllocateInventoryCommand(
			kernel.NewUUID(), map[kernel.UUID]int{kernel.NewUUID(): 1}, caller)
		require.NoError(t, err)

		err = handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, errs.ErrScopeDenied)
		assert.False(t, uow.began)
	})
}
