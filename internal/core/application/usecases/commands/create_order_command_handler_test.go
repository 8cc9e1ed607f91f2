package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/commands"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

func TestCreateOrderCommandHandler(t *testing.T) {
	menuItem := func(t *testing.T, available bool) ports.MenuItem {
		t.Helper()
		return ports.MenuItem{
			ID:          kernel.NewUUID(),
			Name:        "estrella galicia",
			Price:       mustMoney(t, "4.50"),
			StationType: order.StationDrinkDispenser,
			IsAvailable: available,
		}
	}

	t.Run("places an order with catalog prices", func(t *testing.T) {
		caller := newCaller(t, staffing.RoleWaiter)
		item := menuItem(t, true)

		catalog := new(MockCatalogService)
		catalog.On("GetMenuItem", mock.Anything, caller.TenantID(), item.ID).
			Return(item, nil)

		uow := newFakeUoW()
		var stored *order.Order
		uow.orders.On("Add", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*order.Order) }).
			Return(nil)

		publisher := &recordingPublisher{}
		handler := commands.NewCreateOrderCommandHandler(
			fakeOrderUoWFactory{uow}, catalog, publisher)

		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), caller, kernel.NewUUID(), kernel.NewUUID(), "mesa 12",
			[]commands.OrderLine{{MenuItemID: item.ID, Quantity: 2, Notes: "sin hielo"}})
		require.NoError(t, err)

		require.NoError(t, handler.Handle(context.Background(), cmd))

		assert.True(t, uow.committed)
		require.NotNil(t, stored)
		assert.Equal(t, order.Pending, stored.Status())
		assert.True(t, stored.Total().IsEqual(mustMoney(t, "9.00")))
		require.Len(t, stored.Items(), 1)
		assert.Equal(t, order.StationDrinkDispenser, stored.Items()[0].StationType())

		assert.Equal(t, []string{"order.created"}, eventNames(publisher.events))
		uow.orders.AssertExpectations(t)
		catalog.AssertExpectations(t)
	})

	t.Run("refuses an unavailable menu item before opening a transaction", func(t *testing.T) {
		caller := newCaller(t, staffing.RoleWaiter)
		item := menuItem(t, false)

		catalog := new(MockCatalogService)
		catalog.On("GetMenuItem", mock.Anything, caller.TenantID(), item.ID).
			Return(item, nil)

		uow := newFakeUoW()
		publisher := &recordingPublisher{}
		handler := commands.NewCreateOrderCommandHandler(
			fakeOrderUoWFactory{uow}, catalog, publisher)

		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), caller, kernel.NewUUID(), kernel.NewUUID(), "",
			[]commands.OrderLine{{MenuItemID: item.ID, Quantity: 1}})
		require.NoError(t, err)

		err = handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, uow.began)
		assert.Empty(t, publisher.events)
		uow.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("denies station roles", func(t *testing.T) {
		caller := newCaller(t, staffing.RoleBarStaff, kernel.NewUUID())

		catalog := new(MockCatalogService)
		uow := newFakeUoW()
		handler := commands.NewCreateOrderCommandHandler(
			fakeOrderUoWFactory{uow}, catalog, &recordingPublisher{})

		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), caller, kernel.NewUUID(), kernel.NewUUID(), "",
			[]commands.OrderLine{{MenuItemID: kernel.NewUUID(), Quantity: 1}})
		require.NoError(t, err)

		err = handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, errs.ErrScopeDenied)
		catalog.AssertNotCalled(t, "GetMenuItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a command that skipped the constructor", func(t *testing.T) {
		handler := commands.NewCreateOrderCommandHandler(
			fakeOrderUoWFactory{newFakeUoW()}, new(MockCatalogService), &recordingPublisher{})

		err := handler.Handle(context.Background(), commands.CreateOrderCommand{})
		assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
