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
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/orderreturn"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

func TestReportReturnCommandHandler(t *testing.T) {
	t.Run("creates the record and moves the item in one transaction", func(t *testing.T) {
		tenantID := kernel.NewUUID()
		caller := callerForTenant(t, tenantID, staffing.RoleWaiter)
		aggregate := servedOrder(t, tenantID, "25.00")
		itemID := aggregate.Items()[0].ID()

		uow := newFakeUoW()
		uow.orders.On("Get", mock.Anything, tenantID, aggregate.ID()).Return(aggregate, nil)

		var record *orderreturn.OrderReturn
		uow.returns.On("Add", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { record = args.Get(1).(*orderreturn.OrderReturn) }).
			Return(nil)
		uow.orders.On("Update", mock.Anything, aggregate).Return(nil)

		publisher := &recordingPublisher{}
		handler := commands.NewReportReturnCommandHandler(fakeReturnUoWFactory{uow}, publisher)

		cmd, err := commands.NewReportReturnCommand(
			aggregate.ID(), itemID, "flat beer", caller)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(context.Background(), cmd))

		assert.True(t, uow.committed)
		require.NotNil(t, record)
		assert.Equal(t, itemID, record.OrderItemID())
		assert.True(t, record.LineTotal().IsEqual(mustMoney(t, "25.00")))

		item, err := aggregate.Item(itemID)
		require.NoError(t, err)
		assert.Equal(t, order.ItemReturned, item.Status())

		assert.Equal(t, []string{"return.reported", "order.item_returned"},
			eventNames(publisher.events))
		uow.returns.AssertExpectations(t)
		uow.orders.AssertExpectations(t)
	})

	t.Run("requires a reason", func(t *testing.T) {
		caller := newCaller(t, staffing.RoleWaiter)

		_, err := commands.NewReportReturnCommand(
			kernel.NewUUID(), kernel.NewUUID(), "", caller)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects an item the order does not contain", func(t *testing.T) {
		tenantID := kernel.NewUUID()
		caller := callerForTenant(t, tenantID, staffing.RoleWaiter)
		aggregate := servedOrder(t, tenantID, "25.00")

		uow := newFakeUoW()
		uow.orders.On("Get", mock.Anything, tenantID, aggregate.ID()).Return(aggregate, nil)

		handler := commands.NewReportReturnCommandHandler(
			fakeReturnUoWFactory{uow}, &recordingPublisher{})

		cmd, err := commands.NewReportReturnCommand(
			aggregate.ID(), kernel.NewUUID(), "never arrived", caller)
		require.NoError(t, err)

		err = handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.True(t, uow.rolledBack)
		uow.returns.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("refuses to return the same item twice", func(t *testing.T) {
		tenantID := kernel.NewUUID()
		caller := callerForTenant(t, tenantID, staffing.RoleWaiter)
		aggregate := servedOrder(t, tenantID, "25.00")
		itemID := aggregate.Items()[0].ID()

		uow := newFakeUoW()
		uow.orders.On("Get", mock.Anything, tenantID, aggregate.ID()).Return(aggregate, nil)
		uow.returns.On("Add", mock.Anything, mock.Anything).Return(nil)
		uow.orders.On("Update", mock.Anything, aggregate).Return(nil)

		handler := commands.NewReportReturnCommandHandler(
			fakeReturnUoWFactory{uow}, &recordingPublisher{})

		cmd, err := commands.NewReportReturnCommand(
			aggregate.ID(), itemID, "flat beer", caller)
		require.NoError(t, err)
		require.NoError(t, handler.Handle(context.Background(), cmd))

		err = handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}
