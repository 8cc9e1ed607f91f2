package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/commands"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

func TestAssignZoneRoleCommandHandler(t *testing.T) {
	t.Run("binds a station role to a zone", func(t *testing.T) {
		tenantID := kernel.NewUUID()
		caller := callerForTenant(t, tenantID, staffing.RoleAdmin)
		zoneID := kernel.NewUUID()
		userID := kernel.NewUUID()

		uow := newFakeUoW()
		var assignment *staffing.ZoneRoleAssignment
		uow.staff.On("AddAssignment", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				assignment = args.Get(1).(*staffing.ZoneRoleAssignment)
			}).
			Return(nil)

		publisher := &recordingPublisher{}
		handler := commands.NewAssignZoneRoleCommandHandler(fakeStaffingUoWFactory{uow}, publisher)

		cmd, err := commands.NewAssignZoneRoleCommand(
			kernel.NewUUID(), zoneID, userID, staffing.RoleDrinkDispenser, caller)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(context.Background(), cmd))

		assert.True(t, uow.committed)
		require.NotNil(t, assignment)
		assert.Equal(t, zoneID, assignment.ZoneID())
		assert.Equal(t, userID, assignment.UserID())
		assert.Equal(t, []string{"staffing.role_assigned"}, eventNames(publisher.events))
	})

	t.Run("refuses roles that see every zone", func(t *testing.T) {
		caller := newCaller(t, staffing.RoleAdmin)

		uow := newFakeUoW()
		handler := commands.NewAssignZoneRoleCommandHandler(
			fakeStaffingUoWFactory{uow}, &recordingPublisher{})

		cmd, err := commands.NewAssignZoneRoleCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), staffing.RoleWaiter, caller)
		require.NoError(t, err)

		err = handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, uow.began)
		uow.staff.AssertNotCalled(t, "AddAssignment", mock.Anything, mock.Anything)
	})

	t.Run("surfaces a duplicate binding as a conflict", func(t *testing.T) {
		caller := newCaller(t, staffing.RoleAdmin)

		uow := newFakeUoW()
		uow.staff.On("AddAssignment", mock.Anything, mock.Anything).
			Return(errs.NewStateConflictError("assignment"))

		handler := commands.NewAssignZoneRoleCommandHandler(
			fakeStaffingUoWFactory{uow}, &recordingPublisher{})

		cmd, err := commands.NewAssignZoneRoleCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), staffing.RoleMixologist, caller)
		require.NoError(t, err)

		err = handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.False(t, uow.committed)
		assert.True(t, uow.rolledBack)
	})

	t.Run("only admins assign roles", func(t *testing.T) {
		caller := newCaller(t, staffing.RoleCashier)

		uow := newFakeUoW()
		handler := commands.NewAssignZoneRoleCommandHandler(
			fakeStaffingUoWFactory{uow}, &recordingPublisher{})

		cmd, err := commands.NewAssignZoneRoleCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), staffing.RoleBarStaff, caller)
		require.NoError(t, err)

		err = handler.Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, errs.ErrScopeDenied)
		assert.False(t, uow.began)
	})
}
