package staffing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

func TestNewZoneRoleAssignment(t *testing.T) {
	now := time.Date(2025, 6, 14, 18, 30, 0, 0, time.UTC)

	t.Run("binds a station role to a zone and records the event", func(t *testing.T) {
		zoneID := newID(t)
		userID := newID(t)
		tenantID := newID(t)

		a, err := NewZoneRoleAssignment(
			newID(t), tenantID, newID(t), zoneID, userID, RoleMixologist, now)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, RoleMixologist, a.Role())
		assert.Equal(t, zoneID, a.ZoneID())

		events := a.PullEvents()
		require.Len(t, events, 1)
		assigned, ok := events[0].(ZoneRoleAssignedEvent)
		require.True(t, ok)
		assert.Equal(t, "staffing.role_assigned", assigned.EventName())
		assert.Equal(t, tenantID, assigned.TenantID())
		assert.Equal(t, zoneID, assigned.ZoneID)
		assert.Equal(t, userID, assigned.UserID)

		assert.Empty(t, a.PullEvents(), "events drain once")
	})

	t.Run("rejects non-station roles", func(t *testing.T) {
		for _, role := range []Role{RoleAdmin, RoleWaiter, RoleCashier} {
			_, err := NewZoneRoleAssignment(
				newID(t), newID(t), newID(t), newID(t), newID(t), role, now)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, role)
		}
	})

	t.Run("rejects empty zone", func(t *testing.T) {
		_, err := NewZoneRoleAssignment(
			newID(t), newID(t), newID(t), kernel.UUID{}, newID(t), RoleBarStaff, now)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreZoneRoleAssignment(t *testing.T) {
	now := time.Date(2025, 6, 14, 18, 30, 0, 0, time.UTC)

	a, err := RestoreZoneRoleAssignment(
		newID(t), newID(t), newID(t), newID(t), newID(t), RoleDrinkDispenser, now)

	require.NoError(t, err)
	assert.Empty(t, a.PullEvents(), "restore records no events")
	assert.Equal(t, now, a.AssignedAt())
}

func TestZoneAndTable(t *testing.T) {
	t.Run("zone requires a name", func(t *testing.T) {
		_, err := NewZone(newID(t), newID(t), newID(t), "")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("table number must be positive", func(t *testing.T) {
		_, err := NewTable(newID(t), newID(t), newID(t), newID(t), 0)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("valid zone and table", func(t *testing.T) {
		zone, err := NewZone(newID(t), newID(t), newID(t), "North Stand")
		require.NoError(t, err)
		require.NoError(t, zone.Validate())

		table, err := NewTable(newID(t), zone.TenantID(), zone.EventID(), zone.ID(), 12)
		require.NoError(t, err)
		require.NoError(t, table.Validate())
		assert.Equal(t, zone.ID(), table.ZoneID())
		assert.Equal(t, 12, table.Number())
	})
}
