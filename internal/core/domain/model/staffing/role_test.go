package staffing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

func TestRoleValidate(t *testing.T) {
	t.Run("accepts every known role", func(t *testing.T) {
		for _, role := range []Role{
			RoleAdmin, RoleWaiter, RoleCashier,
			RoleDrinkDispenser, RoleMealDispenser, RoleMixologist, RoleBarStaff,
		} {
			assert.NoError(t, role.Validate(), role)
		}
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		err := Role("sommelier").Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRoleStationType(t *testing.T) {
	t.Run("station roles map to their station", func(t *testing.T) {
		tests := map[Role]order.StationType{
			RoleDrinkDispenser: order.StationDrinkDispenser,
			RoleMealDispenser:  order.StationMealDispenser,
			RoleMixologist:     order.StationMixologist,
			RoleBarStaff:       order.StationBar,
		}

		for role, want := range tests {
			got, err := role.StationType()
			require.NoError(t, err, role)
			assert.Equal(t, want, got)
			assert.True(t, role.IsStationRole())
		}
	})

	t.Run("non-station roles have no station queue", func(t *testing.T) {
		for _, role := range []Role{RoleAdmin, RoleWaiter, RoleCashier} {
			_, err := role.StationType()
			require.Error(t, err, role)
			assert.ErrorIs(t, err, errs.ErrScopeDenied)
			assert.False(t, role.IsStationRole())
		}
	})
}
