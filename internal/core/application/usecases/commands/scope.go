package commands

import (
	"context"
	"fmt"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

// requireStationScope gates a station actor's write to one order item:
// the caller's role must serve the item's station type, and the parent
// order's table must stand in one of the caller's zones. Admins pass both
// gates. Walk-up orders have no table and therefore no zone; station
// writes to them are denied rather than defaulted open.
func requireStationScope(
	ctx context.Context,
	staffingRepo ports.StaffingRepository,
	caller staffing.Caller,
	o *order.Order,
	item *order.OrderItem,
) error {
	if caller.Role() == staffing.RoleAdmin {
		return nil
	}

	station, err := caller.Role().StationType()
	if err != nil {
		return err
	}
	if station != item.StationType() {
		return errs.NewScopeErrorWithCause("stationType",
			fmt.Errorf("role %s serves %s items, not %s",
				caller.Role(), station, item.StationType()))
	}

	if o.TableID() == nil {
		return errs.NewScopeErrorWithCause("zone",
			fmt.Errorf("order %s has no table and no zone scope", o.ID()))
	}

	table, err := staffingRepo.GetTable(ctx, caller.TenantID(), *o.TableID())
	if err != nil {
		return err
	}

	return caller.RequireZone(table.ZoneID())
}
