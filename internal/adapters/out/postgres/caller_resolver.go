package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/staffingrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
)

// GormCallerResolver implements ports.CallerResolver. Station roles get
// their zone bindings loaded for the event; other roles carry no zones.
// A station user with no bindings resolves to a caller scoped to nothing.
type GormCallerResolver struct {
	staffing *staffingrepo.GormStaffingRepository
}

// NewGormCallerResolver creates a resolver reading bindings from the
// assignments table.
func NewGormCallerResolver(db *gorm.DB) *GormCallerResolver {
	return &GormCallerResolver{staffing: staffingrepo.NewGormStaffingRepository(db)}
}

// Resolve builds the scoped caller for one authenticated request.
func (r *GormCallerResolver) Resolve(
	ctx context.Context,
	userID, tenantID, eventID kernel.UUID,
	role staffing.Role,
) (staffing.Caller, error) {
	var zoneIDs []kernel.UUID
	if role.IsStationRole() {
		ids, err := r.staffing.GetZoneIDsForUser(ctx, tenantID, eventID, userID, role)
		if err != nil {
			return staffing.Caller{}, err
		}
		zoneIDs = ids
	}

	return staffing.NewCaller(userID, tenantID, role, zoneIDs)
}
