package ports

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
)

// StaffingRepository defines the persistence contract for zones, tables,
// and zone-role assignments. The storage layer carries a unique index on
// (tenant, event, zone, role); at most one actor of a station role is
// bound to a zone at a time.
type StaffingRepository interface {
	// AddAssignment persists a zone-role binding, atomically replacing a
	// previous holder of the same zone and role. A racing duplicate
	// surfaces as a state conflict.
	AddAssignment(ctx context.Context, a *staffing.ZoneRoleAssignment) error

	// GetZoneIDsForUser retrieves the zones a user's role is bound to
	// within an event. Empty result means the caller is scoped to nothing.
	GetZoneIDsForUser(ctx context.Context, tenantID, eventID, userID kernel.UUID, role staffing.Role) ([]kernel.UUID, error)

	// GetTable retrieves a table by ID, scoped to tenantID.
	GetTable(ctx context.Context, tenantID, id kernel.UUID) (*staffing.Table, error)

	// GetTableIDsInZones retrieves the IDs of every table standing in one
	// of the given zones. Station queue resolution calls this first and
	// short-circuits on an empty result.
	GetTableIDsInZones(ctx context.Context, tenantID kernel.UUID, zoneIDs []kernel.UUID) ([]kernel.UUID, error)

	// GetZone retrieves a zone by ID, scoped to tenantID.
	GetZone(ctx context.Context, tenantID, id kernel.UUID) (*staffing.Zone, error)
}
