package staffingrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"

	"github.com/google/uuid"
)

// GormStaffingRepository implements ports.StaffingRepository using GORM.
// Requires a connection opened with TranslateError so unique violations
// surface as gorm.ErrDuplicatedKey.
type GormStaffingRepository struct {
	db *gorm.DB
}

// NewGormStaffingRepository creates a new GORM staffing repository.
func NewGormStaffingRepository(db *gorm.DB) *GormStaffingRepository {
	return &GormStaffingRepository{db: db}
}

// AddAssignment binds a user to a zone for a station role, replacing a
// previous holder of the same (zone, role) in the caller's transaction.
// A racing insert hits the unique index and comes back as a state
// conflict, so two actors are never bound at once.
func (r *GormStaffingRepository) AddAssignment(ctx context.Context, a *staffing.ZoneRoleAssignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := assignmentFromDomain(a)
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND event_id = ? AND zone_id = ? AND role = ?",
			dto.TenantID, dto.EventID, dto.ZoneID, dto.Role).
		Delete(&AssignmentDTO{}).Error
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewStateConflictErrorWithCause("assignment",
				fmt.Errorf("zone %s already has an actor bound as %s", a.ZoneID(), a.Role()))
		}
		return err
	}

	return nil
}

// GetZoneIDsForUser retrieves the zones a user's role is bound to within
// an event.
func (r *GormStaffingRepository) GetZoneIDsForUser(ctx context.Context, tenantID, eventID, userID kernel.UUID, role staffing.Role) ([]kernel.UUID, error) {
	if err := errors.Join(tenantID.Validate(), eventID.Validate(), userID.Validate(), role.Validate()); err != nil {
		return nil, err
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("tenant_id = ? AND event_id = ? AND user_id = ? AND role = ?",
			tenantID.Bytes(), eventID.Bytes(), userID.Bytes(), string(role)).
		Order("zone_id").
		Pluck("zone_id", &raw).Error
	if err != nil {
		return nil, err
	}

	return toKernelUUIDs(raw)
}

// GetTable retrieves a table by ID, scoped to the tenant.
func (r *GormStaffingRepository) GetTable(ctx context.Context, tenantID, id kernel.UUID) (*staffing.Table, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto TableDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("table", id.String())
		}
		return nil, err
	}

	return tableToDomain(dto)
}

// GetTableIDsInZones retrieves the IDs of every table standing in one of
// the given zones. An empty zone list yields an empty result.
func (r *GormStaffingRepository) GetTableIDsInZones(ctx context.Context, tenantID kernel.UUID, zoneIDs []kernel.UUID) ([]kernel.UUID, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if len(zoneIDs) == 0 {
		return nil, nil
	}

	zones := make([]uuid.UUID, 0, len(zoneIDs))
	for _, id := range zoneIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		zones = append(zones, id.Bytes())
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&TableDTO{}).
		Where("tenant_id = ? AND zone_id IN ?", tenantID.Bytes(), zones).
		Order("id").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, err
	}

	return toKernelUUIDs(raw)
}

// GetZone retrieves a zone by ID, scoped to the tenant.
func (r *GormStaffingRepository) GetZone(ctx context.Context, tenantID, id kernel.UUID) (*staffing.Zone, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto ZoneDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("zone", id.String())
		}
		return nil, err
	}

	return zoneToDomain(dto)
}

func toKernelUUIDs(raw []uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, err := kernel.UUIDFromBytes(b[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
