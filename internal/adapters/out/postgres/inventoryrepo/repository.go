package inventoryrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/inventory"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"

	"github.com/google/uuid"
)

// GormInventoryRepository implements ports.InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// UpsertAllocations writes one row per (menu item, zone) pair, replacing
// the quantity of an existing row.
func (r *GormInventoryRepository) UpsertAllocations(ctx context.Context, allocations []*inventory.ZoneAllocation) error {
	dtos := make([]AllocationDTO, 0, len(allocations))
	for _, a := range allocations {
		if err := a.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, allocationFromDomain(a))
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "menu_item_id"}, {Name: "zone_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).
		Create(&dtos).Error
}

// GetAllocation retrieves the allocation of a menu item in one zone.
func (r *GormInventoryRepository) GetAllocation(ctx context.Context, tenantID, menuItemID, zoneID kernel.UUID) (*inventory.ZoneAllocation, error) {
	if err := errors.Join(tenantID.Validate(), menuItemID.Validate(), zoneID.Validate()); err != nil {
		return nil, err
	}

	var dto AllocationDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND menu_item_id = ? AND zone_id = ?",
			tenantID.Bytes(), menuItemID.Bytes(), zoneID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("allocation",
				fmt.Sprintf("%s in zone %s", menuItemID, zoneID))
		}
		return nil, err
	}

	return allocationToDomain(dto)
}

// GetAllocationsByMenuItem retrieves every zone allocation of a menu item.
func (r *GormInventoryRepository) GetAllocationsByMenuItem(ctx context.Context, tenantID, menuItemID kernel.UUID) ([]*inventory.ZoneAllocation, error) {
	if err := errors.Join(tenantID.Validate(), menuItemID.Validate()); err != nil {
		return nil, err
	}

	var dtos []AllocationDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND menu_item_id = ?", tenantID.Bytes(), menuItemID.Bytes()).
		Order("zone_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	allocations := make([]*inventory.ZoneAllocation, 0, len(dtos))
	for _, dto := range dtos {
		a, allocErr := allocationToDomain(dto)
		if allocErr != nil {
			return nil, allocErr
		}
		allocations = append(allocations, a)
	}

	return allocations, nil
}

// UpdateAllocations writes back the quantities of the given rows.
func (r *GormInventoryRepository) UpdateAllocations(ctx context.Context, allocations ...*inventory.ZoneAllocation) error {
	for _, a := range allocations {
		if err := a.Validate(); err != nil {
			return err
		}

		dto := allocationFromDomain(a)
		result := r.db.WithContext(ctx).
			Model(&AllocationDTO{}).
			Where("id = ?", dto.ID).
			Update("quantity", dto.Quantity)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("allocation", dto.ID.String())
		}
	}

	return nil
}

// AddTransfer appends a transfer-log entry.
func (r *GormInventoryRepository) AddTransfer(ctx context.Context, record *inventory.TransferRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := transferFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllocatedMenuItemIDs lists every menu item holding at least one
// allocation row for the tenant.
func (r *GormInventoryRepository) GetAllocatedMenuItemIDs(ctx context.Context, tenantID kernel.UUID) ([]kernel.UUID, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&AllocationDTO{}).
		Where("tenant_id = ?", tenantID.Bytes()).
		Distinct("menu_item_id").
		Order("menu_item_id").
		Pluck("menu_item_id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, idErr := kernel.UUIDFromBytes(b[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}
