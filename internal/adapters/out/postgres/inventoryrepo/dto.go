// Package inventoryrepo maps zone allocations and the transfer log to
// their relational form. Allocation rows are unique per menu item and
// zone; transfer rows are append-only.
package inventoryrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/inventory"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
)

// AllocationDTO is the database row of one zone allocation.
type AllocationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_allocations_item_zone"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_allocations_item_zone"`
	ZoneID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_allocations_item_zone"`
	Quantity   int       `gorm:"type:int;not null"`
}

// TableName overrides GORM's default naming to use "zone_allocations".
func (AllocationDTO) TableName() string {
	return "zone_allocations"
}

// TransferDTO is the database row of one transfer-log entry.
type TransferDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	FromZoneID uuid.UUID `gorm:"type:uuid;not null"`
	ToZoneID   uuid.UUID `gorm:"type:uuid;not null"`
	Quantity   int       `gorm:"type:int;not null"`
	Reason     string    `gorm:"type:varchar(255)"`
	MovedBy    uuid.UUID `gorm:"type:uuid;not null"`
	MovedAt    time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "inventory_transfers".
func (TransferDTO) TableName() string {
	return "inventory_transfers"
}

func allocationFromDomain(a *inventory.ZoneAllocation) AllocationDTO {
	return AllocationDTO{
		ID:         a.ID().Bytes(),
		TenantID:   a.TenantID().Bytes(),
		MenuItemID: a.MenuItemID().Bytes(),
		ZoneID:     a.ZoneID().Bytes(),
		Quantity:   a.Quantity(),
	}
}

func allocationToDomain(dto AllocationDTO) (*inventory.ZoneAllocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return nil, err
	}
	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreZoneAllocation(id, tenantID, menuItemID, zoneID, dto.Quantity)
}

func transferFromDomain(record *inventory.TransferRecord) TransferDTO {
	return TransferDTO{
		ID:         record.ID().Bytes(),
		TenantID:   record.TenantID().Bytes(),
		MenuItemID: record.MenuItemID().Bytes(),
		FromZoneID: record.FromZoneID().Bytes(),
		ToZoneID:   record.ToZoneID().Bytes(),
		Quantity:   record.Quantity(),
		Reason:     record.Reason(),
		MovedBy:    record.MovedBy().Bytes(),
		MovedAt:    record.MovedAt(),
	}
}
