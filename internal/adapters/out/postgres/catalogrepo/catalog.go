// Package catalogrepo backs the catalog port with the menu_items table.
// The core reads reference data from it and flips availability; prices
// and names are maintained by the back office outside this service.
package catalogrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItemDTO is the database row of one sellable item.
type MenuItemDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name             string          `gorm:"type:varchar(255);not null"`
	Price            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	StationType      string          `gorm:"type:varchar(32);not null"`
	CurrentInventory int             `gorm:"type:int;not null"`
	IsAvailable      bool            `gorm:"not null;default:true"`
}

// TableName overrides GORM's default naming to use "menu_items".
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// GormCatalogService implements ports.CatalogService.
type GormCatalogService struct {
	db *gorm.DB
}

// NewGormCatalogService creates a catalog backed by the menu_items table.
func NewGormCatalogService(db *gorm.DB) *GormCatalogService {
	return &GormCatalogService{db: db}
}

// GetMenuItem retrieves one menu item, scoped to tenantID.
func (s *GormCatalogService) GetMenuItem(ctx context.Context, tenantID, id kernel.UUID) (ports.MenuItem, error) {
	var dto MenuItemDTO
	err := s.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MenuItem{}, errs.NewObjectNotFoundError("menuItem", id.String())
		}
		return ports.MenuItem{}, err
	}

	itemID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.MenuItem{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return ports.MenuItem{}, err
	}

	return ports.MenuItem{
		ID:               itemID,
		Name:             dto.Name,
		Price:            price,
		StationType:      order.StationType(dto.StationType),
		CurrentInventory: dto.CurrentInventory,
		IsAvailable:      dto.IsAvailable,
	}, nil
}

// SetUnavailable flips is_available off. Idempotent: flipping an already
// unavailable item changes nothing.
func (s *GormCatalogService) SetUnavailable(ctx context.Context, tenantID, id kernel.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&MenuItemDTO{}).
		Where("id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).
		Update("is_available", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("menuItem", id.String())
	}
	return nil
}
