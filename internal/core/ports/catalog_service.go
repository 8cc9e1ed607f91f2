package ports

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
)

// MenuItem is the read-mostly reference data the catalog supplies for one
// sellable item. Price is captured by value at order-item creation; the
// rest gates routing and out-of-stock decisions.
type MenuItem struct {
	ID               kernel.UUID
	Name             string
	Price            kernel.Money
	StationType      order.StationType
	CurrentInventory int
	IsAvailable      bool
}

// CatalogService supplies menu reference data. The core never writes
// through this port except to flip availability, which triggers the
// out-of-stock sweep.
type CatalogService interface {
	// GetMenuItem retrieves one menu item, scoped to tenantID.
	GetMenuItem(ctx context.Context, tenantID, id kernel.UUID) (MenuItem, error)

	// SetUnavailable flips is_available off. Idempotent at the catalog
	// level; the caller owns the rejection sweep.
	SetUnavailable(ctx context.Context, tenantID, id kernel.UUID) error
}
