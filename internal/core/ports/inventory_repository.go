package ports

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/inventory"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for zone allocations
// and the immutable transfer log.
type InventoryRepository interface {
	// UpsertAllocations writes one row per (menu item, zone) pair. The
	// caller validates the full plan first; the rows share the caller's
	// transaction so a failed write leaves no partial distribution.
	UpsertAllocations(ctx context.Context, allocations []*inventory.ZoneAllocation) error

	// GetAllocation retrieves the allocation of a menu item in one zone.
	GetAllocation(ctx context.Context, tenantID, menuItemID, zoneID kernel.UUID) (*inventory.ZoneAllocation, error)

	// GetAllocationsByMenuItem retrieves every zone allocation of a menu
	// item. The reconciliation job sums these against the catalog.
	GetAllocationsByMenuItem(ctx context.Context, tenantID, menuItemID kernel.UUID) ([]*inventory.ZoneAllocation, error)

	// UpdateAllocations writes back both sides of a transfer in the
	// caller's transaction.
	UpdateAllocations(ctx context.Context, allocations ...*inventory.ZoneAllocation) error

	// AddTransfer appends a transfer-log entry.
	AddTransfer(ctx context.Context, record *inventory.TransferRecord) error

	// GetAllocatedMenuItemIDs lists every menu item holding at least one
	// allocation row for the tenant.
	GetAllocatedMenuItemIDs(ctx context.Context, tenantID kernel.UUID) ([]kernel.UUID, error)
}
