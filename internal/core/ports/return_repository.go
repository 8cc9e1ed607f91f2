package ports

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/orderreturn"
)

// ReturnRepository defines the persistence contract for the return/refund
// sub-ledger.
type ReturnRepository interface {
	// Add persists a newly reported return.
	Add(ctx context.Context, r *orderreturn.OrderReturn) error

	// Update persists refund approval and confirmation changes.
	Update(ctx context.Context, r *orderreturn.OrderReturn) error

	// Get retrieves a return by ID, scoped to tenantID.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*orderreturn.OrderReturn, error)

	// GetByOrder retrieves all returns of an order.
	GetByOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*orderreturn.OrderReturn, error)

	// SumApprovedRefundsByOrder returns the sum of approved refund amounts
	// for an order. Unapproved returns contribute nothing.
	SumApprovedRefundsByOrder(ctx context.Context, tenantID, orderID kernel.UUID) (kernel.Money, error)
}
