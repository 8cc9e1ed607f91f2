package ports

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for the append-only
// payment ledger. Rows are never updated or deleted.
type PaymentRepository interface {
	// Add persists one ledger row.
	Add(ctx context.Context, p *payment.Payment) error

	// AddAll persists every row of one split session. The rows share the
	// caller's transaction: either all of them commit or none do.
	AddAll(ctx context.Context, rows []*payment.Payment) error

	// GetByOrder retrieves all ledger rows of an order, oldest first.
	GetByOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*payment.Payment, error)

	// GetBySplitSession retrieves the rows of one split session.
	GetBySplitSession(ctx context.Context, tenantID, sessionID kernel.UUID) ([]*payment.Payment, error)
}
