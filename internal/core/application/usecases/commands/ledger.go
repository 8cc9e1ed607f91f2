package commands

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"
)

// loadBalance reads the order, its ledger rows, and its approved refunds
// inside the caller's transaction and reconciles them. The order's own
// total already tracks active items while unpaid and the frozen snapshot
// once paid.
func loadBalance(
	ctx context.Context,
	uow LedgerUoW,
	tenantID, orderID kernel.UUID,
) (*order.Order, payment.Balance, error) {
	aggregate, err := uow.OrderRepository().Get(ctx, tenantID, orderID)
	if err != nil {
		return nil, payment.Balance{}, err
	}

	rows, err := uow.PaymentRepository().GetByOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, payment.Balance{}, err
	}

	refunded, err := uow.ReturnRepository().SumApprovedRefundsByOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, payment.Balance{}, err
	}

	return aggregate, payment.ComputeBalance(aggregate.Total(), rows, refunded), nil
}
