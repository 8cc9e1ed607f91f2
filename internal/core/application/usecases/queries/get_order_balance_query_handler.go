package queries

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderBalanceQueryHandler reconciles one order's money position from the
// database. While the order is open the total is recomputed from its active
// items; once paid the stored snapshot is authoritative. Approved refunds
// reduce what is owed in both cases.
type GetOrderBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderBalanceQueryHandler creates a handler for order balance queries.
func NewGetOrderBalanceQueryHandler(db *gorm.DB) GetOrderBalanceQueryHandler {
	return GetOrderBalanceQueryHandler{db: db}
}

// Handle computes the balance of the requested order.
func (h GetOrderBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetOrderBalanceQuery,
) (GetOrderBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderBalanceQueryResponse{}, err
	}

	tenantID := query.Caller().TenantID().Bytes()
	orderID := query.OrderID().Bytes()

	var head struct {
		Status      int
		TotalAmount decimal.Decimal
	}
	result := h.db.WithContext(ctx).Raw(`
		SELECT status, total_amount
		FROM orders
		WHERE id = ? AND tenant_id = ?
	`, orderID, tenantID).Scan(&head)
	if result.Error != nil {
		return GetOrderBalanceQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetOrderBalanceQueryResponse{},
			errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	total, err := h.orderTotal(ctx, orderID, head.Status, head.TotalAmount)
	if err != nil {
		return GetOrderBalanceQueryResponse{}, err
	}

	paid, err := h.sumMoney(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE order_id = ?
	`, orderID)
	if err != nil {
		return GetOrderBalanceQueryResponse{}, err
	}

	refunded, err := h.sumMoney(ctx, `
		SELECT COALESCE(SUM(refund_amount), 0)
		FROM order_returns
		WHERE order_id = ? AND refund_amount IS NOT NULL
	`, orderID)
	if err != nil {
		return GetOrderBalanceQueryResponse{}, err
	}

	balance := payment.ReconcileBalance(total, paid, refunded)

	return GetOrderBalanceQueryResponse{
		OrderID:   query.OrderID(),
		Status:    order.Status(head.Status).String(),
		Total:     balance.Total,
		Paid:      balance.Paid,
		Refunded:  balance.Refunded,
		Remaining: balance.Remaining,
		FullyPaid: balance.FullyPaid,
	}, nil
}

// orderTotal picks the authoritative total: the frozen snapshot for a paid
// order, the sum of active item lines otherwise.
func (h GetOrderBalanceQueryHandler) orderTotal(
	ctx context.Context,
	orderID any,
	status int,
	snapshot decimal.Decimal,
) (kernel.Money, error) {
	if status == int(order.Paid) {
		return kernel.NewMoney(snapshot)
	}

	return h.sumMoney(ctx, `
		SELECT COALESCE(SUM(price * quantity), 0)
		FROM order_items
		WHERE order_id = ? AND status NOT IN ?
	`, orderID, []int{int(order.ItemRejected), int(order.ItemReturned)})
}

func (h GetOrderBalanceQueryHandler) sumMoney(
	ctx context.Context, sql string, args ...any,
) (kernel.Money, error) {
	var sum decimal.Decimal
	err := h.db.WithContext(ctx).Raw(sql, args...).Scan(&sum).Error
	if err != nil {
		return kernel.Money{}, err
	}
	return kernel.NewMoney(sum)
}
