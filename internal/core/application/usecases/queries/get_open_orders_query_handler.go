package queries

import (
	"context"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler lists the orders of an event that are neither
// paid nor cancelled. Walk-up orders carry no table number.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open order queries.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle returns the event's open orders sorted by order ID.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			t.number,
			o.guest_name,
			o.status,
			o.total_amount,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id),
			o.served_at
		FROM orders o
		LEFT JOIN tables t ON t.id = o.table_id
		WHERE o.tenant_id = ?
		  AND o.event_id = ?
		  AND o.status NOT IN ?
		ORDER BY o.id
	`, query.Caller().TenantID().Bytes(), query.EventID().Bytes(),
		[]int{int(order.Paid), int(order.Cancelled)}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var tableNumber *int
		var guestName string
		var status, itemCount int
		var totalAmount decimal.Decimal
		var servedAt *time.Time

		err = rows.Scan(
			&id,
			&tableNumber,
			&guestName,
			&status,
			&totalAmount,
			&itemCount,
			&servedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		total, moneyErr := kernel.NewMoney(totalAmount)
		if moneyErr != nil {
			return nil, moneyErr
		}

		orders = append(orders, GetOpenOrdersQueryResponse{
			OrderID:     orderID,
			TableNumber: tableNumber,
			GuestName:   guestName,
			Status:      order.Status(status).String(),
			Total:       total,
			ItemCount:   itemCount,
			ServedAt:    servedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
