package queries

import (
	"context"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStationQueueQueryHandler builds a station's work queue straight from
// the database: routable items of the caller's station type joined to the
// tables sitting in the caller's zones. A caller bound to no zone gets an
// empty queue rather than the whole floor.
type GetStationQueueQueryHandler struct {
	db *gorm.DB
}

// NewGetStationQueueQueryHandler creates a handler for station queue queries.
func NewGetStationQueueQueryHandler(db *gorm.DB) GetStationQueueQueryHandler {
	return GetStationQueueQueryHandler{db: db}
}

// Handle returns the pending and dispatched items the caller's station should
// see, oldest dispatch first.
func (h GetStationQueueQueryHandler) Handle(
	ctx context.Context,
	query GetStationQueueQuery,
) ([]GetStationQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	caller := query.Caller()

	stationType, err := caller.Role().StationType()
	if err != nil {
		return nil, err
	}

	queue := make([]GetStationQueueQueryResponse, 0)

	if !caller.SeesAllZones() && len(caller.ZoneIDs()) == 0 {
		return queue, nil
	}

	sql := `
		SELECT
			i.id,
			i.order_id,
			i.menu_item_id,
			i.quantity,
			i.notes,
			i.status,
			i.dispatched_at,
			t.number,
			o.guest_name
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		JOIN tables t ON t.id = o.table_id
		WHERE o.tenant_id = ?
		  AND o.event_id = ?
		  AND i.station_type = ?
		  AND i.status IN ?`
	args := []any{
		caller.TenantID().Bytes(),
		query.EventID().Bytes(),
		stationType.String(),
		[]int{int(order.ItemPending), int(order.ItemDispatched)},
	}

	if !caller.SeesAllZones() {
		sql += `
		  AND t.zone_id IN ?`
		args = append(args, zoneIDValues(caller.ZoneIDs()))
	}

	sql += `
		ORDER BY i.dispatched_at NULLS LAST, i.id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var itemID, orderID, menuItemID uuid.UUID
		var quantity, status, tableNumber int
		var notes, guestName string
		var dispatchedAt *time.Time

		err = rows.Scan(
			&itemID,
			&orderID,
			&menuItemID,
			&quantity,
			&notes,
			&status,
			&dispatchedAt,
			&tableNumber,
			&guestName,
		)
		if err != nil {
			return nil, err
		}

		row, rowErr := newStationQueueRow(
			itemID, orderID, menuItemID,
			quantity, notes, status, dispatchedAt, tableNumber, guestName)
		if rowErr != nil {
			return nil, rowErr
		}
		queue = append(queue, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return queue, nil
}

func newStationQueueRow(
	itemID, orderID, menuItemID uuid.UUID,
	quantity int,
	notes string,
	status int,
	dispatchedAt *time.Time,
	tableNumber int,
	guestName string,
) (GetStationQueueQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(itemID[:])
	if err != nil {
		return GetStationQueueQueryResponse{}, err
	}
	parentID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return GetStationQueueQueryResponse{}, err
	}
	itemRef, err := kernel.UUIDFromBytes(menuItemID[:])
	if err != nil {
		return GetStationQueueQueryResponse{}, err
	}

	return GetStationQueueQueryResponse{
		ItemID:       id,
		OrderID:      parentID,
		MenuItemID:   itemRef,
		Quantity:     quantity,
		Notes:        notes,
		Status:       order.ItemStatus(status).String(),
		DispatchedAt: dispatchedAt,
		TableNumber:  tableNumber,
		GuestName:    guestName,
	}, nil
}

func zoneIDValues(zoneIDs []kernel.UUID) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(zoneIDs))
	for _, zoneID := range zoneIDs {
		ids = append(ids, zoneID.Bytes())
	}
	return ids
}
