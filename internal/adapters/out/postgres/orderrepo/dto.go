// Package orderrepo maps order aggregates to their relational form. An
// order row owns its item rows; both are always written through the same
// transaction.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is the database row of an order aggregate.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	EventID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	WaiterID     uuid.UUID       `gorm:"type:uuid;not null"`
	TableID      *uuid.UUID      `gorm:"type:uuid;index"`
	GuestName    string          `gorm:"type:varchar(255)"`
	Status       int             `gorm:"type:int;not null;index"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DispatchedAt *time.Time
	ReadyAt      *time.Time
	ServedAt     *time.Time
	PaidAt       *time.Time
	Items        []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is the database row of one order item.
type OrderItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	MenuItemID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	StationType  string          `gorm:"type:varchar(32);not null;index"`
	Quantity     int             `gorm:"type:int;not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status       int             `gorm:"type:int;not null;index"`
	DispatchedAt *time.Time
	ReadyAt      *time.Time
	AssignedTo   *uuid.UUID `gorm:"type:uuid"`
	Notes        string     `gorm:"type:varchar(512)"`
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var tableID *uuid.UUID
	if id := aggregate.TableID(); id != nil {
		raw := id.Bytes()
		tableID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemFromDomain(orderID, item))
	}

	return OrderDTO{
		ID:           orderID,
		TenantID:     aggregate.TenantID().Bytes(),
		EventID:      aggregate.EventID().Bytes(),
		WaiterID:     aggregate.WaiterID().Bytes(),
		TableID:      tableID,
		GuestName:    aggregate.GuestName(),
		Status:       int(aggregate.Status()),
		TotalAmount:  aggregate.Total().Decimal(),
		DispatchedAt: aggregate.DispatchedAt(),
		ReadyAt:      aggregate.ReadyAt(),
		ServedAt:     aggregate.ServedAt(),
		PaidAt:       aggregate.PaidAt(),
		Items:        items,
	}
}

func itemFromDomain(orderID uuid.UUID, item *order.OrderItem) OrderItemDTO {
	var assignedTo *uuid.UUID
	if id := item.AssignedTo(); id != nil {
		raw := id.Bytes()
		assignedTo = &raw
	}

	return OrderItemDTO{
		ID:           item.ID().Bytes(),
		OrderID:      orderID,
		MenuItemID:   item.MenuItemID().Bytes(),
		StationType:  string(item.StationType()),
		Quantity:     item.Quantity(),
		Price:        item.Price().Decimal(),
		Status:       int(item.Status()),
		DispatchedAt: item.DispatchedAt(),
		ReadyAt:      item.ReadyAt(),
		AssignedTo:   assignedTo,
		Notes:        item.Notes(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	eventID, err := kernel.UUIDFromBytes(dto.EventID[:])
	if err != nil {
		return nil, err
	}
	waiterID, err := kernel.UUIDFromBytes(dto.WaiterID[:])
	if err != nil {
		return nil, err
	}

	var tableID *kernel.UUID
	if dto.TableID != nil {
		tID, tableErr := kernel.UUIDFromBytes((*dto.TableID)[:])
		if tableErr != nil {
			return nil, tableErr
		}
		tableID = &tID
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	items := make([]*order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, tenantID, eventID, waiterID, tableID, dto.GuestName,
		order.Status(dto.Status), total,
		dto.DispatchedAt, dto.ReadyAt, dto.ServedAt, dto.PaidAt, items)
}

func itemToDomain(dto OrderItemDTO) (*order.OrderItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	var assignedTo *kernel.UUID
	if dto.AssignedTo != nil {
		aID, assignErr := kernel.UUIDFromBytes((*dto.AssignedTo)[:])
		if assignErr != nil {
			return nil, assignErr
		}
		assignedTo = &aID
	}

	return order.RestoreOrderItem(
		id, menuItemID, order.StationType(dto.StationType),
		dto.Quantity, price, order.ItemStatus(dto.Status),
		dto.DispatchedAt, dto.ReadyAt, assignedTo, dto.Notes)
}
