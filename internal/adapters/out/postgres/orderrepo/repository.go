package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"

	"github.com/google/uuid"
)

// statusJournal remembers the item statuses a transaction loaded, so
// writes can be made conditional on them.
type statusJournal interface {
	RecordItemStatus(itemID uuid.UUID, status int)
	LoadedItemStatus(itemID uuid.UUID) (int, bool)
}

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	journal statusJournal
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, journal statusJournal) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		journal: journal,
	}
}

// Add saves a new order with all its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.journalItems(dto)
	return nil
}

// Update writes back an order and its items. Each item status write is
// compare-and-swap on the status this transaction loaded; a row another
// actor moved in the meantime comes back as a state conflict.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("Status", "TotalAmount", "DispatchedAt", "ReadyAt", "ServedAt", "PaidAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID.String())
	}

	for _, item := range dto.Items {
		if err := r.updateItem(ctx, item); err != nil {
			return err
		}
	}

	return nil
}

func (r *GormOrderRepository) updateItem(ctx context.Context, item OrderItemDTO) error {
	loaded, known := r.journal.LoadedItemStatus(item.ID)
	if known && loaded == item.Status {
		return nil
	}

	query := r.db.WithContext(ctx).Model(&OrderItemDTO{})
	if known {
		query = query.Where("id = ? AND status = ?", item.ID, loaded)
	} else {
		query = query.Where("id = ?", item.ID)
	}

	result := query.
		Select("Status", "DispatchedAt", "ReadyAt", "AssignedTo").
		Updates(&item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewStateConflictErrorWithCause("orderItem",
			fmt.Errorf("item %s moved from status %d under this transaction", item.ID, loaded))
	}

	r.journal.RecordItemStatus(item.ID, item.Status)
	return nil
}

// Get retrieves an order with its items, scoped to the tenant. A foreign
// tenant's order is reported as not found.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	r.journalItems(dto)
	return toDomain(dto)
}

// GetOpenByEvent retrieves the event's orders that are neither paid nor
// cancelled, oldest first.
func (r *GormOrderRepository) GetOpenByEvent(ctx context.Context, tenantID, eventID kernel.UUID) ([]*order.Order, error) {
	if err := errors.Join(tenantID.Validate(), eventID.Validate()); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND event_id = ? AND status NOT IN ?",
			tenantID.Bytes(), eventID.Bytes(), []int{int(order.Paid), int(order.Cancelled)}).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetWithRoutableItemsForMenuItem retrieves every order of the tenant
// holding at least one pending or dispatched item of the menu item.
func (r *GormOrderRepository) GetWithRoutableItemsForMenuItem(ctx context.Context, tenantID, menuItemID kernel.UUID) ([]*order.Order, error) {
	if err := errors.Join(tenantID.Validate(), menuItemID.Validate()); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where(`tenant_id = ? AND id IN (
			SELECT order_id FROM order_items
			WHERE menu_item_id = ? AND status IN ?
		)`, tenantID.Bytes(), menuItemID.Bytes(),
			[]int{int(order.ItemPending), int(order.ItemDispatched)}).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

func (r *GormOrderRepository) toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		r.journalItems(dto)
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

func (r *GormOrderRepository) journalItems(dto OrderDTO) {
	for _, item := range dto.Items {
		r.journal.RecordItemStatus(item.ID, item.Status)
	}
}
