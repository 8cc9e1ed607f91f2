package returnrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/orderreturn"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// GormReturnRepository implements ports.ReturnRepository using GORM.
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GORM return repository.
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// Add persists a newly reported return.
func (r *GormReturnRepository) Add(ctx context.Context, record *orderreturn.OrderReturn) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes back refund approval and confirmation fields.
func (r *GormReturnRepository) Update(ctx context.Context, record *orderreturn.OrderReturn) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&ReturnDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("RefundAmount", "ApprovedBy", "ConfirmedAt", "ConfirmedBy").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("return", dto.ID.String())
	}

	return nil
}

// Get retrieves a return by ID, scoped to the tenant.
func (r *GormReturnRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*orderreturn.OrderReturn, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto ReturnDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves all returns of an order, oldest first.
func (r *GormReturnRepository) GetByOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*orderreturn.OrderReturn, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	var dtos []ReturnDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID.Bytes(), orderID.Bytes()).
		Order("reported_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*orderreturn.OrderReturn, 0, len(dtos))
	for _, dto := range dtos {
		record, recordErr := toDomain(dto)
		if recordErr != nil {
			return nil, recordErr
		}
		records = append(records, record)
	}

	return records, nil
}

// SumApprovedRefundsByOrder sums the approved refund amounts of an order.
// Returns with no approved amount contribute nothing.
func (r *GormReturnRepository) SumApprovedRefundsByOrder(ctx context.Context, tenantID, orderID kernel.UUID) (kernel.Money, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return kernel.Money{}, err
	}

	var sum decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&ReturnDTO{}).
		Where("tenant_id = ? AND order_id = ? AND refund_amount IS NOT NULL",
			tenantID.Bytes(), orderID.Bytes()).
		Select("COALESCE(SUM(refund_amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return kernel.Money{}, err
	}

	return kernel.NewMoney(sum)
}
