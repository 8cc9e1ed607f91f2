package paymentrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"
)

// GormPaymentRepository implements ports.PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Add appends one ledger row.
func (r *GormPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddAll appends every row of one split session in a single insert.
func (r *GormPaymentRepository) AddAll(ctx context.Context, rows []*payment.Payment) error {
	dtos := make([]PaymentDTO, 0, len(rows))
	for _, p := range rows {
		if err := p.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(p))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetByOrder retrieves the order's ledger rows, oldest first.
func (r *GormPaymentRepository) GetByOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*payment.Payment, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	var dtos []PaymentDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID.Bytes(), orderID.Bytes()).
		Order("recorded_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetBySplitSession retrieves the rows of one split session.
func (r *GormPaymentRepository) GetBySplitSession(ctx context.Context, tenantID, sessionID kernel.UUID) ([]*payment.Payment, error) {
	if err := errors.Join(tenantID.Validate(), sessionID.Validate()); err != nil {
		return nil, err
	}

	var dtos []PaymentDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND split_session_id = ?", tenantID.Bytes(), sessionID.Bytes()).
		Order("recorded_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []PaymentDTO) ([]*payment.Payment, error) {
	rows := make([]*payment.Payment, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rows = append(rows, p)
	}
	return rows, nil
}
