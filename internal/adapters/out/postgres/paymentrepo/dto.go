// Package paymentrepo maps the append-only payment ledger to its
// relational form. Rows are inserted and read, never updated.
package paymentrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"

	"github.com/shopspring/decimal"
)

// PaymentDTO is the database row of one ledger entry.
type PaymentDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Method         string          `gorm:"type:varchar(32);not null"`
	ConfirmedBy    uuid.UUID       `gorm:"type:uuid;not null"`
	SplitSessionID *uuid.UUID      `gorm:"type:uuid;index"`
	Notes          string          `gorm:"type:varchar(255)"`
	RecordedAt     time.Time       `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "payments".
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	var sessionID *uuid.UUID
	if id := p.SplitSessionID(); id != nil {
		raw := id.Bytes()
		sessionID = &raw
	}

	return PaymentDTO{
		ID:             p.ID().Bytes(),
		TenantID:       p.TenantID().Bytes(),
		OrderID:        p.OrderID().Bytes(),
		Amount:         p.Amount().Decimal(),
		Method:         string(p.Method()),
		ConfirmedBy:    p.ConfirmedBy().Bytes(),
		SplitSessionID: sessionID,
		Notes:          p.Notes(),
		RecordedAt:     p.RecordedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	confirmedBy, err := kernel.UUIDFromBytes(dto.ConfirmedBy[:])
	if err != nil {
		return nil, err
	}

	var sessionID *kernel.UUID
	if dto.SplitSessionID != nil {
		sID, sessionErr := kernel.UUIDFromBytes((*dto.SplitSessionID)[:])
		if sessionErr != nil {
			return nil, sessionErr
		}
		sessionID = &sID
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id, tenantID, orderID, amount, payment.Method(dto.Method),
		confirmedBy, sessionID, dto.Notes, dto.RecordedAt)
}
