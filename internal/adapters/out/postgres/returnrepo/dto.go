// Package returnrepo maps the return/refund sub-ledger to its relational
// form.
package returnrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/orderreturn"

	"github.com/shopspring/decimal"
)

// ReturnDTO is the database row of one return record.
type ReturnDTO struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	OrderID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	OrderItemID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	ReportedBy   uuid.UUID        `gorm:"type:uuid;not null"`
	Reason       string           `gorm:"type:varchar(512);not null"`
	LineTotal    decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	RefundAmount *decimal.Decimal `gorm:"type:numeric(12,2)"`
	ApprovedBy   *uuid.UUID       `gorm:"type:uuid"`
	ConfirmedAt  *time.Time
	ConfirmedBy  *uuid.UUID `gorm:"type:uuid"`
	ReportedAt   time.Time  `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "order_returns".
func (ReturnDTO) TableName() string {
	return "order_returns"
}

func fromDomain(record *orderreturn.OrderReturn) ReturnDTO {
	var refundAmount *decimal.Decimal
	if amount := record.RefundAmount(); amount != nil {
		raw := amount.Decimal()
		refundAmount = &raw
	}

	var approvedBy *uuid.UUID
	if id := record.ApprovedBy(); id != nil {
		raw := id.Bytes()
		approvedBy = &raw
	}

	var confirmedBy *uuid.UUID
	if id := record.ConfirmedBy(); id != nil {
		raw := id.Bytes()
		confirmedBy = &raw
	}

	return ReturnDTO{
		ID:           record.ID().Bytes(),
		TenantID:     record.TenantID().Bytes(),
		OrderID:      record.OrderID().Bytes(),
		OrderItemID:  record.OrderItemID().Bytes(),
		ReportedBy:   record.ReportedBy().Bytes(),
		Reason:       record.Reason(),
		LineTotal:    record.LineTotal().Decimal(),
		RefundAmount: refundAmount,
		ApprovedBy:   approvedBy,
		ConfirmedAt:  record.ConfirmedAt(),
		ConfirmedBy:  confirmedBy,
		ReportedAt:   record.ReportedAt(),
	}
}

func toDomain(dto ReturnDTO) (*orderreturn.OrderReturn, error) {
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
	orderItemID, err := kernel.UUIDFromBytes(dto.OrderItemID[:])
	if err != nil {
		return nil, err
	}
	reportedBy, err := kernel.UUIDFromBytes(dto.ReportedBy[:])
	if err != nil {
		return nil, err
	}

	lineTotal, err := kernel.NewMoney(dto.LineTotal)
	if err != nil {
		return nil, err
	}

	var refundAmount *kernel.Money
	if dto.RefundAmount != nil {
		amount, amountErr := kernel.NewMoney(*dto.RefundAmount)
		if amountErr != nil {
			return nil, amountErr
		}
		refundAmount = &amount
	}

	approvedBy, err := optionalUUID(dto.ApprovedBy)
	if err != nil {
		return nil, err
	}
	confirmedBy, err := optionalUUID(dto.ConfirmedBy)
	if err != nil {
		return nil, err
	}

	return orderreturn.RestoreOrderReturn(
		id, tenantID, orderID, orderItemID, reportedBy,
		dto.Reason, lineTotal, refundAmount, approvedBy,
		dto.ConfirmedAt, confirmedBy, dto.ReportedAt)
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
