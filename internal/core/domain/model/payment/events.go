package payment

import (
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
)

// RecordedEvent is raised for every plain (single-method) ledger row.
type RecordedEvent struct {
	tenantID   kernel.UUID
	occurredAt time.Time
	PaymentID  kernel.UUID
	OrderID    kernel.UUID
	Amount     kernel.Money
	Method     Method
}

// EventName implements kernel.DomainEvent.
func (RecordedEvent) EventName() string { return "payment.recorded" }

// TenantID returns the tenant the event belongs to.
func (e RecordedEvent) TenantID() kernel.UUID { return e.tenantID }

// OccurredAt returns when the row was written.
func (e RecordedEvent) OccurredAt() time.Time { return e.occurredAt }

// SplitRecordedEvent is raised once per split session, carried by the first
// row of the split.
type SplitRecordedEvent struct {
	tenantID       kernel.UUID
	occurredAt     time.Time
	SplitSessionID kernel.UUID
	OrderID        kernel.UUID
	Total          kernel.Money
	Rows           int
}

// EventName implements kernel.DomainEvent.
func (SplitRecordedEvent) EventName() string { return "payment.split_recorded" }

// TenantID returns the tenant the event belongs to.
func (e SplitRecordedEvent) TenantID() kernel.UUID { return e.tenantID }

// OccurredAt returns when the split was written.
func (e SplitRecordedEvent) OccurredAt() time.Time { return e.occurredAt }
