package orderreturn

import (
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
)

// ReportedEvent is raised when a served item is reported returned.
type ReportedEvent struct {
	tenantID    kernel.UUID
	occurredAt  time.Time
	ReturnID    kernel.UUID
	OrderID     kernel.UUID
	OrderItemID kernel.UUID
	Reason      string
}

// EventName implements kernel.DomainEvent.
func (ReportedEvent) EventName() string { return "return.reported" }

// TenantID returns the tenant the event belongs to.
func (e ReportedEvent) TenantID() kernel.UUID { return e.tenantID }

// OccurredAt returns when the return was reported.
func (e ReportedEvent) OccurredAt() time.Time { return e.occurredAt }

// RefundApprovedEvent is raised when a cashier sets the refund amount.
type RefundApprovedEvent struct {
	tenantID   kernel.UUID
	occurredAt time.Time
	ReturnID   kernel.UUID
	OrderID    kernel.UUID
	Amount     kernel.Money
}

// EventName implements kernel.DomainEvent.
func (RefundApprovedEvent) EventName() string { return "return.refund_approved" }

// TenantID returns the tenant the event belongs to.
func (e RefundApprovedEvent) TenantID() kernel.UUID { return e.tenantID }

// OccurredAt returns when the refund was approved.
func (e RefundApprovedEvent) OccurredAt() time.Time { return e.occurredAt }

// ConfirmedEvent is raised when the station acknowledges the physical
// return.
type ConfirmedEvent struct {
	tenantID   kernel.UUID
	occurredAt time.Time
	ReturnID   kernel.UUID
	OrderID    kernel.UUID
}

// EventName implements kernel.DomainEvent.
func (ConfirmedEvent) EventName() string { return "return.confirmed" }

// TenantID returns the tenant the event belongs to.
func (e ConfirmedEvent) TenantID() kernel.UUID { return e.tenantID }

// OccurredAt returns when the return was confirmed.
func (e ConfirmedEvent) OccurredAt() time.Time { return e.occurredAt }
