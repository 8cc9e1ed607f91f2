// Package orderreturn is the return/refund sub-ledger: one OrderReturn per
// returned item, with a refund approval step (cashier) and a physical
// confirmation step (station) that run independently of each other.
package orderreturn

import (
	"errors"
	"fmt"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrOrderReturnIsNotConstructed is returned when an OrderReturn bypassed
// its constructor.
var ErrOrderReturnIsNotConstructed = errors.New(
	"OrderReturn must be created via NewOrderReturn constructor")

// OrderReturn records that one served item came back. The parent item is
// moved to returned at report time; this record tracks the money side
// (refund approval) and the audit side (station confirming receipt).
type OrderReturn struct {
	id           kernel.UUID
	tenantID     kernel.UUID
	orderID      kernel.UUID
	orderItemID  kernel.UUID
	reportedBy   kernel.UUID
	reason       string
	lineTotal    kernel.Money
	refundAmount *kernel.Money
	approvedBy   *kernel.UUID
	confirmedAt  *time.Time
	confirmedBy  *kernel.UUID
	reportedAt   time.Time

	events []kernel.DomainEvent
	guard  guard.ConstructorGuard
}

// NewOrderReturn reports a return of one served item. lineTotal is the
// item's price times quantity, captured here as the refund ceiling.
func NewOrderReturn(
	id, tenantID, orderID, orderItemID, reportedBy kernel.UUID,
	reason string,
	lineTotal kernel.Money,
	reportedAt time.Time,
) (*OrderReturn, error) {
	r := &OrderReturn{
		reason:     reason,
		reportedAt: reportedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setTenantID(tenantID),
		r.setOrderID(orderID),
		r.setOrderItemID(orderItemID),
		r.setReportedBy(reportedBy),
		r.setLineTotal(lineTotal),
	); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, errs.NewValueIsRequiredError("reason")
	}

	r.events = append(r.events, ReportedEvent{
		tenantID:    tenantID,
		occurredAt:  reportedAt,
		ReturnID:    id,
		OrderID:     orderID,
		OrderItemID: orderItemID,
		Reason:      reason,
	})

	return r, nil
}

// RestoreOrderReturn rebuilds a return from storage.
func RestoreOrderReturn(
	id, tenantID, orderID, orderItemID, reportedBy kernel.UUID,
	reason string,
	lineTotal kernel.Money,
	refundAmount *kernel.Money,
	approvedBy *kernel.UUID,
	confirmedAt *time.Time,
	confirmedBy *kernel.UUID,
	reportedAt time.Time,
) (*OrderReturn, error) {
	r := &OrderReturn{
		reason:       reason,
		refundAmount: refundAmount,
		approvedBy:   approvedBy,
		confirmedAt:  confirmedAt,
		confirmedBy:  confirmedBy,
		reportedAt:   reportedAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setTenantID(tenantID),
		r.setOrderID(orderID),
		r.setOrderItemID(orderItemID),
		r.setReportedBy(reportedBy),
		r.setLineTotal(lineTotal),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the return was created through its constructor.
func (r *OrderReturn) Validate() error {
	if r == nil {
		return ErrOrderReturnIsNotConstructed
	}
	return r.guard.Validate(ErrOrderReturnIsNotConstructed)
}

// ID returns the return identifier.
func (r *OrderReturn) ID() kernel.UUID { return r.id }

// TenantID returns the owning tenant.
func (r *OrderReturn) TenantID() kernel.UUID { return r.tenantID }

// OrderID returns the parent order.
func (r *OrderReturn) OrderID() kernel.UUID { return r.orderID }

// OrderItemID returns the returned item.
func (r *OrderReturn) OrderItemID() kernel.UUID { return r.orderItemID }

// ReportedBy returns who reported the return.
func (r *OrderReturn) ReportedBy() kernel.UUID { return r.reportedBy }

// Reason returns the human-readable return reason.
func (r *OrderReturn) Reason() string { return r.reason }

// LineTotal returns the refund ceiling captured at report time.
func (r *OrderReturn) LineTotal() kernel.Money { return r.lineTotal }

// RefundAmount returns the approved refund, nil while unapproved.
func (r *OrderReturn) RefundAmount() *kernel.Money { return r.refundAmount }

// ApprovedBy returns the cashier who approved the refund, nil while
// unapproved.
func (r *OrderReturn) ApprovedBy() *kernel.UUID { return r.approvedBy }

// ConfirmedAt returns when the station acknowledged the physical return,
// nil while unconfirmed.
func (r *OrderReturn) ConfirmedAt() *time.Time { return r.confirmedAt }

// ConfirmedBy returns the station actor who acknowledged the return.
func (r *OrderReturn) ConfirmedBy() *kernel.UUID { return r.confirmedBy }

// ReportedAt returns when the return was reported.
func (r *OrderReturn) ReportedAt() time.Time { return r.reportedAt }

// IsApproved reports whether a refund amount has been set.
func (r *OrderReturn) IsApproved() bool { return r.refundAmount != nil }

// IsConfirmed reports whether the station acknowledged the physical return.
func (r *OrderReturn) IsConfirmed() bool { return r.confirmedAt != nil }

// ApproveRefund sets the refund amount. A nil amount approves the full line
// total; an explicit amount may only lower it. Once set, the amount is
// final for this operation: re-approval is a state conflict, never a
// silent overwrite.
func (r *OrderReturn) ApproveRefund(amount *kernel.Money, approvedBy kernel.UUID, now time.Time) error {
	if r.IsApproved() {
		return errs.NewStateConflictErrorWithCause("orderReturn",
			fmt.Errorf("refund for return %s is already approved at %s", r.id, r.refundAmount))
	}
	if err := approvedBy.Validate(); err != nil {
		return err
	}

	refund := r.lineTotal
	if amount != nil {
		if !amount.IsPositive() {
			return errs.NewValueIsInvalidError("amount")
		}
		if r.lineTotal.LessThan(*amount) {
			return errs.NewValueIsInvalidErrorWithCause("amount",
				fmt.Errorf("refund %s exceeds line total %s", amount, r.lineTotal))
		}
		refund = *amount
	}

	r.refundAmount = &refund
	r.approvedBy = &approvedBy

	r.events = append(r.events, RefundApprovedEvent{
		tenantID:   r.tenantID,
		occurredAt: now,
		ReturnID:   r.id,
		OrderID:    r.orderID,
		Amount:     refund,
	})

	return nil
}

// ConfirmReturn records the station's acknowledgement that the physical
// item came back. Valid only once; it never re-transitions the item.
func (r *OrderReturn) ConfirmReturn(confirmedBy kernel.UUID, now time.Time) error {
	if r.IsConfirmed() {
		return errs.NewStateConflictErrorWithCause("orderReturn",
			fmt.Errorf("return %s was already confirmed at %s", r.id, r.confirmedAt))
	}
	if err := confirmedBy.Validate(); err != nil {
		return err
	}

	r.confirmedAt = &now
	r.confirmedBy = &confirmedBy

	r.events = append(r.events, ConfirmedEvent{
		tenantID:   r.tenantID,
		occurredAt: now,
		ReturnID:   r.id,
		OrderID:    r.orderID,
	})

	return nil
}

// PullEvents returns recorded domain events and clears the internal list.
func (r *OrderReturn) PullEvents() []kernel.DomainEvent {
	events := r.events
	r.events = nil
	return events
}

func (r *OrderReturn) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *OrderReturn) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.tenantID = id
	return nil
}

func (r *OrderReturn) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.orderID = id
	return nil
}

func (r *OrderReturn) setOrderItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.orderItemID = id
	return nil
}

func (r *OrderReturn) setReportedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.reportedBy = id
	return nil
}

func (r *OrderReturn) setLineTotal(lineTotal kernel.Money) error {
	if !lineTotal.IsPositive() {
		return errs.NewValueIsInvalidError("lineTotal")
	}
	r.lineTotal = lineTotal
	return nil
}
