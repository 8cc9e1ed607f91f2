package payment

import (
	"errors"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/guard"
)

// ErrPaymentIsNotConstructed is returned when a Payment bypassed its
// constructor.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Payment is one immutable row of the order's money ledger. Rows are only
// ever appended; corrections happen through the return sub-ledger, never by
// editing or deleting a payment.
type Payment struct {
	id             kernel.UUID
	tenantID       kernel.UUID
	orderID        kernel.UUID
	amount         kernel.Money
	method         Method
	confirmedBy    kernel.UUID
	splitSessionID *kernel.UUID
	notes          string
	recordedAt     time.Time

	events []kernel.DomainEvent
	guard  guard.ConstructorGuard
}

// NewPayment records a single-method payment against an order.
func NewPayment(
	id, tenantID, orderID kernel.UUID,
	amount kernel.Money,
	method Method,
	confirmedBy kernel.UUID,
	notes string,
	recordedAt time.Time,
) (*Payment, error) {
	p, err := newPayment(id, tenantID, orderID, amount, method, confirmedBy, nil, notes, recordedAt)
	if err != nil {
		return nil, err
	}

	p.events = append(p.events, RecordedEvent{
		tenantID:   tenantID,
		occurredAt: recordedAt,
		PaymentID:  id,
		OrderID:    orderID,
		Amount:     amount,
		Method:     method,
	})

	return p, nil
}

// RestorePayment rebuilds a ledger row from storage.
func RestorePayment(
	id, tenantID, orderID kernel.UUID,
	amount kernel.Money,
	method Method,
	confirmedBy kernel.UUID,
	splitSessionID *kernel.UUID,
	notes string,
	recordedAt time.Time,
) (*Payment, error) {
	return newPayment(id, tenantID, orderID, amount, method, confirmedBy, splitSessionID, notes, recordedAt)
}

func newPayment(
	id, tenantID, orderID kernel.UUID,
	amount kernel.Money,
	method Method,
	confirmedBy kernel.UUID,
	splitSessionID *kernel.UUID,
	notes string,
	recordedAt time.Time,
) (*Payment, error) {
	p := &Payment{
		notes:      notes,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTenantID(tenantID),
		p.setOrderID(orderID),
		p.setAmount(amount),
		p.setMethod(method),
		p.setConfirmedBy(confirmedBy),
		p.setSplitSessionID(splitSessionID),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the payment was created through its constructor.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// ID returns the payment identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// TenantID returns the owning tenant.
func (p *Payment) TenantID() kernel.UUID { return p.tenantID }

// OrderID returns the order the payment settles.
func (p *Payment) OrderID() kernel.UUID { return p.orderID }

// Amount returns the paid amount.
func (p *Payment) Amount() kernel.Money { return p.amount }

// Method returns the payment method.
func (p *Payment) Method() Method { return p.method }

// ConfirmedBy returns the cashier who recorded the row.
func (p *Payment) ConfirmedBy() kernel.UUID { return p.confirmedBy }

// SplitSessionID returns the split session the row belongs to, nil for
// plain payments.
func (p *Payment) SplitSessionID() *kernel.UUID { return p.splitSessionID }

// Notes returns free-form cashier notes.
func (p *Payment) Notes() string { return p.notes }

// RecordedAt returns when the row was written.
func (p *Payment) RecordedAt() time.Time { return p.recordedAt }

// PullEvents returns recorded domain events and clears the internal list.
func (p *Payment) PullEvents() []kernel.DomainEvent {
	events := p.events
	p.events = nil
	return events
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.tenantID = id
	return nil
}

func (p *Payment) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.orderID = id
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount")
	}
	p.amount = amount
	return nil
}

func (p *Payment) setMethod(method Method) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}

func (p *Payment) setConfirmedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.confirmedBy = id
	return nil
}

func (p *Payment) setSplitSessionID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	p.splitSessionID = id
	return nil
}
