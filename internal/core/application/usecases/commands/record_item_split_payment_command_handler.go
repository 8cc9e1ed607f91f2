package commands

import (
	"context"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
)

// RecordItemSplitPaymentCommandHandler writes a per-item split session.
// Line totals come from the order's active items; an allocation against a
// rejected or returned item fails before any row is written.
type RecordItemSplitPaymentCommandHandler struct {
	uowFactory LedgerUoWFactory
	publisher  ports.EventPublisher
}

// NewRecordItemSplitPaymentCommandHandler creates a per-item split handler.
func NewRecordItemSplitPaymentCommandHandler(
	uowFactory LedgerUoWFactory,
	publisher ports.EventPublisher,
) RecordItemSplitPaymentCommandHandler {
	return RecordItemSplitPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the per-item split command.
func (h *RecordItemSplitPaymentCommandHandler) Handle(ctx context.Context, cmd RecordItemSplitPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	caller := cmd.Caller()
	if err := caller.RequireRole(staffing.RoleCashier, staffing.RoleAdmin); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, _, err := loadBalance(ctx, uow, caller.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	lineTotals := payment.LineTotals{}
	for _, item := range aggregate.Items() {
		if item.Status().IsActive() {
			lineTotals[item.ID()] = item.LineTotal()
		}
	}

	rows, err := payment.NewItemSplitPayments(
		kernel.NewUUID(), caller.TenantID(), aggregate.ID(),
		cmd.Allocations(), lineTotals, aggregate.Total(),
		caller.UserID(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.PaymentRepository().AddAll(ctx, rows); err != nil {
		return err
	}

	for _, row := range rows {
		uow.Track(row)
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.PullCommittedEvents()...)
	return nil
}
