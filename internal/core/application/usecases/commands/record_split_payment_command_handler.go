package commands

import (
	"context"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
)

// RecordSplitPaymentCommandHandler writes one split session: one ledger
// row per non-zero component, all in the same transaction. The component
// sum must match the amount currently due; the ledger never shows a
// partial split.
type RecordSplitPaymentCommandHandler struct {
	uowFactory LedgerUoWFactory
	publisher  ports.EventPublisher
}

// NewRecordSplitPaymentCommandHandler creates a split payment handler.
func NewRecordSplitPaymentCommandHandler(
	uowFactory LedgerUoWFactory,
	publisher ports.EventPublisher,
) RecordSplitPaymentCommandHandler {
	return RecordSplitPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the split payment command.
func (h *RecordSplitPaymentCommandHandler) Handle(ctx context.Context, cmd RecordSplitPaymentCommand) error {
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

	aggregate, balance, err := loadBalance(ctx, uow, caller.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	rows, err := payment.NewSplitPayments(
		kernel.NewUUID(), caller.TenantID(), aggregate.ID(),
		balance.Remaining, cmd.Components(), caller.UserID(), time.Now().UTC())
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
