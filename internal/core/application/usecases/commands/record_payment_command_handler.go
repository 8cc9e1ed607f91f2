package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

// RecordPaymentCommandHandler appends one row to the ledger. A payment may
// never exceed the amount currently due; overshooting the balance is a
// validation failure, not an open credit.
type RecordPaymentCommandHandler struct {
	uowFactory LedgerUoWFactory
	publisher  ports.EventPublisher
}

// NewRecordPaymentCommandHandler creates a handler for plain payments.
func NewRecordPaymentCommandHandler(
	uowFactory LedgerUoWFactory,
	publisher ports.EventPublisher,
) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the payment command.
func (h *RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) error {
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

	if balance.Remaining.LessThan(cmd.Amount()) && !cmd.Amount().MatchesWithinTolerance(balance.Remaining) {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("payment of %s exceeds the %s currently due", cmd.Amount(), balance.Remaining))
	}

	row, err := payment.NewPayment(
		kernel.NewUUID(), caller.TenantID(), aggregate.ID(),
		cmd.Amount(), cmd.Method(), caller.UserID(), cmd.Notes(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.PaymentRepository().Add(ctx, row); err != nil {
		return err
	}

	uow.Track(row)
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.PullCommittedEvents()...)
	return nil
}
