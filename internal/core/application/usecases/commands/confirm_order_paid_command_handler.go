package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

// ConfirmOrderPaidCommandHandler closes an order once its ledger balances.
// Confirming an already-paid order is a state conflict and never writes a
// second payment or moves the timestamp.
type ConfirmOrderPaidCommandHandler struct {
	uowFactory LedgerUoWFactory
	publisher  ports.EventPublisher
}

// NewConfirmOrderPaidCommandHandler creates a handler for paid confirmation.
func NewConfirmOrderPaidCommandHandler(
	uowFactory LedgerUoWFactory,
	publisher ports.EventPublisher,
) ConfirmOrderPaidCommandHandler {
	return ConfirmOrderPaidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the confirmation command.
func (h *ConfirmOrderPaidCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderPaidCommand) error {
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

	if !balance.FullyPaid {
		return errs.NewValueIsInvalidErrorWithCause("orderID",
			fmt.Errorf("order %s still owes %s of %s", aggregate.ID(), balance.Remaining, balance.Total))
	}

	if err = aggregate.MarkPaid(time.Now().UTC()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	uow.Track(aggregate)
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.PullCommittedEvents()...)
	return nil
}
