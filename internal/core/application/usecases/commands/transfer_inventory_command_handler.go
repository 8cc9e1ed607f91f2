package commands

import (
	"context"
	"errors"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/inventory"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"
)

// TransferInventoryCommandHandler moves units between two allocation rows
// and appends the transfer log line, all in one transaction. A destination
// zone without an allocation row gets an empty one first, so transfers
// into fresh zones work.
type TransferInventoryCommandHandler struct {
	uowFactory InventoryUoWFactory
	publisher  ports.EventPublisher
}

// NewTransferInventoryCommandHandler creates a transfer handler.
func NewTransferInventoryCommandHandler(
	uowFactory InventoryUoWFactory,
	publisher ports.EventPublisher,
) TransferInventoryCommandHandler {
	return TransferInventoryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the transfer command.
func (h *TransferInventoryCommandHandler) Handle(ctx context.Context, cmd TransferInventoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	caller := cmd.Caller()
	if err := caller.RequireRole(staffing.RoleAdmin); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.InventoryRepository()

	from, err := repo.GetAllocation(ctx, caller.TenantID(), cmd.MenuItemID(), cmd.FromZoneID())
	if err != nil {
		return err
	}

	to, err := repo.GetAllocation(ctx, caller.TenantID(), cmd.MenuItemID(), cmd.ToZoneID())
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		to, err = inventory.NewZoneAllocation(
			kernel.NewUUID(), caller.TenantID(), cmd.MenuItemID(), cmd.ToZoneID(), 0)
		if err != nil {
			return err
		}
		if err = repo.UpsertAllocations(ctx, []*inventory.ZoneAllocation{to}); err != nil {
			return err
		}
	}

	record, err := inventory.NewTransferRecord(
		kernel.NewUUID(), caller.TenantID(), cmd.MenuItemID(),
		cmd.FromZoneID(), cmd.ToZoneID(), cmd.Quantity(), cmd.Reason(),
		caller.UserID(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = record.Apply(from, to); err != nil {
		return err
	}

	if err = repo.UpdateAllocations(ctx, from, to); err != nil {
		return err
	}
	if err = repo.AddTransfer(ctx, record); err != nil {
		return err
	}

	uow.Track(record)
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, uow.PullCommittedEvents()...)
	return nil
}
