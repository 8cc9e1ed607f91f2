package http

import (
	"net/http"

	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/commands"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"

	"github.com/labstack/echo/v4"
)

// RecordPaymentRequest is the body of POST /orders/:orderID/payments.
// Amounts are decimal strings; floats never carry money.
type RecordPaymentRequest struct {
	Amount string `json:"amount"`
	Method string `json:"method"`
	Notes  string `json:"notes"`
}

// RecordSplitPaymentRequest is the body of POST /orders/:orderID/split-payments.
// Absent components default to zero.
type RecordSplitPaymentRequest struct {
	Cash     string `json:"cash"`
	POS      string `json:"pos"`
	Transfer string `json:"transfer"`
}

// ItemAllocationRequest is one guest's share of a per-item bill split.
type ItemAllocationRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Amount   string `json:"amount"`
}

// RecordItemSplitPaymentRequest is the body of POST /orders/:orderID/item-split-payments.
type RecordItemSplitPaymentRequest struct {
	Allocations []ItemAllocationRequest `json:"allocations"`
}

func componentMoney(s string) (kernel.Money, error) {
	if s == "" {
		return kernel.ZeroMoney(), nil
	}
	return kernel.MoneyFromString(s)
}

// RecordPayment handles POST /api/v1/orders/:orderID/payments.
func (s *Server) RecordPayment(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, "invalid order ID")
	}

	var req RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	amount, err := kernel.MoneyFromString(req.Amount)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewRecordPaymentCommand(
		orderID, amount, payment.Method(req.Method), req.Notes, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.recordPayment.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RecordSplitPayment handles POST /api/v1/orders/:orderID/split-payments.
func (s *Server) RecordSplitPayment(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, "invalid order ID")
	}

	var req RecordSplitPaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cash, err := componentMoney(req.Cash)
	if err != nil {
		return writeError(c, err)
	}
	pos, err := componentMoney(req.POS)
	if err != nil {
		return writeError(c, err)
	}
	transfer, err := componentMoney(req.Transfer)
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewRecordSplitPaymentCommand(orderID, payment.SplitComponents{
		Cash:     cash,
		POS:      pos,
		Transfer: transfer,
	}, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.recordSplitPayment.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RecordItemSplitPayment handles POST /api/v1/orders/:orderID/item-split-payments.
func (s *Server) RecordItemSplitPayment(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, "invalid order ID")
	}

	var req RecordItemSplitPaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	allocations := make([]payment.ItemAllocation, 0, len(req.Allocations))
	for _, alloc := range req.Allocations {
		itemID, idErr := kernel.UUIDFromString(alloc.ItemID)
		if idErr != nil {
			return badRequest(c, "invalid item_id in allocations")
		}
		amount, amountErr := kernel.MoneyFromString(alloc.Amount)
		if amountErr != nil {
			return writeError(c, amountErr)
		}
		allocations = append(allocations, payment.ItemAllocation{
			ItemID:   itemID,
			Quantity: alloc.Quantity,
			Amount:   amount,
		})
	}

	cmd, err := commands.NewRecordItemSplitPaymentCommand(orderID, allocations, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.recordItemSplitPayment.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ConfirmOrderPaid handles POST /api/v1/orders/:orderID/confirm-paid.
func (s *Server) ConfirmOrderPaid(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, "invalid order ID")
	}

	cmd, err := commands.NewConfirmOrderPaidCommand(orderID, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.confirmOrderPaid.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
