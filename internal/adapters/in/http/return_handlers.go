package http

import (
	"net/http"

	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/commands"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ReportReturnRequest is the body of POST /orders/:orderID/items/:itemID/returns.
type ReportReturnRequest struct {
	Reason string `json:"reason"`
}

// ApproveRefundRequest is the body of POST /returns/:returnID/refund. An
// absent amount approves the full line total.
type ApproveRefundRequest struct {
	Amount *string `json:"amount"`
}

// ReportReturn handles POST /api/v1/orders/:orderID/items/:itemID/returns.
func (s *Server) ReportReturn(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, "invalid order ID")
	}
	itemID, err := pathUUID(c, "itemID")
	if err != nil {
		return badRequest(c, "invalid item ID")
	}

	var req ReportReturnRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewReportReturnCommand(orderID, itemID, req.Reason, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.reportReturn.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ApproveRefund handles POST /api/v1/returns/:returnID/refund.
func (s *Server) ApproveRefund(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	returnID, err := pathUUID(c, "returnID")
	if err != nil {
		return badRequest(c, "invalid return ID")
	}

	var req ApproveRefundRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	var amount *kernel.Money
	if req.Amount != nil {
		parsed, amountErr := kernel.MoneyFromString(*req.Amount)
		if amountErr != nil {
			return writeError(c, amountErr)
		}
		amount = &parsed
	}

	cmd, err := commands.NewApproveRefundCommand(returnID, amount, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.approveRefund.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ConfirmReturn handles POST /api/v1/returns/:returnID/confirm.
func (s *Server) ConfirmReturn(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	returnID, err := pathUUID(c, "returnID")
	if err != nil {
		return badRequest(c, "invalid return ID")
	}

	cmd, err := commands.NewConfirmReturnCommand(returnID, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.confirmReturn.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
