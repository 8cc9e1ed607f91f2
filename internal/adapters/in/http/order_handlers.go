package http

import (
	"net/http"

	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/commands"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// OrderLineRequest is one line of a new order.
type OrderLineRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	TableID   string             `json:"table_id"`
	GuestName string             `json:"guest_name"`
	Lines     []OrderLineRequest `json:"lines"`
}

// CreateWalkUpSaleRequest is the body of POST /walk-up-sales.
type CreateWalkUpSaleRequest struct {
	GuestName string             `json:"guest_name"`
	Lines     []OrderLineRequest `json:"lines"`
}

// OrderCreatedResponse returns the server-generated order ID.
type OrderCreatedResponse struct {
	OrderID kernel.UUID `json:"order_id"`
}

func commandLines(lines []OrderLineRequest) ([]commands.OrderLine, error) {
	out := make([]commands.OrderLine, 0, len(lines))
	for _, line := range lines {
		menuItemID, err := kernel.UUIDFromString(line.MenuItemID)
		if err != nil {
			return nil, err
		}
		out = append(out, commands.OrderLine{
			MenuItemID: menuItemID,
			Quantity:   line.Quantity,
			Notes:      line.Notes,
		})
	}
	return out, nil
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	eventID, ok := eventIDFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	tableID, err := kernel.UUIDFromString(req.TableID)
	if err != nil {
		return badRequest(c, "invalid table_id")
	}
	lines, err := commandLines(req.Lines)
	if err != nil {
		return badRequest(c, "invalid menu_item_id in lines")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, caller, eventID, tableID, req.GuestName, lines)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.createOrder.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, OrderCreatedResponse{OrderID: orderID})
}

// CreateWalkUpSale handles POST /api/v1/walk-up-sales.
func (s *Server) CreateWalkUpSale(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	eventID, ok := eventIDFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req CreateWalkUpSaleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	lines, err := commandLines(req.Lines)
	if err != nil {
		return badRequest(c, "invalid menu_item_id in lines")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateWalkUpSaleCommand(orderID, caller, eventID, req.GuestName, lines)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.createWalkUpSale.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, OrderCreatedResponse{OrderID: orderID})
}

// DispatchOrder handles POST /api/v1/orders/:orderID/dispatch.
func (s *Server) DispatchOrder(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, "invalid order ID")
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.dispatchOrder.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkItemReady handles POST /api/v1/orders/:orderID/items/:itemID/ready.
func (s *Server) MarkItemReady(c echo.Context) error {
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

	cmd, err := commands.NewMarkItemReadyCommand(orderID, itemID, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.markItemReady.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RejectItem handles POST /api/v1/orders/:orderID/items/:itemID/reject.
func (s *Server) RejectItem(c echo.Context) error {
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

	cmd, err := commands.NewRejectItemCommand(orderID, itemID, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.rejectItem.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkOrderServed handles POST /api/v1/orders/:orderID/served.
func (s *Server) MarkOrderServed(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, "invalid order ID")
	}

	cmd, err := commands.NewMarkOrderServedCommand(orderID, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.markOrderServed.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkMenuItemUnavailable handles POST /api/v1/menu-items/:menuItemID/unavailable.
func (s *Server) MarkMenuItemUnavailable(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	menuItemID, err := pathUUID(c, "menuItemID")
	if err != nil {
		return badRequest(c, "invalid menu item ID")
	}

	cmd, err := commands.NewMarkMenuItemUnavailableCommand(menuItemID, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.markMenuUnavailable.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
