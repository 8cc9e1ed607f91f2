package http

import (
	"net/http"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/commands"
	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/queries"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"

	"github.com/labstack/echo/v4"
)

// AssignZoneRoleRequest is the body of POST /assignments. The event comes
// from the shift token.
type AssignZoneRoleRequest struct {
	ZoneID string `json:"zone_id"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// AllocateInventoryRequest is the body of POST /menu-items/:menuItemID/allocations.
// Plan maps zone IDs to absolute quantities.
type AllocateInventoryRequest struct {
	Plan map[string]int `json:"plan"`
}

// TransferInventoryRequest is the body of POST /inventory/transfers.
type TransferInventoryRequest struct {
	MenuItemID string `json:"menu_item_id"`
	FromZoneID string `json:"from_zone_id"`
	ToZoneID   string `json:"to_zone_id"`
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason"`
}

// AssignZoneRole handles POST /api/v1/assignments.
func (s *Server) AssignZoneRole(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	eventID, ok := eventIDFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req AssignZoneRoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	zoneID, err := kernel.UUIDFromString(req.ZoneID)
	if err != nil {
		return badRequest(c, "invalid zone_id")
	}
	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(c, "invalid user_id")
	}

	cmd, err := commands.NewAssignZoneRoleCommand(
		eventID, zoneID, userID, staffing.Role(req.Role), caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.assignZoneRole.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AllocateInventory handles POST /api/v1/menu-items/:menuItemID/allocations.
func (s *Server) AllocateInventory(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	menuItemID, err := pathUUID(c, "menuItemID")
	if err != nil {
		return badRequest(c, "invalid menu item ID")
	}

	var req AllocateInventoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	plan := make(map[kernel.UUID]int, len(req.Plan))
	for zone, quantity := range req.Plan {
		zoneID, zoneErr := kernel.UUIDFromString(zone)
		if zoneErr != nil {
			return badRequest(c, "invalid zone ID in plan")
		}
		plan[zoneID] = quantity
	}

	cmd, err := commands.NewAllocateInventoryCommand(menuItemID, plan, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.allocateInventory.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// TransferInventory handles POST /api/v1/inventory/transfers.
func (s *Server) TransferInventory(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	var req TransferInventoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	menuItemID, err := kernel.UUIDFromString(req.MenuItemID)
	if err != nil {
		return badRequest(c, "invalid menu_item_id")
	}
	fromZoneID, err := kernel.UUIDFromString(req.FromZoneID)
	if err != nil {
		return badRequest(c, "invalid from_zone_id")
	}
	toZoneID, err := kernel.UUIDFromString(req.ToZoneID)
	if err != nil {
		return badRequest(c, "invalid to_zone_id")
	}

	cmd, err := commands.NewTransferInventoryCommand(
		menuItemID, fromZoneID, toZoneID, req.Quantity, req.Reason, caller)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.transferInventory.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// StationQueueItemResponse is one row of GET /station-queue.
type StationQueueItemResponse struct {
	ItemID       kernel.UUID `json:"item_id"`
	OrderID      kernel.UUID `json:"order_id"`
	MenuItemID   kernel.UUID `json:"menu_item_id"`
	Quantity     int         `json:"quantity"`
	Notes        string      `json:"notes,omitempty"`
	Status       string      `json:"status"`
	DispatchedAt *time.Time  `json:"dispatched_at,omitempty"`
	TableNumber  int         `json:"table_number"`
	GuestName    string      `json:"guest_name,omitempty"`
}

// GetStationQueue handles GET /api/v1/station-queue.
func (s *Server) GetStationQueue(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	eventID, ok := eventIDFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	query, err := queries.NewGetStationQueueQuery(caller, eventID)
	if err != nil {
		return writeError(c, err)
	}

	queue, err := s.stationQueue.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]StationQueueItemResponse, len(queue))
	for i, row := range queue {
		response[i] = StationQueueItemResponse{
			ItemID:       row.ItemID,
			OrderID:      row.OrderID,
			MenuItemID:   row.MenuItemID,
			Quantity:     row.Quantity,
			Notes:        row.Notes,
			Status:       row.Status,
			DispatchedAt: row.DispatchedAt,
			TableNumber:  row.TableNumber,
			GuestName:    row.GuestName,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// OrderBalanceResponse is the body of GET /orders/:orderID/balance.
type OrderBalanceResponse struct {
	OrderID   kernel.UUID  `json:"order_id"`
	Status    string       `json:"status"`
	Total     kernel.Money `json:"total"`
	Paid      kernel.Money `json:"paid"`
	Refunded  kernel.Money `json:"refunded"`
	Remaining kernel.Money `json:"remaining"`
	FullyPaid bool         `json:"fully_paid"`
}

// GetOrderBalance handles GET /api/v1/orders/:orderID/balance.
func (s *Server) GetOrderBalance(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, "invalid order ID")
	}

	query, err := queries.NewGetOrderBalanceQuery(caller, orderID)
	if err != nil {
		return writeError(c, err)
	}

	balance, err := s.orderBalance.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, OrderBalanceResponse{
		OrderID:   balance.OrderID,
		Status:    balance.Status,
		Total:     balance.Total,
		Paid:      balance.Paid,
		Refunded:  balance.Refunded,
		Remaining: balance.Remaining,
		FullyPaid: balance.FullyPaid,
	})
}

// OpenOrderResponse is one row of GET /orders/open.
type OpenOrderResponse struct {
	OrderID     kernel.UUID  `json:"order_id"`
	TableNumber *int         `json:"table_number,omitempty"`
	GuestName   string       `json:"guest_name,omitempty"`
	Status      string       `json:"status"`
	Total       kernel.Money `json:"total"`
	ItemCount   int          `json:"item_count"`
	ServedAt    *time.Time   `json:"served_at,omitempty"`
}

// GetOpenOrders handles GET /api/v1/orders/open.
func (s *Server) GetOpenOrders(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	eventID, ok := eventIDFrom(c)
	if !ok {
		return unauthenticated(c)
	}

	query, err := queries.NewGetOpenOrdersQuery(caller, eventID)
	if err != nil {
		return writeError(c, err)
	}

	orders, err := s.openOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]OpenOrderResponse, len(orders))
	for i, row := range orders {
		response[i] = OpenOrderResponse{
			OrderID:     row.OrderID,
			TableNumber: row.TableNumber,
			GuestName:   row.GuestName,
			Status:      row.Status,
			Total:       row.Total,
			ItemCount:   row.ItemCount,
			ServedAt:    row.ServedAt,
		}
	}

	return c.JSON(http.StatusOK, response)
}
