// Package http exposes the command and query use cases over a JSON API.
// Every route except the health check sits behind the shift token
// middleware; handlers translate bodies into validated commands and map
// domain error kinds onto HTTP statuses.
package http

import (
	"net/http"

	"github.com/edwode/flowserve-ops-sub001/internal/adapters/in/ws"
	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/commands"
	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/queries"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to command and query handlers.
type Server struct {
	createOrder         commands.CreateOrderCommandHandler
	createWalkUpSale    commands.CreateWalkUpSaleCommandHandler
	dispatchOrder       commands.DispatchOrderCommandHandler
	markItemReady       commands.MarkItemReadyCommandHandler
	rejectItem          commands.RejectItemCommandHandler
	markOrderServed     commands.MarkOrderServedCommandHandler
	markMenuUnavailable commands.MarkMenuItemUnavailableCommandHandler

	recordPayment          commands.RecordPaymentCommandHandler
	recordSplitPayment     commands.RecordSplitPaymentCommandHandler
	recordItemSplitPayment commands.RecordItemSplitPaymentCommandHandler
	confirmOrderPaid       commands.ConfirmOrderPaidCommandHandler

	reportReturn  commands.ReportReturnCommandHandler
	approveRefund commands.ApproveRefundCommandHandler
	confirmReturn commands.ConfirmReturnCommandHandler

	assignZoneRole    commands.AssignZoneRoleCommandHandler
	allocateInventory commands.AllocateInventoryCommandHandler
	transferInventory commands.TransferInventoryCommandHandler

	stationQueue queries.GetStationQueueQueryHandler
	orderBalance queries.GetOrderBalanceQueryHandler
	openOrders   queries.GetOpenOrdersQueryHandler

	hub *ws.Hub
}

// Handlers groups everything the server needs; the composition root fills
// it in one place instead of a 20-argument constructor.
type Handlers struct {
	CreateOrder         commands.CreateOrderCommandHandler
	CreateWalkUpSale    commands.CreateWalkUpSaleCommandHandler
	DispatchOrder       commands.DispatchOrderCommandHandler
	MarkItemReady       commands.MarkItemReadyCommandHandler
	RejectItem          commands.RejectItemCommandHandler
	MarkOrderServed     commands.MarkOrderServedCommandHandler
	MarkMenuUnavailable commands.MarkMenuItemUnavailableCommandHandler

	RecordPayment          commands.RecordPaymentCommandHandler
	RecordSplitPayment     commands.RecordSplitPaymentCommandHandler
	RecordItemSplitPayment commands.RecordItemSplitPaymentCommandHandler
	ConfirmOrderPaid       commands.ConfirmOrderPaidCommandHandler

	ReportReturn  commands.ReportReturnCommandHandler
	ApproveRefund commands.ApproveRefundCommandHandler
	ConfirmReturn commands.ConfirmReturnCommandHandler

	AssignZoneRole    commands.AssignZoneRoleCommandHandler
	AllocateInventory commands.AllocateInventoryCommandHandler
	TransferInventory commands.TransferInventoryCommandHandler

	StationQueue queries.GetStationQueueQueryHandler
	OrderBalance queries.GetOrderBalanceQueryHandler
	OpenOrders   queries.GetOpenOrdersQueryHandler
}

// NewServer creates the HTTP server.
func NewServer(h Handlers, hub *ws.Hub) *Server {
	return &Server{
		createOrder:         h.CreateOrder,
		createWalkUpSale:    h.CreateWalkUpSale,
		dispatchOrder:       h.DispatchOrder,
		markItemReady:       h.MarkItemReady,
		rejectItem:          h.RejectItem,
		markOrderServed:     h.MarkOrderServed,
		markMenuUnavailable: h.MarkMenuUnavailable,

		recordPayment:          h.RecordPayment,
		recordSplitPayment:     h.RecordSplitPayment,
		recordItemSplitPayment: h.RecordItemSplitPayment,
		confirmOrderPaid:       h.ConfirmOrderPaid,

		reportReturn:  h.ReportReturn,
		approveRefund: h.ApproveRefund,
		confirmReturn: h.ConfirmReturn,

		assignZoneRole:    h.AssignZoneRole,
		allocateInventory: h.AllocateInventory,
		transferInventory: h.TransferInventory,

		stationQueue: h.StationQueue,
		orderBalance: h.OrderBalance,
		openOrders:   h.OpenOrders,

		hub: hub,
	}
}

// RegisterRoutes mounts all routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret string, resolver ports.CallerResolver) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", Authenticate(jwtSecret, resolver))

	api.POST("/orders", s.CreateOrder)
	api.POST("/walk-up-sales", s.CreateWalkUpSale)
	api.POST("/orders/:orderID/dispatch", s.DispatchOrder)
	api.POST("/orders/:orderID/items/:itemID/ready", s.MarkItemReady)
	api.POST("/orders/:orderID/items/:itemID/reject", s.RejectItem)
	api.POST("/orders/:orderID/served", s.MarkOrderServed)

	api.POST("/orders/:orderID/payments", s.RecordPayment)
	api.POST("/orders/:orderID/split-payments", s.RecordSplitPayment)
	api.POST("/orders/:orderID/item-split-payments", s.RecordItemSplitPayment)
	api.POST("/orders/:orderID/confirm-paid", s.ConfirmOrderPaid)

	api.POST("/orders/:orderID/items/:itemID/returns", s.ReportReturn)
	api.POST("/returns/:returnID/refund", s.ApproveRefund)
	api.POST("/returns/:returnID/confirm", s.ConfirmReturn)

	api.POST("/menu-items/:menuItemID/unavailable", s.MarkMenuItemUnavailable)
	api.POST("/menu-items/:menuItemID/allocations", s.AllocateInventory)
	api.POST("/inventory/transfers", s.TransferInventory)
	api.POST("/assignments", s.AssignZoneRole)

	api.GET("/station-queue", s.GetStationQueue)
	api.GET("/orders/:orderID/balance", s.GetOrderBalance)
	api.GET("/orders/open", s.GetOpenOrders)

	api.GET("/feed", s.SubscribeFeed)
}

// Health reports liveness.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SubscribeFeed upgrades the connection and attaches it to the caller's
// tenant room on the change feed.
func (s *Server) SubscribeFeed(c echo.Context) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthenticated(c)
	}
	return ws.Serve(s.hub, caller.TenantID(), c.Response(), c.Request())
}

// pathUUID parses one UUID path parameter.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param(name))
}
