package cmd

import (
	"context"

	"gorm.io/gorm"

	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/catalogrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/commands"
	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/queries"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	catalog    ports.CatalogService
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, publisher ports.EventPublisher) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		catalog:    catalogrepo.NewGormCatalogService(gormDB),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.catalog, c.publisher)
}

func (c *CompositionRoot) CreateCreateWalkUpSaleCommandHandler() commands.CreateWalkUpSaleCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateWalkUpSaleCommandHandler(f, c.catalog, c.publisher)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateMarkItemReadyCommandHandler() commands.MarkItemReadyCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkItemReadyCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRejectItemCommandHandler() commands.RejectItemCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectItemCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateMarkOrderServedCommandHandler() commands.MarkOrderServedCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOrderServedCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateMarkMenuItemUnavailableCommandHandler() commands.MarkMenuItemUnavailableCommandHandler {
	var f commands.OutOfStockUoWFactory = FuncOutOfStockUoWFactory(func() commands.OutOfStockUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkMenuItemUnavailableCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordPaymentCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRecordSplitPaymentCommandHandler() commands.RecordSplitPaymentCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordSplitPaymentCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRecordItemSplitPaymentCommandHandler() commands.RecordItemSplitPaymentCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordItemSplitPaymentCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateConfirmOrderPaidCommandHandler() commands.ConfirmOrderPaidCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmOrderPaidCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateReportReturnCommandHandler() commands.ReportReturnCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportReturnCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateApproveRefundCommandHandler() commands.ApproveRefundCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveRefundCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateConfirmReturnCommandHandler() commands.ConfirmReturnCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmReturnCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAssignZoneRoleCommandHandler() commands.AssignZoneRoleCommandHandler {
	var f commands.StaffingUoWFactory = FuncStaffingUoWFactory(func() commands.StaffingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignZoneRoleCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAllocateInventoryCommandHandler() commands.AllocateInventoryCommandHandler {
	var f commands.InventoryUoWFactory = FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateInventoryCommandHandler(f, c.catalog, c.publisher)
}

func (c *CompositionRoot) CreateTransferInventoryCommandHandler() commands.TransferInventoryCommandHandler {
	var f commands.InventoryUoWFactory = FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransferInventoryCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetStationQueueQueryHandler() queries.GetStationQueueQueryHandler {
	return queries.NewGetStationQueueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderBalanceQueryHandler() queries.GetOrderBalanceQueryHandler {
	return queries.NewGetOrderBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncOutOfStockUoWFactory func() commands.OutOfStockUoW

func (f FuncOutOfStockUoWFactory) Create() commands.OutOfStockUoW {
	return f()
}

type FuncStaffingUoWFactory func() commands.StaffingUoW

func (f FuncStaffingUoWFactory) Create() commands.StaffingUoW {
	return f()
}

// FanOutPublisher forwards committed events to every configured publisher.
// The change feed exchange and the websocket hub both receive the same
// stream; each target is best effort on its own.
type FanOutPublisher struct {
	targets []ports.EventPublisher
}

func NewFanOutPublisher(targets ...ports.EventPublisher) *FanOutPublisher {
	return &FanOutPublisher{targets: targets}
}

func (p *FanOutPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) {
	for _, target := range p.targets {
		target.Publish(ctx, events...)
	}
}
