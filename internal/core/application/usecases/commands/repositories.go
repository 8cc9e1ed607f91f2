// Package commands contains business operations that modify system state.
// Every command follows the same shape: a validated command object, a
// handler that opens a unit of work, domain mutations inside the
// transaction, and committed events handed to the publisher afterwards.
package commands

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Handlers depend on the narrowest composition they need, which
// keeps the mocks in tests small.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EventCollector gathers domain events raised inside the transaction.
	// Events are only released after a successful commit.
	EventCollector interface {
		Track(carrier kernel.EventCarrier)
		PullCommittedEvents() []kernel.DomainEvent
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PaymentRepoFactory provides access to the payment ledger within a
	// transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// ReturnRepoFactory provides access to the return sub-ledger within a
	// transaction.
	ReturnRepoFactory interface {
		ReturnRepository() ports.ReturnRepository
	}

	// InventoryRepoFactory provides access to zone allocations and the
	// transfer log within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// StaffingRepoFactory provides access to zones, tables, and
	// assignments within a transaction.
	StaffingRepoFactory interface {
		StaffingRepository() ports.StaffingRepository
	}

	// CatalogFactory provides access to the menu catalog within a
	// transaction.
	CatalogFactory interface {
		CatalogService() ports.CatalogService
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		EventCollector
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// FulfillmentUoW covers item transitions that need zone scope
	// resolution alongside the order write.
	FulfillmentUoW interface {
		TxManager
		EventCollector
		OrderRepoFactory
		StaffingRepoFactory
	}

	// FulfillmentUoWFactory creates fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// LedgerUoW covers payment operations, which read the order and the
	// return sub-ledger to compute the amount due.
	LedgerUoW interface {
		TxManager
		EventCollector
		OrderRepoFactory
		PaymentRepoFactory
		ReturnRepoFactory
	}

	// LedgerUoWFactory creates ledger unit of work instances.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// ReturnUoW covers the return sub-ledger together with the parent
	// order.
	ReturnUoW interface {
		TxManager
		EventCollector
		OrderRepoFactory
		ReturnRepoFactory
	}

	// ReturnUoWFactory creates return unit of work instances.
	ReturnUoWFactory interface {
		Create() ReturnUoW
	}

	// InventoryUoW covers allocation and transfer writes.
	InventoryUoW interface {
		TxManager
		EventCollector
		InventoryRepoFactory
	}

	// InventoryUoWFactory creates inventory unit of work instances.
	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	// OutOfStockUoW covers the catalog availability flip together with
	// the order sweep it triggers, so both land in one transaction.
	OutOfStockUoW interface {
		TxManager
		EventCollector
		OrderRepoFactory
		CatalogFactory
	}

	// OutOfStockUoWFactory creates out-of-stock unit of work instances.
	OutOfStockUoWFactory interface {
		Create() OutOfStockUoW
	}

	// StaffingUoW covers zone-role assignment writes.
	StaffingUoW interface {
		TxManager
		EventCollector
		StaffingRepoFactory
	}

	// StaffingUoWFactory creates staffing unit of work instances.
	StaffingUoWFactory interface {
		Create() StaffingUoW
	}
)
