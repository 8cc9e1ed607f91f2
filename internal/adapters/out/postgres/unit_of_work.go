// Package postgres implements the unit of work and its repositories on
// GORM. One GormUnitOfWork spans one business transaction: repositories
// created from it share the transaction, tracked event carriers are
// drained only after a successful commit.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/catalogrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/inventoryrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/paymentrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/returnrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/staffingrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"

	"github.com/google/uuid"
)

// GormUnitOfWorkFactory creates one fresh unit of work per business
// operation so concurrent commands never share transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the database handle.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with empty tracking state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:           f.db,
		itemStatuses: make(map[uuid.UUID]int),
	}
}

// GormUnitOfWork coordinates one database transaction across the order,
// payment, return, inventory, and staffing repositories.
//
// It also journals the item statuses loaded during the transaction. The
// order repository uses the journal to make item status writes conditional
// on what this transaction actually read, so two actors racing on the same
// item surface as a state conflict instead of a lost update.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB

	itemStatuses map[uuid.UUID]int
	carriers     []kernel.EventCarrier
	committed    []kernel.DomainEvent
}

// Begin starts the transaction. A second call is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit commits the transaction and drains the tracked carriers. Events
// become visible through PullCommittedEvents only from here on.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.tx.Commit().Error; err != nil {
		return err
	}
	uow.tx = nil

	for _, carrier := range uow.carriers {
		uow.committed = append(uow.committed, carrier.PullEvents()...)
	}
	uow.carriers = nil

	return nil
}

// Rollback discards the transaction. After a successful Commit the
// transaction is already gone and Rollback does nothing, which allows
// `defer uow.Rollback(ctx)` in handlers.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// Track registers an event carrier to drain on commit.
func (uow *GormUnitOfWork) Track(carrier kernel.EventCarrier) {
	uow.carriers = append(uow.carriers, carrier)
}

// PullCommittedEvents returns the events of carriers tracked before a
// successful commit. Before commit it returns nothing.
func (uow *GormUnitOfWork) PullCommittedEvents() []kernel.DomainEvent {
	return uow.committed
}

// RecordItemStatus journals the status an order item row had when this
// transaction loaded it.
func (uow *GormUnitOfWork) RecordItemStatus(itemID uuid.UUID, status int) {
	uow.itemStatuses[itemID] = status
}

// LoadedItemStatus reports the journaled status of an item row, if this
// transaction loaded it.
func (uow *GormUnitOfWork) LoadedItemStatus(itemID uuid.UUID) (int, bool) {
	status, ok := uow.itemStatuses[itemID]
	return status, ok
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an order repository bound to the current
// transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// PaymentRepository returns a payment ledger repository bound to the
// current transaction.
func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn())
}

// ReturnRepository returns a return sub-ledger repository bound to the
// current transaction.
func (uow *GormUnitOfWork) ReturnRepository() ports.ReturnRepository {
	return returnrepo.NewGormReturnRepository(uow.conn())
}

// InventoryRepository returns an inventory repository bound to the current
// transaction.
func (uow *GormUnitOfWork) InventoryRepository() ports.InventoryRepository {
	return inventoryrepo.NewGormInventoryRepository(uow.conn())
}

// StaffingRepository returns a staffing repository bound to the current
// transaction.
func (uow *GormUnitOfWork) StaffingRepository() ports.StaffingRepository {
	return staffingrepo.NewGormStaffingRepository(uow.conn())
}

// CatalogService returns a catalog service bound to the current
// transaction.
func (uow *GormUnitOfWork) CatalogService() ports.CatalogService {
	return catalogrepo.NewGormCatalogService(uow.conn())
}
