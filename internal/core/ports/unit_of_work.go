package ports

import (
	"context"

	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control, repositories bound to the transaction, and domain
// event collection: carriers registered during the transaction are drained
// after a successful commit so events for rolled-back work never leave
// the process.
type UnitOfWork interface {
	// Begin starts a new database transaction. Safe to call twice; the
	// second call is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Calling it after a
	// successful Commit is a no-op, which allows `defer uow.Rollback(ctx)`.
	Rollback(ctx context.Context) error

	// Track registers an event carrier whose events are pulled after a
	// successful commit.
	Track(carrier kernel.EventCarrier)

	// PullCommittedEvents returns the events of every tracked carrier.
	// Valid only after Commit; before commit it returns nothing.
	PullCommittedEvents() []kernel.DomainEvent

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// PaymentRepository returns a PaymentRepository bound to the current
	// transaction.
	PaymentRepository() PaymentRepository

	// ReturnRepository returns a ReturnRepository bound to the current
	// transaction.
	ReturnRepository() ReturnRepository

	// InventoryRepository returns an InventoryRepository bound to the
	// current transaction.
	InventoryRepository() InventoryRepository

	// StaffingRepository returns a StaffingRepository bound to the
	// current transaction.
	StaffingRepository() StaffingRepository

	// CatalogService returns a CatalogService bound to the current
	// transaction.
	CatalogService() CatalogService
}
