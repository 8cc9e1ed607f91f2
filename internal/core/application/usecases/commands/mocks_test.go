package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/commands"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/inventory"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/orderreturn"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/payment"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"
)

// Repository mocks. Methods a test never touches return zero values via
// testify's Called machinery only when the test registered them.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOpenByEvent(ctx context.Context, tenantID, eventID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetWithRoutableItemsForMenuItem(ctx context.Context, tenantID, menuItemID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) AddAll(ctx context.Context, rows []*payment.Payment) error {
	return m.Called(ctx, rows).Error(0)
}

func (m *MockPaymentRepository) GetByOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*payment.Payment, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetBySplitSession(ctx context.Context, tenantID, sessionID kernel.UUID) ([]*payment.Payment, error) {
	args := m.Called(ctx, tenantID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Payment), args.Error(1)
}

type MockReturnRepository struct{ mock.Mock }

func (m *MockReturnRepository) Add(ctx context.Context, r *orderreturn.OrderReturn) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReturnRepository) Update(ctx context.Context, r *orderreturn.OrderReturn) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReturnRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*orderreturn.OrderReturn, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderreturn.OrderReturn), args.Error(1)
}

func (m *MockReturnRepository) GetByOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*orderreturn.OrderReturn, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orderreturn.OrderReturn), args.Error(1)
}

func (m *MockReturnRepository) SumApprovedRefundsByOrder(ctx context.Context, tenantID, orderID kernel.UUID) (kernel.Money, error) {
	args := m.Called(ctx, tenantID, orderID)
	return args.Get(0).(kernel.Money), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) UpsertAllocations(ctx context.Context, allocations []*inventory.ZoneAllocation) error {
	return m.Called(ctx, allocations).Error(0)
}

func (m *MockInventoryRepository) GetAllocation(ctx context.Context, tenantID, menuItemID, zoneID kernel.UUID) (*inventory.ZoneAllocation, error) {
	args := m.Called(ctx, tenantID, menuItemID, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ZoneAllocation), args.Error(1)
}

func (m *MockInventoryRepository) GetAllocationsByMenuItem(ctx context.Context, tenantID, menuItemID kernel.UUID) ([]*inventory.ZoneAllocation, error) {
	args := m.Called(ctx, tenantID, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.ZoneAllocation), args.Error(1)
}

func (m *MockInventoryRepository) UpdateAllocations(ctx context.Context, allocations ...*inventory.ZoneAllocation) error {
	return m.Called(ctx, allocations).Error(0)
}

func (m *MockInventoryRepository) AddTransfer(ctx context.Context, record *inventory.TransferRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockInventoryRepository) GetAllocatedMenuItemIDs(ctx context.Context, tenantID kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockStaffingRepository struct{ mock.Mock }

func (m *MockStaffingRepository) AddAssignment(ctx context.Context, a *staffing.ZoneRoleAssignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockStaffingRepository) GetZoneIDsForUser(ctx context.Context, tenantID, eventID, userID kernel.UUID, role staffing.Role) ([]kernel.UUID, error) {
	args := m.Called(ctx, tenantID, eventID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockStaffingRepository) GetTable(ctx context.Context, tenantID, id kernel.UUID) (*staffing.Table, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staffing.Table), args.Error(1)
}

func (m *MockStaffingRepository) GetTableIDsInZones(ctx context.Context, tenantID kernel.UUID, zoneIDs []kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, tenantID, zoneIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockStaffingRepository) GetZone(ctx context.Context, tenantID, id kernel.UUID) (*staffing.Zone, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staffing.Zone), args.Error(1)
}

type MockCatalogService struct{ mock.Mock }

func (m *MockCatalogService) GetMenuItem(ctx context.Context, tenantID, id kernel.UUID) (ports.MenuItem, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(ports.MenuItem), args.Error(1)
}

func (m *MockCatalogService) SetUnavailable(ctx context.Context, tenantID, id kernel.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// fakeUoW satisfies every command UoW interface with a recording
// implementation. Begin/Commit/Rollback outcomes are configurable; event
// tracking behaves like the real unit of work.
type fakeUoW struct {
	beginErr  error
	commitErr error

	began      bool
	committed  bool
	rolledBack bool

	orders   *MockOrderRepository
	payments *MockPaymentRepository
	returns  *MockReturnRepository
	inv      *MockInventoryRepository
	staff    *MockStaffingRepository
	catalog  *MockCatalogService
	carriers []kernel.EventCarrier
	drained  []kernel.DomainEvent
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		orders:   new(MockOrderRepository),
		payments: new(MockPaymentRepository),
		returns:  new(MockReturnRepository),
		inv:      new(MockInventoryRepository),
		staff:    new(MockStaffingRepository),
		catalog:  new(MockCatalogService),
	}
}

func (u *fakeUoW) Begin(context.Context) error {
	if u.beginErr != nil {
		return u.beginErr
	}
	u.began = true
	return nil
}

func (u *fakeUoW) Commit(context.Context) error {
	if u.commitErr != nil {
		return u.commitErr
	}
	u.committed = true
	for _, carrier := range u.carriers {
		u.drained = append(u.drained, carrier.PullEvents()...)
	}
	return nil
}

func (u *fakeUoW) Rollback(context.Context) error {
	if !u.committed {
		u.rolledBack = true
	}
	return nil
}

func (u *fakeUoW) Track(carrier kernel.EventCarrier)         { u.carriers = append(u.carriers, carrier) }
func (u *fakeUoW) PullCommittedEvents() []kernel.DomainEvent { return u.drained }

func (u *fakeUoW) OrderRepository() ports.OrderRepository         { return u.orders }
func (u *fakeUoW) PaymentRepository() ports.PaymentRepository     { return u.payments }
func (u *fakeUoW) ReturnRepository() ports.ReturnRepository       { return u.returns }
func (u *fakeUoW) InventoryRepository() ports.InventoryRepository { return u.inv }
func (u *fakeUoW) StaffingRepository() ports.StaffingRepository   { return u.staff }
func (u *fakeUoW) CatalogService() ports.CatalogService           { return u.catalog }

type fakeOrderUoWFactory struct{ uow *fakeUoW }

func (f fakeOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type fakeFulfillmentUoWFactory struct{ uow *fakeUoW }

func (f fakeFulfillmentUoWFactory) Create() commands.FulfillmentUoW { return f.uow }

type fakeLedgerUoWFactory struct{ uow *fakeUoW }

func (f fakeLedgerUoWFactory) Create() commands.LedgerUoW { return f.uow }

type fakeReturnUoWFactory struct{ uow *fakeUoW }

func (f fakeReturnUoWFactory) Create() commands.ReturnUoW { return f.uow }

type fakeInventoryUoWFactory struct{ uow *fakeUoW }

func (f fakeInventoryUoWFactory) Create() commands.InventoryUoW { return f.uow }

type fakeOutOfStockUoWFactory struct{ uow *fakeUoW }

func (f fakeOutOfStockUoWFactory) Create() commands.OutOfStockUoW { return f.uow }

type fakeStaffingUoWFactory struct{ uow *fakeUoW }

func (f fakeStaffingUoWFactory) Create() commands.StaffingUoW { return f.uow }

// recordingPublisher captures everything published for assertions.
type recordingPublisher struct {
	events []kernel.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...kernel.DomainEvent) {
	p.events = append(p.events, events...)
}

// Shared fixture helpers.

func eventNames(events []kernel.DomainEvent) []string {
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.EventName())
	}
	return names
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newCaller(t *testing.T, role staffing.Role, zoneIDs ...kernel.UUID) staffing.Caller {
	t.Helper()
	caller, err := staffing.NewCaller(kernel.NewUUID(), kernel.NewUUID(), role, zoneIDs)
	require.NoError(t, err)
	return caller
}

func callerForTenant(t *testing.T, tenantID kernel.UUID, role staffing.Role, zoneIDs ...kernel.UUID) staffing.Caller {
	t.Helper()
	caller, err := staffing.NewCaller(kernel.NewUUID(), tenantID, role, zoneIDs)
	require.NoError(t, err)
	return caller
}

// servedOrder restores an order in served status with one active served
// item, ready for ledger operations.
func servedOrder(t *testing.T, tenantID kernel.UUID, total string) *order.Order {
	t.Helper()

	servedAt := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)
	tableID := kernel.NewUUID()

	item, err := order.RestoreOrderItem(
		kernel.NewUUID(), kernel.NewUUID(), order.StationMealDispenser,
		1, mustMoney(t, total), order.ItemServed, nil, nil, nil, "")
	require.NoError(t, err)

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), tenantID, kernel.NewUUID(), kernel.NewUUID(),
		&tableID, "", order.Served, mustMoney(t, total),
		nil, nil, &servedAt, nil, []*order.OrderItem{item})
	require.NoError(t, err)

	return aggregate
}
