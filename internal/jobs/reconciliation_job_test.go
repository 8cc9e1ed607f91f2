package jobs_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/inventoryrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/paymentrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/returnrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
	"github.com/edwode/flowserve-ops-sub001/internal/jobs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ReconciliationJobTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	logs      *observer.ObservedLogs
	job       *jobs.ReconciliationJob

	tenantID kernel.UUID
	eventID  kernel.UUID
}

func (suite *ReconciliationJobTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{},
		&paymentrepo.PaymentDTO{}, &returnrepo.ReturnDTO{},
		&inventoryrepo.AllocationDTO{}, &inventoryrepo.TransferDTO{},
	)
	suite.Require().NoError(err)

	suite.tenantID = kernel.NewUUID()
	suite.eventID = kernel.NewUUID()
}

func (suite *ReconciliationJobTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ReconciliationJobTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, payments, order_returns, zone_allocations, inventory_transfers CASCADE").Error
	suite.Require().NoError(err)

	core, logs := observer.New(zap.WarnLevel)
	suite.logs = logs
	suite.job = jobs.NewReconciliationJob(suite.db, zap.New(core))
}

func (suite *ReconciliationJobTestSuite) seedOrder(status order.Status, total string) kernel.UUID {
	orderID := kernel.NewUUID()
	err := suite.db.Create(&orderrepo.OrderDTO{
		ID:          orderID.Bytes(),
		TenantID:    suite.tenantID.Bytes(),
		EventID:     suite.eventID.Bytes(),
		WaiterID:    kernel.NewUUID().Bytes(),
		GuestName:   "guest",
		Status:      int(status),
		TotalAmount: decimal.RequireFromString(total),
	}).Error
	suite.Require().NoError(err)
	return orderID
}

func (suite *ReconciliationJobTestSuite) seedItem(orderID kernel.UUID, status order.ItemStatus, price string, quantity int) {
	err := suite.db.Create(&orderrepo.OrderItemDTO{
		ID:          kernel.NewUUID().Bytes(),
		OrderID:     orderID.Bytes(),
		MenuItemID:  kernel.NewUUID().Bytes(),
		StationType: "bar",
		Quantity:    quantity,
		Price:       decimal.RequireFromString(price),
		Status:      int(status),
	}).Error
	suite.Require().NoError(err)
}

func (suite *ReconciliationJobTestSuite) seedPayment(orderID kernel.UUID, amount string, sessionID *kernel.UUID) {
	dto := paymentrepo.PaymentDTO{
		ID:          kernel.NewUUID().Bytes(),
		TenantID:    suite.tenantID.Bytes(),
		OrderID:     orderID.Bytes(),
		Amount:      decimal.RequireFromString(amount),
		Method:      "cash",
		ConfirmedBy: kernel.NewUUID().Bytes(),
		RecordedAt:  time.Now().UTC(),
	}
	if sessionID != nil {
		raw := sessionID.Bytes()
		dto.SplitSessionID = &raw
	}
	err := suite.db.Create(&dto).Error
	suite.Require().NoError(err)
}

func (suite *ReconciliationJobTestSuite) storedTotal(orderID kernel.UUID) decimal.Decimal {
	var total decimal.Decimal
	err := suite.db.Raw(`SELECT total_amount FROM orders WHERE id = ?`, orderID.Bytes()).
		Scan(&total).Error
	suite.Require().NoError(err)
	return total
}

func (suite *ReconciliationJobTestSuite) alertCount(contains string) int {
	count := 0
	for _, entry := range suite.logs.All() {
		if entry.Level >= zap.ErrorLevel && strings.Contains(entry.Message, contains) {
			count++
		}
	}
	return count
}

func (suite *ReconciliationJobTestSuite) TestRun_RepairsStaleOpenOrderTotal() {
	orderID := suite.seedOrder(order.Served, "20.00")
	suite.seedItem(orderID, order.ItemServed, "4.50", 2)
	suite.seedItem(orderID, order.ItemReturned, "11.00", 1)

	suite.job.Run(context.Background())

	suite.True(suite.storedTotal(orderID).Equal(decimal.RequireFromString("9.00")))
}

func (suite *ReconciliationJobTestSuite) TestRun_LeavesConsistentOrdersAlone() {
	orderID := suite.seedOrder(order.Served, "9.00")
	suite.seedItem(orderID, order.ItemServed, "4.50", 2)

	suite.job.Run(context.Background())

	suite.True(suite.storedTotal(orderID).Equal(decimal.RequireFromString("9.00")))
	suite.Zero(suite.logs.Len())
}

func (suite *ReconciliationJobTestSuite) TestRun_NeverRepairsSettledOrders() {
	orderID := suite.seedOrder(order.Paid, "20.00")
	suite.seedItem(orderID, order.ItemPaid, "4.50", 2)
	suite.seedPayment(orderID, "20.00", nil)

	suite.job.Run(context.Background())

	suite.True(suite.storedTotal(orderID).Equal(decimal.RequireFromString("20.00")))
}

func (suite *ReconciliationJobTestSuite) TestRun_AlertsUnderpaidSettledOrder() {
	orderID := suite.seedOrder(order.Paid, "20.00")
	suite.seedItem(orderID, order.ItemPaid, "10.00", 2)
	suite.seedPayment(orderID, "12.00", nil)

	suite.job.Run(context.Background())

	suite.Equal(1, suite.alertCount("settled order is underpaid"))
}

func (suite *ReconciliationJobTestSuite) TestRun_AlertsCrossOrderSplitSession() {
	first := suite.seedOrder(order.Served, "10.00")
	second := suite.seedOrder(order.Served, "10.00")
	sessionID := kernel.NewUUID()
	suite.seedPayment(first, "5.00", &sessionID)
	suite.seedPayment(second, "5.00", &sessionID)

	suite.job.Run(context.Background())

	suite.Equal(1, suite.alertCount("split session spans multiple orders"))
}

func (suite *ReconciliationJobTestSuite) TestRun_AlertsNegativeAllocation() {
	err := suite.db.Create(&inventoryrepo.AllocationDTO{
		ID:         kernel.NewUUID().Bytes(),
		TenantID:   suite.tenantID.Bytes(),
		MenuItemID: kernel.NewUUID().Bytes(),
		ZoneID:     kernel.NewUUID().Bytes(),
		Quantity:   -3,
	}).Error
	suite.Require().NoError(err)

	suite.job.Run(context.Background())

	suite.Equal(1, suite.alertCount("negative zone allocation"))
}

func (suite *ReconciliationJobTestSuite) seedAllocation(menuItemID, zoneID kernel.UUID, quantity int) {
	err := suite.db.Create(&inventoryrepo.AllocationDTO{
		ID:         kernel.NewUUID().Bytes(),
		TenantID:   suite.tenantID.Bytes(),
		MenuItemID: menuItemID.Bytes(),
		ZoneID:     zoneID.Bytes(),
		Quantity:   quantity,
	}).Error
	suite.Require().NoError(err)
}

func (suite *ReconciliationJobTestSuite) seedTransfer(menuItemID, fromZoneID, toZoneID kernel.UUID) {
	err := suite.db.Create(&inventoryrepo.TransferDTO{
		ID:         kernel.NewUUID().Bytes(),
		TenantID:   suite.tenantID.Bytes(),
		MenuItemID: menuItemID.Bytes(),
		FromZoneID: fromZoneID.Bytes(),
		ToZoneID:   toZoneID.Bytes(),
		Quantity:   3,
		Reason:     "restock",
		MovedBy:    kernel.NewUUID().Bytes(),
		MovedAt:    time.Now().UTC(),
	}).Error
	suite.Require().NoError(err)
}

func (suite *ReconciliationJobTestSuite) TestRun_AlertsTransferWithoutAllocationRow() {
	menuItemID := kernel.NewUUID()
	fromZone := kernel.NewUUID()
	toZone := kernel.NewUUID()
	suite.seedAllocation(menuItemID, fromZone, 0)
	suite.seedTransfer(menuItemID, fromZone, toZone)

	suite.job.Run(context.Background())

	suite.Equal(1, suite.alertCount("transfer references zone without allocation"))
}

func (suite *ReconciliationJobTestSuite) TestRun_IgnoresTransferWithBothAllocationRows() {
	menuItemID := kernel.NewUUID()
	fromZone := kernel.NewUUID()
	toZone := kernel.NewUUID()
	suite.seedAllocation(menuItemID, fromZone, 0)
	suite.seedAllocation(menuItemID, toZone, 3)
	suite.seedTransfer(menuItemID, fromZone, toZone)

	suite.job.Run(context.Background())

	suite.Zero(suite.alertCount("transfer references zone without allocation"))
}

func TestReconciliationJobTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationJobTestSuite))
}
