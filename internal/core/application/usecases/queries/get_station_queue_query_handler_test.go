package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/staffingrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/core/application/usecases/queries"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockStatusJournal struct{}

func (m *mockStatusJournal) RecordItemStatus(_ uuid.UUID, _ int) {
	// No-op for query tests
}

func (m *mockStatusJournal) LoadedItemStatus(_ uuid.UUID) (int, bool) {
	return 0, false
}

type GetStationQueueQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetStationQueueQueryHandler
	orderRepo *orderrepo.GormOrderRepository

	tenantID kernel.UUID
	eventID  kernel.UUID
	zoneA    kernel.UUID
	zoneB    kernel.UUID
	tableA   kernel.UUID
	tableB   kernel.UUID
}

func (suite *GetStationQueueQueryHandlerTestSuite) SetupSuite() {
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
		&staffingrepo.ZoneDTO{}, &staffingrepo.TableDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetStationQueueQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockStatusJournal{})

	suite.tenantID = kernel.NewUUID()
	suite.eventID = kernel.NewUUID()
	suite.zoneA = suite.addZone("main floor")
	suite.zoneB = suite.addZone("terrace")
	suite.tableA = suite.addTable(suite.zoneA, 12)
	suite.tableB = suite.addTable(suite.zoneB, 41)
}

func (suite *GetStationQueueQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetStationQueueQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetStationQueueQueryHandlerTestSuite) addZone(name string) kernel.UUID {
	id := kernel.NewUUID()
	err := suite.db.Create(&staffingrepo.ZoneDTO{
		ID:       id.Bytes(),
		TenantID: suite.tenantID.Bytes(),
		EventID:  suite.eventID.Bytes(),
		Name:     name,
	}).Error
	suite.Require().NoError(err)
	return id
}

func (suite *GetStationQueueQueryHandlerTestSuite) addTable(zoneID kernel.UUID, number int) kernel.UUID {
	id := kernel.NewUUID()
	err := suite.db.Create(&staffingrepo.TableDTO{
		ID:       id.Bytes(),
		TenantID: suite.tenantID.Bytes(),
		EventID:  suite.eventID.Bytes(),
		ZoneID:   zoneID.Bytes(),
		Number:   number,
	}).Error
	suite.Require().NoError(err)
	return id
}

func (suite *GetStationQueueQueryHandlerTestSuite) restoredItem(
	station order.StationType,
	status order.ItemStatus,
	dispatchedAt *time.Time,
	notes string,
) *order.OrderItem {
	price, err := kernel.MoneyFromString("4.50")
	suite.Require().NoError(err)

	item, err := order.RestoreOrderItem(
		kernel.NewUUID(), kernel.NewUUID(), station, 2, price,
		status, dispatchedAt, nil, nil, notes)
	suite.Require().NoError(err)
	return item
}

func (suite *GetStationQueueQueryHandlerTestSuite) addRestoredOrder(
	tenantID kernel.UUID,
	tableID *kernel.UUID,
	guestName string,
	items ...*order.OrderItem,
) *order.Order {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}

	restored, err := order.RestoreOrder(
		kernel.NewUUID(), tenantID, suite.eventID, kernel.NewUUID(),
		tableID, guestName, order.Dispatched, total,
		nil, nil, nil, nil, items)
	suite.Require().NoError(err)

	err = suite.orderRepo.Add(context.Background(), restored)
	suite.Require().NoError(err)
	return restored
}

func (suite *GetStationQueueQueryHandlerTestSuite) stationCaller(
	role staffing.Role, zoneIDs ...kernel.UUID,
) staffing.Caller {
	caller, err := staffing.NewCaller(kernel.NewUUID(), suite.tenantID, role, zoneIDs)
	suite.Require().NoError(err)
	return caller
}

func (suite *GetStationQueueQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	caller := suite.stationCaller(staffing.RoleMealDispenser, suite.zoneA)
	query, err := queries.NewGetStationQueueQuery(caller, suite.eventID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetStationQueueQueryHandlerTestSuite) TestHandle_FiltersByStationAndZone() {
	now := time.Now().UTC().Truncate(time.Second)
	mealA := suite.restoredItem(order.StationMealDispenser, order.ItemDispatched, &now, "no onions")
	drinkA := suite.restoredItem(order.StationDrinkDispenser, order.ItemDispatched, &now, "")
	suite.addRestoredOrder(suite.tenantID, &suite.tableA, "Alice", mealA, drinkA)

	mealB := suite.restoredItem(order.StationMealDispenser, order.ItemDispatched, &now, "")
	suite.addRestoredOrder(suite.tenantID, &suite.tableB, "Bob", mealB)

	caller := suite.stationCaller(staffing.RoleMealDispenser, suite.zoneA)
	query, err := queries.NewGetStationQueueQuery(caller, suite.eventID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(mealA.ID(), result[0].ItemID)
	suite.Equal("dispatched", result[0].Status)
	suite.Equal("no onions", result[0].Notes)
	suite.Equal(12, result[0].TableNumber)
	suite.Equal("Alice", result[0].GuestName)
}

func (suite *GetStationQueueQueryHandlerTestSuite) TestHandle_ExcludesFinishedItems() {
	now := time.Now().UTC().Truncate(time.Second)
	pending := suite.restoredItem(order.StationBar, order.ItemPending, nil, "")
	ready := suite.restoredItem(order.StationBar, order.ItemReady, &now, "")
	rejected := suite.restoredItem(order.StationBar, order.ItemRejected, &now, "")
	suite.addRestoredOrder(suite.tenantID, &suite.tableA, "Carol", pending, ready, rejected)

	caller := suite.stationCaller(staffing.RoleBarStaff, suite.zoneA)
	query, err := queries.NewGetStationQueueQuery(caller, suite.eventID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(pending.ID(), result[0].ItemID)
	suite.Equal("pending", result[0].Status)
}

func (suite *GetStationQueueQueryHandlerTestSuite) TestHandle_OrdersByDispatchTime() {
	early := time.Now().UTC().Add(-10 * time.Minute).Truncate(time.Second)
	late := time.Now().UTC().Truncate(time.Second)

	second := suite.restoredItem(order.StationMixologist, order.ItemDispatched, &late, "")
	first := suite.restoredItem(order.StationMixologist, order.ItemDispatched, &early, "")
	suite.addRestoredOrder(suite.tenantID, &suite.tableA, "Dave", second, first)

	caller := suite.stationCaller(staffing.RoleMixologist, suite.zoneA)
	query, err := queries.NewGetStationQueueQuery(caller, suite.eventID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(first.ID(), result[0].ItemID)
	suite.Equal(second.ID(), result[1].ItemID)
}

func (suite *GetStationQueueQueryHandlerTestSuite) TestHandle_NoZoneBinding_ReturnsEmpty() {
	now := time.Now().UTC().Truncate(time.Second)
	meal := suite.restoredItem(order.StationMealDispenser, order.ItemDispatched, &now, "")
	suite.addRestoredOrder(suite.tenantID, &suite.tableA, "Erin", meal)

	caller := suite.stationCaller(staffing.RoleMealDispenser)
	query, err := queries.NewGetStationQueueQuery(caller, suite.eventID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetStationQueueQueryHandlerTestSuite) TestHandle_WalkUpOrdersNeverRouted() {
	now := time.Now().UTC().Truncate(time.Second)
	meal := suite.restoredItem(order.StationMealDispenser, order.ItemDispatched, &now, "")
	suite.addRestoredOrder(suite.tenantID, nil, "Walk-up", meal)

	caller := suite.stationCaller(staffing.RoleMealDispenser, suite.zoneA)
	query, err := queries.NewGetStationQueueQuery(caller, suite.eventID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetStationQueueQueryHandlerTestSuite) TestHandle_OtherTenantInvisible() {
	now := time.Now().UTC().Truncate(time.Second)
	meal := suite.restoredItem(order.StationMealDispenser, order.ItemDispatched, &now, "")
	suite.addRestoredOrder(kernel.NewUUID(), &suite.tableA, "Foreign", meal)

	caller := suite.stationCaller(staffing.RoleMealDispenser, suite.zoneA)
	query, err := queries.NewGetStationQueueQuery(caller, suite.eventID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetStationQueueQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetStationQueueQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetStationQueueQuery constructor")
}

func TestGetStationQueueQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetStationQueueQueryHandlerTestSuite))
}
