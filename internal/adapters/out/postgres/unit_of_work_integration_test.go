package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/order"
	"github.com/edwode/flowserve-ops-sub001/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory

	tenantID kernel.UUID
	eventID  kernel.UUID
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)

	suite.tenantID = kernel.NewUUID()
	suite.eventID = kernel.NewUUID()
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	price, err := kernel.MoneyFromString("7.50")
	suite.Require().NoError(err)

	item, err := order.NewOrderItem(
		kernel.NewUUID(), kernel.NewUUID(), order.StationMealDispenser, 1, price, "")
	suite.Require().NoError(err)

	tableID := kernel.NewUUID()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), suite.tenantID, suite.eventID, kernel.NewUUID(),
		&tableID, "Dana", []*order.OrderItem{item}, time.Now().UTC())
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIndependentInstances() {
	first := suite.factory.Create()
	second := suite.factory.Create()

	suite.NotNil(first)
	suite.NotNil(second)
	suite.NotSame(first, second)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAndDrainsEvents() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	aggregate := suite.newOrder()
	err = uow.OrderRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)
	uow.Track(aggregate)

	suite.Empty(uow.PullCommittedEvents())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	events := uow.PullCommittedEvents()
	suite.Require().Len(events, 1)
	suite.Equal("order.created", events[0].EventName())

	reader := suite.factory.Create()
	loaded, err := reader.OrderRepository().Get(ctx, suite.tenantID, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(aggregate.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndEvents() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	aggregate := suite.newOrder()
	err = uow.OrderRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)
	uow.Track(aggregate)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	suite.Empty(uow.PullCommittedEvents())

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, suite.tenantID, aggregate.ID())
	suite.Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_AfterCommitIsNoOp() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	aggregate := suite.newOrder()
	err = uow.OrderRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// The deferred rollback in command handlers must not undo the commit.
	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, suite.tenantID, aggregate.ID())
	suite.NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_SecondCallIsNoOp() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
