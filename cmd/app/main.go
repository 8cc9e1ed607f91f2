package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/edwode/flowserve-ops-sub001/cmd"
	httpin "github.com/edwode/flowserve-ops-sub001/internal/adapters/in/http"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/in/ws"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/catalogrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/inventoryrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/paymentrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/returnrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/staffingrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/rabbitmq"
	"github.com/edwode/flowserve-ops-sub001/internal/jobs"
)

func main() {
	configs := getConfigs()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	hub := ws.NewHub(logger)
	go hub.Run()

	rabbitClient, err := rabbitmq.NewClient(configs.RabbitMQURL)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	defer rabbitClient.Close()

	feedPublisher, err := rabbitmq.NewChangeFeedPublisher(rabbitClient, configs.ChangeFeedExchange, logger)
	if err != nil {
		log.Fatalf("Error declaring change feed exchange: %v", err)
	}

	publisher := cmd.NewFanOutPublisher(feedPublisher, hub)

	jobManager := jobs.NewJobManager(gormDB, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	app := cmd.NewCompositionRoot(configs, gormDB, publisher)
	startWebServer(&app, configs, gormDB, hub)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		RabbitMQURL:        goDotEnvVariable("RABBITMQ_URL"),
		ChangeFeedExchange: goDotEnvVariable("CHANGE_FEED_EXCHANGE"),
		JWTSecret:          goDotEnvVariable("JWT_SECRET"),
	}
	if config.ChangeFeedExchange == "" {
		config.ChangeFeedExchange = rabbitmq.DefaultExchange
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{},
		&paymentrepo.PaymentDTO{}, &returnrepo.ReturnDTO{},
		&inventoryrepo.AllocationDTO{}, &inventoryrepo.TransferDTO{},
		&staffingrepo.ZoneDTO{}, &staffingrepo.TableDTO{}, &staffingrepo.AssignmentDTO{},
		&catalogrepo.MenuItemDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config, gormDB *gorm.DB, hub *ws.Hub) {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:         app.CreateCreateOrderCommandHandler(),
		CreateWalkUpSale:    app.CreateCreateWalkUpSaleCommandHandler(),
		DispatchOrder:       app.CreateDispatchOrderCommandHandler(),
		MarkItemReady:       app.CreateMarkItemReadyCommandHandler(),
		RejectItem:          app.CreateRejectItemCommandHandler(),
		MarkOrderServed:     app.CreateMarkOrderServedCommandHandler(),
		MarkMenuUnavailable: app.CreateMarkMenuItemUnavailableCommandHandler(),

		RecordPayment:          app.CreateRecordPaymentCommandHandler(),
		RecordSplitPayment:     app.CreateRecordSplitPaymentCommandHandler(),
		RecordItemSplitPayment: app.CreateRecordItemSplitPaymentCommandHandler(),
		ConfirmOrderPaid:       app.CreateConfirmOrderPaidCommandHandler(),

		ReportReturn:  app.CreateReportReturnCommandHandler(),
		ApproveRefund: app.CreateApproveRefundCommandHandler(),
		ConfirmReturn: app.CreateConfirmReturnCommandHandler(),

		AssignZoneRole:    app.CreateAssignZoneRoleCommandHandler(),
		AllocateInventory: app.CreateAllocateInventoryCommandHandler(),
		TransferInventory: app.CreateTransferInventoryCommandHandler(),

		StationQueue: app.CreateGetStationQueueQueryHandler(),
		OrderBalance: app.CreateGetOrderBalanceQueryHandler(),
		OpenOrders:   app.CreateGetOpenOrdersQueryHandler(),
	}, hub)

	e := echo.New()
	server.RegisterRoutes(e, configs.JWTSecret, postgres.NewGormCallerResolver(gormDB))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
