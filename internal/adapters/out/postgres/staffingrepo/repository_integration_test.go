package staffingrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/edwode/flowserve-ops-sub001/internal/adapters/out/postgres/staffingrepo"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/kernel"
	"github.com/edwode/flowserve-ops-sub001/internal/core/domain/model/staffing"
	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type StaffingRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *staffingrepo.GormStaffingRepository

	tenantID kernel.UUID
	eventID  kernel.UUID
}

func (suite *StaffingRepositoryIntegrationTestSuite) SetupSuite() {
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
		&staffingrepo.ZoneDTO{}, &staffingrepo.TableDTO{}, &staffingrepo.AssignmentDTO{},
	)
	suite.Require().NoError(err)

	suite.repo = staffingrepo.NewGormStaffingRepository(db)

	suite.tenantID = kernel.NewUUID()
	suite.eventID = kernel.NewUUID()
}

func (suite *StaffingRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *StaffingRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE zones, tables, zone_role_assignments").Error
	suite.Require().NoError(err)
}

func (suite *StaffingRepositoryIntegrationTestSuite) addZone(name string) kernel.UUID {
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

func (suite *StaffingRepositoryIntegrationTestSuite) addTable(zoneID kernel.UUID, number int) kernel.UUID {
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

func (suite *StaffingRepositoryIntegrationTestSuite) newAssignment(zoneID, userID kernel.UUID, role staffing.Role) *staffing.ZoneRoleAssignment {
	a, err := staffing.NewZoneRoleAssignment(
		kernel.NewUUID(), suite.tenantID, suite.eventID, zoneID, userID, role, time.Now().UTC())
	suite.Require().NoError(err)
	return a
}

func (suite *StaffingRepositoryIntegrationTestSuite) TestAddAssignment_BindsUserToZone() {
	ctx := context.Background()
	zoneID := suite.addZone("main floor")
	userID := kernel.NewUUID()

	err := suite.repo.AddAssignment(ctx, suite.newAssignment(zoneID, userID, staffing.RoleMixologist))
	suite.Require().NoError(err)

	zoneIDs, err := suite.repo.GetZoneIDsForUser(ctx, suite.tenantID, suite.eventID, userID, staffing.RoleMixologist)
	suite.Require().NoError(err)
	suite.Require().Len(zoneIDs, 1)
	suite.True(zoneIDs[0].IsEqual(zoneID))
}

func (suite *StaffingRepositoryIntegrationTestSuite) TestAddAssignment_ReplacesPreviousHolder() {
	ctx := context.Background()
	zoneID := suite.addZone("terrace")
	previous := kernel.NewUUID()
	next := kernel.NewUUID()

	err := suite.repo.AddAssignment(ctx, suite.newAssignment(zoneID, previous, staffing.RoleBarStaff))
	suite.Require().NoError(err)
	err = suite.repo.AddAssignment(ctx, suite.newAssignment(zoneID, next, staffing.RoleBarStaff))
	suite.Require().NoError(err)

	previousZones, err := suite.repo.GetZoneIDsForUser(ctx, suite.tenantID, suite.eventID, previous, staffing.RoleBarStaff)
	suite.Require().NoError(err)
	suite.Empty(previousZones)

	nextZones, err := suite.repo.GetZoneIDsForUser(ctx, suite.tenantID, suite.eventID, next, staffing.RoleBarStaff)
	suite.Require().NoError(err)
	suite.Require().Len(nextZones, 1)
	suite.True(nextZones[0].IsEqual(zoneID))
}

func (suite *StaffingRepositoryIntegrationTestSuite) TestAddAssignment_SameUserSpansZones() {
	ctx := context.Background()
	zoneA := suite.addZone("main floor")
	zoneB := suite.addZone("terrace")
	userID := kernel.NewUUID()

	err := suite.repo.AddAssignment(ctx, suite.newAssignment(zoneA, userID, staffing.RoleMealDispenser))
	suite.Require().NoError(err)
	err = suite.repo.AddAssignment(ctx, suite.newAssignment(zoneB, userID, staffing.RoleMealDispenser))
	suite.Require().NoError(err)

	zoneIDs, err := suite.repo.GetZoneIDsForUser(ctx, suite.tenantID, suite.eventID, userID, staffing.RoleMealDispenser)
	suite.Require().NoError(err)
	suite.Len(zoneIDs, 2)
}

func (suite *StaffingRepositoryIntegrationTestSuite) TestGetZoneIDsForUser_RoleMismatchIsEmpty() {
	ctx := context.Background()
	zoneID := suite.addZone("main floor")
	userID := kernel.NewUUID()

	err := suite.repo.AddAssignment(ctx, suite.newAssignment(zoneID, userID, staffing.RoleDrinkDispenser))
	suite.Require().NoError(err)

	zoneIDs, err := suite.repo.GetZoneIDsForUser(ctx, suite.tenantID, suite.eventID, userID, staffing.RoleMixologist)
	suite.Require().NoError(err)
	suite.Empty(zoneIDs)
}

func (suite *StaffingRepositoryIntegrationTestSuite) TestGetTableIDsInZones() {
	ctx := context.Background()
	zoneA := suite.addZone("main floor")
	zoneB := suite.addZone("terrace")
	tableA := suite.addTable(zoneA, 3)
	suite.addTable(zoneB, 9)

	tableIDs, err := suite.repo.GetTableIDsInZones(ctx, suite.tenantID, []kernel.UUID{zoneA})
	suite.Require().NoError(err)
	suite.Require().Len(tableIDs, 1)
	suite.True(tableIDs[0].IsEqual(tableA))

	empty, err := suite.repo.GetTableIDsInZones(ctx, suite.tenantID, nil)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *StaffingRepositoryIntegrationTestSuite) TestGetZone_ForeignTenantIsNotFound() {
	ctx := context.Background()
	zoneID := suite.addZone("main floor")

	zone, err := suite.repo.GetZone(ctx, suite.tenantID, zoneID)
	suite.Require().NoError(err)
	suite.Equal("main floor", zone.Name())

	_, err = suite.repo.GetZone(ctx, kernel.NewUUID(), zoneID)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StaffingRepositoryIntegrationTestSuite) TestGetTable_RoundTrip() {
	ctx := context.Background()
	zoneID := suite.addZone("main floor")
	tableID := suite.addTable(zoneID, 14)

	table, err := suite.repo.GetTable(ctx, suite.tenantID, tableID)
	suite.Require().NoError(err)
	suite.Equal(14, table.Number())
	suite.True(table.ZoneID().IsEqual(zoneID))

	_, err = suite.repo.GetTable(ctx, suite.tenantID, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestStaffingRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StaffingRepositoryIntegrationTestSuite))
}
