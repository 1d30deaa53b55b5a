package driverrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type DriverRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *driverrepo.GormDriverRepository
	tracker    *MockAggregateTracker
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&driverrepo.DriverDTO{}))
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE drivers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = driverrepo.NewGormDriverRepository(suite.db, suite.tracker)
}

func (suite *DriverRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DriverRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	d := suite.newDriver("Alice", 3.25, 7.5)
	suite.tracker.On("TrackAggregate", d.ID(), d).Once()

	suite.Require().NoError(suite.repository.Add(ctx, d))
	got, err := suite.repository.Get(ctx, d.ID())

	suite.Require().NoError(err)
	suite.Equal("Alice", got.Name())
	suite.Equal(2, got.Speed())
	suite.Equal(d.Location(), got.Location())
	suite.True(got.IsFree())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGet_Missing() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
	suite.Equal("driver", notFound.ParamName)
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_TakeAndReleaseOrder() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	d := suite.newDriver("Bob", 1, 1)
	suite.Require().NoError(suite.repository.Add(ctx, d))

	o := suite.newOrder()
	suite.Require().NoError(d.TakeOrder(o))
	suite.Require().NoError(suite.repository.Update(ctx, d))

	busy, err := suite.repository.GetAllBusy(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(busy, 1)
	suite.True(busy[0].OrderID().IsEqual(o.ID()))

	suite.Require().NoError(d.CompleteOrder(o.ID()))
	suite.Require().NoError(suite.repository.Update(ctx, d))

	free, err := suite.repository.GetAllFree(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(free, 1)
	suite.Nil(free[0].OrderID())
	suite.False(free[0].HasPickedUp())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGetAllFree_RegistrationOrder() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	names := []string{"first", "second", "third"}
	for _, name := range names {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newDriver(name, 5, 5)))
		time.Sleep(2 * time.Millisecond)
	}

	free, err := suite.repository.GetAllFree(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(free, 3)
	for i, name := range names {
		suite.Equal(name, free[i].Name())
	}
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_MissingRow() {
	d := suite.newDriver("Ghost", 1, 1)

	err := suite.repository.Update(context.Background(), d)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *DriverRepositoryIntegrationTestSuite) newDriver(name string, x, y kernel.Coordinate) *driver.Driver {
	loc, err := kernel.NewLocation(x, y)
	suite.Require().NoError(err)
	d, err := driver.NewDriver(kernel.NewUUID(), name, 2, loc)
	suite.Require().NoError(err)
	return d
}

func (suite *DriverRepositoryIntegrationTestSuite) newOrder() *order.Order {
	origin, err := kernel.NewLocation(2, 2)
	suite.Require().NoError(err)
	destination, err := kernel.NewLocation(6, 6)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), origin, destination, 15)
	suite.Require().NoError(err)
	return o
}

func TestDriverRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DriverRepositoryIntegrationTestSuite))
}
