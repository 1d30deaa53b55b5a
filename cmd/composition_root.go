package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/domain/services/matching"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	dispatcher *services.BatchDispatcher
	generator  *services.InstanceGenerator
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	engine := matching.NewEngine(matching.EuclideanCost{}, configs.MatchingOptions())

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: services.NewBatchDispatcher(engine),
		generator:  services.NewInstanceGenerator(configs.GeneratorSeed),
		metrics:    metrics.New(),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDriverCommandHandler(f, c.generator)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.generator)
}

func (c *CompositionRoot) CreateRunMatchingCommandHandler() commands.RunMatchingCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRunMatchingCommandHandler(f, c.dispatcher, c.metrics)
}

func (c *CompositionRoot) CreateMoveDriversCommandHandler() commands.MoveDriversCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewMoveDriversCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAllDriversQueryHandler() queries.GetAllDriversQueryHandler {
	return queries.NewGetAllDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMatchingRunQueryHandler() queries.GetMatchingRunQueryHandler {
	return queries.NewGetMatchingRunQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	runMatching := c.CreateRunMatchingCommandHandler()
	moveDrivers := c.CreateMoveDriversCommandHandler()

	return jobs.NewJobManager(runMatching, &moveDrivers, jobs.Schedules{
		Matching:  c.configs.MatchingSchedule,
		Movement:  c.configs.MovementSchedule,
		MaxOrders: c.configs.MatchingMaxOrders,
	}, c.logger)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	createDriver := c.CreateCreateDriverCommandHandler()
	createOrder := c.CreateCreateOrderCommandHandler()

	server := httpin.NewServer(httpin.Handlers{
		CreateDriver:         &createDriver,
		CreateOrder:          &createOrder,
		RunMatching:          c.CreateRunMatchingCommandHandler(),
		GetAllDrivers:        c.CreateGetAllDriversQueryHandler(),
		GetUncompletedOrders: c.CreateGetUncompletedOrdersQueryHandler(),
		GetMatchingRun:       c.CreateGetMatchingRunQueryHandler(),
	}, c.logger)

	return httpin.NewRouter(server, httpin.Observability{
		Metrics:  c.metrics.Handler(),
		Observer: c.metrics,
	}, c.logger)
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
