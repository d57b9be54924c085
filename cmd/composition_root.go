package cmd

import (
	"log/slog"
	"time"

	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/notify"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/idemrepo"
	"orderflow/internal/core/application/idempotency"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB             *gorm.DB
	uowFactory         postgres.GormUnitOfWorkFactory
	machine            services.Machine
	idempotencyService *idempotency.Service
	logger             *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var opts []idempotency.Option
	if ttl, err := time.ParseDuration(config.IdempotencyTTL); err == nil {
		opts = append(opts, idempotency.WithTTL(ttl))
	}

	return CompositionRoot{
		gormDB:             gormDB,
		uowFactory:         *postgres.NewGormUnitOfWorkFactory(gormDB),
		machine:            services.NewDefaultMachine(),
		idempotencyService: idempotency.NewService(idemrepo.NewGormIdempotencyStore(gormDB), opts...),
		logger:             logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddOrderItemCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterPaymentCommandHandler() commands.RegisterPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkItemsReadyCommandHandler() commands.MarkItemsReadyCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkItemsReadyCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(
		f,
		c.machine,
		notify.NewLogKitchenNotifier(c.logger),
		notify.NewLogPaymentPoster(c.logger),
		notify.NewLogInventoryConsumer(c.logger),
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllowedTransitionsQueryHandler() queries.GetAllowedTransitionsQueryHandler {
	return queries.NewGetAllowedTransitionsQueryHandler(c.gormDB, c.machine)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAddOrderItemCommandHandler(),
		c.CreateRegisterPaymentCommandHandler(),
		c.CreateMarkItemsReadyCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetAllowedTransitionsQueryHandler(),
	)
}

func (c *CompositionRoot) CreateIdempotencyMiddleware() *httpin.IdempotencyMiddleware {
	return httpin.NewIdempotencyMiddleware(c.idempotencyService, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.idempotencyService, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
