package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"canteen/internal/adapters/out/postgres"
	"canteen/internal/adapters/out/redisbus"
	"canteen/internal/core/application/usecases/commands"
	"canteen/internal/core/application/usecases/queries"
	"canteen/internal/core/domain/model/menu"
	"canteen/internal/core/domain/services"
	"canteen/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	pricing    services.PricingService
	policy     services.RolePolicy
	publisher  ports.StatusChangePublisher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	catalog, err := loadCatalog(config.MenuPath)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("load menu catalog: %w", err)
	}

	pricing, err := services.NewPricingService(catalog)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create pricing service: %w", err)
	}

	var publisher ports.StatusChangePublisher
	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		publisher, err = redisbus.NewStatusChangePublisher(client, config.RedisChannel)
		if err != nil {
			return CompositionRoot{}, fmt.Errorf("create status change publisher: %w", err)
		}
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		pricing:    pricing,
		policy:     services.NewRolePolicy(),
		publisher:  publisher,
		logger:     logger,
	}, nil
}

// loadCatalog reads the menu from disk, falling back to the built-in
// catalog when no path is configured.
func loadCatalog(path string) (*menu.Catalog, error) {
	if path == "" {
		return menu.Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return menu.FromJSON(data)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.pricing)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.policy, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSweepFailedPaymentsCommandHandler() commands.SweepFailedPaymentsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepFailedPaymentsCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderBoardQueryHandler() queries.GetOrderBoardQueryHandler {
	return queries.NewGetOrderBoardQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
