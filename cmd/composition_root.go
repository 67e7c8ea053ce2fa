package cmd

import (
	"context"
	"fmt"

	httpin "otcdesk/internal/adapters/in/http"
	"otcdesk/internal/adapters/out/chainlink"
	"otcdesk/internal/adapters/out/metrics"
	"otcdesk/internal/adapters/out/postgres"
	"otcdesk/internal/adapters/out/pricing"
	"otcdesk/internal/adapters/out/wshub"
	"otcdesk/internal/core/application/usecases/commands"
	"otcdesk/internal/core/application/usecases/queries"
	"otcdesk/internal/core/domain/services"
	"otcdesk/internal/core/ports"
	"otcdesk/internal/jobs"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *zap.Logger

	registry *prometheus.Registry
	metrics  *metrics.Metrics
	hub      *wshub.Hub
	prices   *pricing.Cache
	rpc      *ethclient.Client
}

// NewCompositionRoot builds the long-lived adapters. The oracle client is
// only dialed when RPC_URL is set; without it prices come from the fallback
// table.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		registry:   registry,
		metrics:    metrics.New(registry),
		hub:        wshub.NewHub(config.CORSAllowedOrigins, logger),
	}

	var feed ports.PriceFeed
	if config.RPCURL != "" {
		client, err := ethclient.DialContext(ctx, config.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("dial rpc: %w", err)
		}
		chainlinkFeed, err := chainlink.NewFeed(client, config.PriceFeeds)
		if err != nil {
			client.Close()
			return nil, err
		}
		c.rpc = client
		feed = chainlinkFeed
	} else {
		logger.Warn("RPC_URL is not set, serving fallback prices")
	}
	c.prices = pricing.NewCache(feed, logger, pricing.WithTTL(config.PriceCacheTTL))

	return c, nil
}

// Close releases the oracle connection.
func (c *CompositionRoot) Close() {
	if c.rpc != nil {
		c.rpc.Close()
	}
}

func (c *CompositionRoot) Hub() *wshub.Hub {
	return c.hub
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.prices, c.config.PriceRefreshSchedule, c.logger)
}

func (c *CompositionRoot) CreateConnectWalletCommandHandler() commands.ConnectWalletCommandHandler {
	return commands.NewConnectWalletCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(
		c.orderUoWFactory(),
		services.NewOrderTransitionAuthority(),
		c.hub,
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateUserCommandHandler() commands.UpdateUserCommandHandler {
	return commands.NewUpdateUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateUpdateFeeConfigCommandHandler() commands.UpdateFeeConfigCommandHandler {
	return commands.NewUpdateFeeConfigCommandHandler(c.feeUoWFactory())
}

// CreateHTTPHandlers wires every use case the HTTP server dispatches to.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		ConnectWallet:   c.CreateConnectWalletCommandHandler(),
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		UpdateOrder:     c.CreateUpdateOrderCommandHandler(),
		UpdateUser:      c.CreateUpdateUserCommandHandler(),
		UpdateFeeConfig: c.CreateUpdateFeeConfigCommandHandler(),

		GetUser:         queries.NewGetUserQueryHandler(c.gormDB),
		GetOrder:        queries.NewGetOrderQueryHandler(c.gormDB),
		ListOrders:      queries.NewListOrdersQueryHandler(c.gormDB),
		ListOrderEvents: queries.NewListOrderEventsQueryHandler(c.gormDB),
		ListUsers:       queries.NewListUsersQueryHandler(c.gormDB),
		GetFeeConfigs:   queries.NewGetFeeConfigsQueryHandler(c.gormDB),
		GetPrices:       queries.NewGetPricesQueryHandler(c.prices),
	}
}

func (c *CompositionRoot) CreateServer() (*httpin.Server, error) {
	sessions, err := httpin.NewSessionManager(c.config.JWTSecret, c.config.SessionTTL)
	if err != nil {
		return nil, err
	}
	return httpin.NewServer(c.CreateHTTPHandlers(), sessions, c.config.SecureCookie, c.logger), nil
}

// RouterConfig mounts metrics and the order feed next to the API.
func (c *CompositionRoot) RouterConfig() httpin.RouterConfig {
	return httpin.RouterConfig{
		AllowedOrigins: c.config.CORSAllowedOrigins,
		Gatherer:       c.registry,
		Observer:       c.metrics,
		OrderFeed:      c.hub,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) feeUoWFactory() commands.FeeUoWFactory {
	return FuncFeeUoWFactory(func() commands.FeeUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncFeeUoWFactory func() commands.FeeUoW

func (f FuncFeeUoWFactory) Create() commands.FeeUoW {
	return f()
}
