package cmd

import (
	"errors"
	"log/slog"

	"fooddelivery/internal/adapters/in/auth"
	httpapi "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/in/ws"
	"fooddelivery/internal/adapters/out/jwt"
	"fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/catalogrepo"
	"fooddelivery/internal/adapters/out/postgres/notificationrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/redis"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	catalog    *catalogrepo.GormCatalogRepository
	settings   ports.DeliverySettingsProvider
	hub        *ws.Hub
	hooks      *commands.PostCommitHooks
	logger     *slog.Logger
	closers    []func() error
}

// NewCompositionRoot wires the adapters. Redis and Kafka are attached only
// when their addresses are configured.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if gormDB == nil {
		return nil, errors.New("gorm db is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    catalogrepo.NewGormCatalogRepository(gormDB),
		hub:        ws.NewHub(logger),
		logger:     logger,
	}
	c.settings = c.catalog

	if configs.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: configs.RedisAddr})
		cached, err := redis.NewCachedSettingsProvider(client, c.catalog, configs.SettingsCacheTTL, logger)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		c.settings = cached
		c.closers = append(c.closers, client.Close)
	}

	publishers := []ports.OrderEventPublisher{c.hub}
	if brokers := configs.KafkaBrokers(); len(brokers) > 0 {
		writer := kafka.NewWriter(brokers, configs.KafkaOrderChangedTopic)
		publisher, err := kafka.NewOrderEventPublisher(writer)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		publishers = append(publishers, publisher)
		c.closers = append(c.closers, writer.Close)
	}

	inbox, err := notificationrepo.NewGormNotificationInbox(gormDB)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	publishers = append(publishers, inbox)

	c.hooks = commands.NewPostCommitHooks(logger, publishers...)
	return c, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() (commands.CreateOrderCommandHandler, error) {
	assembler, err := services.NewOrderAssembler(c.catalog, services.NewGeoFeeCalculator())
	if err != nil {
		return commands.CreateOrderCommandHandler{}, err
	}
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), assembler, c.settings, c.hooks).
		WithGuestTTL(c.configs.GuestOrderTTL), nil
}

func (c *CompositionRoot) CreateTransitionStatusCommandHandler() commands.TransitionStatusCommandHandler {
	return commands.NewTransitionStatusCommandHandler(c.orderUoWFactory(), c.hooks)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.hooks)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory(), c.hooks)
}

func (c *CompositionRoot) CreateExpireGuestOrdersCommandHandler() commands.ExpireGuestOrdersCommandHandler {
	return commands.NewExpireGuestOrdersCommandHandler(c.orderUoWFactory(), c.hooks)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateTrackGuestOrderQueryHandler() queries.TrackGuestOrderQueryHandler {
	return queries.NewTrackGuestOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetStatusLogsQueryHandler() queries.GetStatusLogsQueryHandler {
	return queries.NewGetStatusLogsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateQuoteDeliveryFeeQueryHandler() queries.QuoteDeliveryFeeQueryHandler {
	return queries.NewQuoteDeliveryFeeQueryHandler(c.catalog, c.settings)
}

func (c *CompositionRoot) CreateAuthenticator() (*auth.Authenticator, error) {
	verifier, err := jwt.NewVerifier(c.configs.JWTSecret)
	if err != nil {
		return nil, err
	}
	return auth.NewAuthenticator(verifier, c.catalog)
}

// CreateHTTPServer assembles the REST surface and the real-time channel.
func (c *CompositionRoot) CreateHTTPServer() (*httpapi.Server, error) {
	authn, err := c.CreateAuthenticator()
	if err != nil {
		return nil, err
	}

	createOrder, err := c.CreateCreateOrderCommandHandler()
	if err != nil {
		return nil, err
	}

	realtime := ws.NewHandler(c.hub, authn, c.configs.WSAllowedOrigins, c.logger)

	server := httpapi.NewServer(httpapi.Handlers{
		CreateOrder:      createOrder,
		TransitionStatus: c.CreateTransitionStatusCommandHandler(),
		CancelOrder:      c.CreateCancelOrderCommandHandler(),
		ConfirmPayment:   c.CreateConfirmPaymentCommandHandler(),
		GetOrder:         c.CreateGetOrderQueryHandler(),
		TrackGuestOrder:  c.CreateTrackGuestOrderQueryHandler(),
		GetStatusLogs:    c.CreateGetStatusLogsQueryHandler(),
		QuoteDeliveryFee: c.CreateQuoteDeliveryFeeQueryHandler(),
	}, authn, realtime, c.logger)

	if c.configs.PaymentBaseURL != "" {
		server.WithQRGenerator(httpapi.DefaultQRGenerator{BaseURL: c.configs.PaymentBaseURL})
	}

	return server, nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	expiry := jobs.NewGuestOrderExpiryJob(
		c.CreateExpireGuestOrdersCommandHandler(),
		c.configs.GuestExpirySchedule,
		c.configs.GuestExpiryBatchSize,
		c.logger,
	)
	return jobs.NewJobManager().Add("guest order expiry", expiry)
}

// Close disconnects the observers and releases the optional clients.
func (c *CompositionRoot) Close() error {
	c.hub.Close()

	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
