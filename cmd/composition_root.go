package cmd

import (
	"log/slog"
	"time"

	orderhttp "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/notify"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/application/notifications"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/jobs"
	"orders/internal/pkg/jwtauth"
	"orders/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived dependencies of the process and builds
// handlers on demand.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	metrics    *metrics.Metrics
	clock      commands.Clock

	kafka           *notify.KafkaChannel
	notificationJob *jobs.NotificationJob
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		metrics:    metrics.New(),
		clock:      time.Now,
		kafka:      notify.NewKafkaChannel(cfg.KafkaBrokers, logger),
	}

	c.notificationJob = jobs.NewNotificationJob(
		c.CreateNotificationDispatcher(),
		cfg.NotificationQueueSize,
		c.metrics,
		logger,
	)

	return c
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.notificationJob, c.clock, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.notificationJob, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(orderrepo.NewGormOrderFinder(c.gormDB))
}

func (c *CompositionRoot) CreateSearchOrdersQueryHandler() queries.SearchOrdersQueryHandler {
	return queries.NewSearchOrdersQueryHandler(orderrepo.NewGormOrderFinder(c.gormDB))
}

// CreateNotificationDispatcher wires every known channel. Only the channels
// listed in NOTIFICATION_TYPES are used. Network channels sit behind a
// circuit breaker.
func (c *CompositionRoot) CreateNotificationDispatcher() *notifications.Dispatcher {
	email := notify.NewEmailChannel(notify.SMTPConfig{
		Host:     c.cfg.SMTPHost,
		Port:     c.cfg.SMTPPort,
		Username: c.cfg.SMTPUser,
		Password: c.cfg.SMTPPassword,
		From:     c.cfg.SMTPFrom,
		Timeout:  c.cfg.SMTPTimeout,
	}, c.logger)

	channels := []notifications.Channel{
		notify.NewBreakerChannel(email, notify.DefaultBreakerSettings, c.logger),
		notify.NewSMSChannel(c.logger),
		notify.NewBreakerChannel(c.kafka, notify.DefaultBreakerSettings, c.logger),
	}

	cfg := notifications.Config{
		Types: c.cfg.NotificationTypes,
		Recipients: map[string][]string{
			notify.EmailChannelName: c.cfg.NotificationEmails,
			notify.SMSChannelName:   c.cfg.NotificationPhones,
			notify.KafkaChannelName: c.cfg.NotificationTopics,
		},
	}

	return notifications.NewDispatcher(cfg, channels, c.logger, c.metrics)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	monitor := jobs.NewQueueMonitorJob(
		c.notificationJob,
		c.cfg.NotificationMonitorSchedule,
		c.metrics,
		c.logger,
	)
	return jobs.NewJobManager(c.logger, c.notificationJob, monitor)
}

// CreateRouter builds the HTTP API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	issuer, err := jwtauth.NewIssuer(c.cfg.JWTSecret, c.cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	server := orderhttp.NewServer(orderhttp.Handlers{
		CreateOrder:  c.CreateCreateOrderCommandHandler(),
		UpdateStatus: c.CreateUpdateOrderStatusCommandHandler(),
		GetOrder:     c.CreateGetOrderQueryHandler(),
		SearchOrders: c.CreateSearchOrdersQueryHandler(),
	}, c.metrics, time.Local, c.logger)

	user := jwtauth.StaticUser{Username: c.cfg.AuthUsername, Password: c.cfg.AuthPassword}

	return orderhttp.NewRouter(orderhttp.RouterConfig{
		Server:         server,
		Auth:           orderhttp.NewAuthHandler(user, issuer, c.logger),
		Tokens:         issuer,
		Users:          user,
		Recorder:       c.metrics,
		MetricsHandler: c.metrics.Handler(),
	}), nil
}

// Close releases outbound connections. Call it after the job manager stopped.
func (c *CompositionRoot) Close() error {
	return c.kafka.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
