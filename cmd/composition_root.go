package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpapi "orchestrator/internal/adapters/in/http"
	"orchestrator/internal/adapters/out/kafka"
	memoryorderrepo "orchestrator/internal/adapters/out/memory/orderrepo"
	"orchestrator/internal/adapters/out/postgres"
	pgorderrepo "orchestrator/internal/adapters/out/postgres/orderrepo"
	"orchestrator/internal/adapters/out/publisher"
	"orchestrator/internal/adapters/out/redisstream"
	sqliteorderrepo "orchestrator/internal/adapters/out/sqlite/orderrepo"
	"orchestrator/internal/core/application/services"
	"orchestrator/internal/core/application/usecases/commands"
	"orchestrator/internal/core/application/usecases/queries"
	"orchestrator/internal/core/ports"
	"orchestrator/internal/jobs"

	"github.com/labstack/echo/v4"
)

type orderStore interface {
	ports.OrderRepository
	ports.PendingOrderFinder
}

// CompositionRoot owns the adapters chosen by Config and builds the inbound
// surfaces on top of them.
type CompositionRoot struct {
	cfg       Config
	logger    *slog.Logger
	store     orderStore
	publisher ports.EventPublisher
	closers   []func() error
}

func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{cfg: cfg, logger: logger}

	if err := c.openStore(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if err := c.openPublisher(); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	return c, nil
}

func (c *CompositionRoot) openStore(ctx context.Context) error {
	switch c.cfg.StoreDriver {
	case StorePostgres:
		db, err := postgres.Open(postgres.Config{
			Host:     c.cfg.DBHost,
			Port:     c.cfg.DBPort,
			User:     c.cfg.DBUser,
			Password: c.cfg.DBPassword,
			Name:     c.cfg.DBName,
			SSLMode:  c.cfg.DBSslMode,
		}.DSN())
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		c.closers = append(c.closers, func() error { return postgres.Close(db) })
		if err = postgres.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
		c.store = pgorderrepo.NewGormOrderRepository(db)
	case StoreSQLite:
		repo, err := sqliteorderrepo.Open(c.cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		c.closers = append(c.closers, repo.Close)
		c.store = repo
	case StoreMemory:
		c.store = memoryorderrepo.NewRepository()
	default:
		return fmt.Errorf("unknown store driver %q", c.cfg.StoreDriver)
	}

	c.logger.Info("Order store ready", "driver", c.cfg.StoreDriver)
	return nil
}

func (c *CompositionRoot) openPublisher() error {
	var transport ports.EventPublisher
	switch c.cfg.Publisher {
	case PublisherKafka:
		p, err := kafka.NewPublisher(c.cfg.KafkaBrokers, c.logger)
		if err != nil {
			return fmt.Errorf("kafka publisher: %w", err)
		}
		c.closers = append(c.closers, p.Close)
		transport = p
	case PublisherRedis:
		p, err := redisstream.NewPublisher(c.cfg.RedisURL, c.cfg.RedisStreamMaxLen, c.logger)
		if err != nil {
			return fmt.Errorf("redis publisher: %w", err)
		}
		c.closers = append(c.closers, p.Close)
		transport = p
	case PublisherLog:
		transport = publisher.NewLog(c.logger)
	default:
		return fmt.Errorf("unknown publisher %q", c.cfg.Publisher)
	}

	retryCfg := publisher.DefaultRetryConfig()
	retryCfg.AttemptTimeout = c.cfg.PublishTimeout
	retryCfg.MaxRetries = c.cfg.PublishMaxRetries
	retrying, err := publisher.NewRetrying(transport, retryCfg, c.logger)
	if err != nil {
		return fmt.Errorf("retrying publisher: %w", err)
	}
	c.publisher = retrying

	c.logger.Info("Publisher ready", "transport", c.cfg.Publisher, "topic", c.cfg.KafkaOrderCreatedTopic)
	return nil
}

func (c *CompositionRoot) CreateOrderOrchestrationService() (*services.OrderOrchestrationService, error) {
	mode, err := services.ParseNotifyMode(c.cfg.NotifyMode)
	if err != nil {
		return nil, err
	}
	return services.NewOrderOrchestrationService(
		c.store,
		c.publisher,
		services.WithNotifyMode(mode),
		services.WithTopic(c.cfg.KafkaOrderCreatedTopic),
		services.WithLogger(c.logger),
	)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.store, c.logger)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.store, c.logger)
}

func (c *CompositionRoot) CreateGetStalePendingOrdersQueryHandler() queries.GetStalePendingOrdersQueryHandler {
	return queries.NewGetStalePendingOrdersQueryHandler(c.store)
}

// CreateHTTPServer returns echo with every route mounted.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	svc, err := c.CreateOrderOrchestrationService()
	if err != nil {
		return nil, err
	}
	server := httpapi.NewServer(
		commands.NewCreateOrderCommandHandler(svc),
		svc,
		c.CreateRejectOrderCommandHandler(),
		c.CreateDeleteOrderCommandHandler(),
		c.logger,
	)
	return httpapi.NewEcho(server, c.logger), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(jobs.NewStalePendingOrdersJob(
		c.CreateGetStalePendingOrdersQueryHandler(),
		c.cfg.PendingScanSchedule,
		c.cfg.PendingStaleAfter,
		c.logger,
	))
}

// Close releases adapters in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}
