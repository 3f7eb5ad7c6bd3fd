package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orchestrator/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

type StalePendingOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetStalePendingOrdersQuery) ([]queries.GetStalePendingOrdersQueryResponse, error)
}

// StalePendingOrdersJob reports orders that were saved Pending but never
// orchestrated. It only logs; repair is left to an operator.
type StalePendingOrdersJob struct {
	handler   StalePendingOrdersHandler
	schedule  string
	olderThan time.Duration
	limit     int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStalePendingOrdersJob takes a six field cron schedule (seconds first).
func NewStalePendingOrdersJob(
	handler StalePendingOrdersHandler,
	schedule string,
	olderThan time.Duration,
	logger *slog.Logger,
) *StalePendingOrdersJob {
	return &StalePendingOrdersJob{
		handler:   handler,
		schedule:  schedule,
		olderThan: olderThan,
		limit:     queries.MaxStalePendingOrdersLimit,
		timeout:   30 * time.Second,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stale_pending_orders_job"),
	}
}

func (j *StalePendingOrdersJob) Start() error {
	query, err := queries.NewGetStalePendingOrdersQuery(j.olderThan, j.limit)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		j.run(ctx, query)
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("Stale pending orders job started", "schedule", j.schedule, "older_than", j.olderThan)
	return nil
}

// Stop waits for a running scan to finish.
func (j *StalePendingOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Stale pending orders job stopped")
}

// RunOnce performs a single scan and returns how many stale orders it found.
func (j *StalePendingOrdersJob) RunOnce(ctx context.Context) (int, error) {
	query, err := queries.NewGetStalePendingOrdersQuery(j.olderThan, j.limit)
	if err != nil {
		return 0, err
	}
	return j.run(ctx, query), nil
}

func (j *StalePendingOrdersJob) run(ctx context.Context, query queries.GetStalePendingOrdersQuery) int {
	stale, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale pending orders scan failed", "error", err)
		return 0
	}

	for _, o := range stale {
		j.logger.WarnContext(ctx, "Order still pending",
			"order_id", o.ID.String(),
			"title", o.Title,
			"created_at", o.CreatedAt,
			"age", o.Age.Round(time.Second).String())
	}
	if len(stale) == query.Limit() {
		j.logger.WarnContext(ctx, "Stale pending orders scan hit its limit", "limit", query.Limit())
	}
	return len(stale)
}
