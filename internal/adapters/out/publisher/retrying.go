// Package publisher holds transport independent EventPublisher decorators and
// the log-only publisher used when no broker is configured.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orchestrator/internal/core/ports"
	"orchestrator/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

type RetryConfig struct {
	AttemptTimeout  time.Duration
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		AttemptTimeout:  5 * time.Second,
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

// Retrying bounds every publish attempt by AttemptTimeout and retries failed
// attempts with exponential backoff. A cancelled caller context stops retrying.
type Retrying struct {
	next   ports.EventPublisher
	cfg    RetryConfig
	logger *slog.Logger
}

var _ ports.EventPublisher = (*Retrying)(nil)

func NewRetrying(next ports.EventPublisher, cfg RetryConfig, logger *slog.Logger) (*Retrying, error) {
	if next == nil {
		return nil, errs.NewValueIsRequiredError("next")
	}
	if cfg.AttemptTimeout <= 0 {
		return nil, errs.NewValueIsInvalidError("attemptTimeout")
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = DefaultRetryConfig().InitialInterval
	}
	if cfg.MaxInterval < cfg.InitialInterval {
		cfg.MaxInterval = cfg.InitialInterval
	}

	return &Retrying{
		next:   next,
		cfg:    cfg,
		logger: logger.With("component", "retrying_publisher"),
	}, nil
}

func (r *Retrying) Publish(ctx context.Context, topic, key string, payload any) error {
	attempt := 0
	operation := func() error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.AttemptTimeout)
		defer cancel()

		err := r.next.Publish(attemptCtx, topic, key, payload)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		r.logger.WarnContext(ctx, "Publish attempt failed, retrying",
			"topic", topic, "key", key, "attempt", attempt, "retry_in", wait, "error", err)
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), r.cfg.MaxRetries), ctx), notify)
	if err == nil {
		return nil
	}

	var publishErr *errs.PublishError
	if errors.As(err, &publishErr) {
		return err
	}
	return errs.NewPublishErrorWithCause(topic, key, err)
}

func (r *Retrying) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.InitialInterval
	b.MaxInterval = r.cfg.MaxInterval
	b.MaxElapsedTime = 0
	return b
}
