package queries

import (
	"errors"
	"fmt"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/pkg/errs"
	"orchestrator/internal/pkg/guard"
)

const MaxStalePendingOrdersLimit = 1000

var (
	ErrGetStalePendingOrdersQueryIsNotConstructed = errors.New(
		"GetStalePendingOrdersQuery must be created via NewGetStalePendingOrdersQuery constructor",
	)
)

// GetStalePendingOrdersQuery finds orders still Pending after olderThan. Such
// orders were saved once but never reached the second save of the creation
// workflow.
//
// Example:
//
//	query, _ := NewGetStalePendingOrdersQuery(15*time.Minute, 100)
//	stale, err := handler.Handle(ctx, query)
//	for _, o := range stale {
//	    fmt.Printf("order %s pending for %s\n", o.ID, o.Age)
//	}
type GetStalePendingOrdersQuery struct {
	olderThan time.Duration
	limit     int

	guard guard.ConstructorGuard
}

func NewGetStalePendingOrdersQuery(olderThan time.Duration, limit int) (GetStalePendingOrdersQuery, error) {
	q := GetStalePendingOrdersQuery{
		olderThan: olderThan,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}

	var errOlderThan, errLimit error
	if olderThan <= 0 {
		errOlderThan = errs.NewValueIsInvalidErrorWithCause("olderThan", fmt.Errorf("%s is not a positive duration", olderThan))
	}
	if limit < 1 || limit > MaxStalePendingOrdersLimit {
		errLimit = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxStalePendingOrdersLimit)
	}
	if err := errors.Join(errOlderThan, errLimit); err != nil {
		return GetStalePendingOrdersQuery{}, err
	}

	return q, nil
}

func (q GetStalePendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStalePendingOrdersQueryIsNotConstructed)
}

func (q GetStalePendingOrdersQuery) OlderThan() time.Duration {
	return q.olderThan
}

func (q GetStalePendingOrdersQuery) Limit() int {
	return q.limit
}

// GetStalePendingOrdersQueryResponse is one stale order as seen at query time.
type GetStalePendingOrdersQueryResponse struct {
	ID        kernel.UUID
	Title     string
	CreatedAt time.Time
	Age       time.Duration
}
