package queries

import (
	"context"
	"time"

	"orchestrator/internal/core/ports"
)

type GetStalePendingOrdersQueryHandler struct {
	finder ports.PendingOrderFinder
	now    func() time.Time
}

func NewGetStalePendingOrdersQueryHandler(finder ports.PendingOrderFinder) GetStalePendingOrdersQueryHandler {
	return GetStalePendingOrdersQueryHandler{
		finder: finder,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Handle lists Pending orders created before now minus the query's olderThan,
// oldest first.
func (h GetStalePendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStalePendingOrdersQuery,
) ([]GetStalePendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := h.now()
	orders, err := h.finder.ListPendingCreatedBefore(ctx, now.Add(-query.OlderThan()), query.Limit())
	if err != nil {
		return nil, err
	}

	stale := make([]GetStalePendingOrdersQueryResponse, 0, len(orders))
	for _, o := range orders {
		stale = append(stale, GetStalePendingOrdersQueryResponse{
			ID:        o.ID(),
			Title:     o.Specification().Title(),
			CreatedAt: o.CreatedAt(),
			Age:       now.Sub(o.CreatedAt()),
		})
	}
	return stale, nil
}
