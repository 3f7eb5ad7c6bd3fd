// Package orderrepo keeps production orders in process memory. It backs local
// runs and tests; nothing survives a restart.
package orderrepo

import (
	"context"
	"slices"
	"sync"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/order"
	"orchestrator/internal/pkg/errs"
)

// record is an immutable snapshot of the stored fields.
type record struct {
	spec            order.BookSpecification
	state           order.State
	createdAt       time.Time
	orchestratedAt  *time.Time
	rejectionReason *string
	version         int64
}

// Repository implements ports.OrderRepository and ports.PendingOrderFinder.
// Snapshots are copied in and out so callers never share state with the store.
type Repository struct {
	mu      sync.RWMutex
	records map[kernel.UUID]record
}

func NewRepository() *Repository {
	return &Repository{records: make(map[kernel.UUID]record)}
}

func (r *Repository) Save(ctx context.Context, o *order.ProductionOrder) (*order.ProductionOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewPersistenceErrorWithCause("save order", err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	rec := snapshot(o)

	r.mu.Lock()
	defer r.mu.Unlock()

	id := o.ID()
	if !o.IsPersisted() {
		id = kernel.NewUUID()
		rec.version = 1
	} else {
		current, ok := r.records[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("id", id.String())
		}
		if current.version != o.Version() {
			return nil, errs.NewConcurrencyConflictError("order", id.String(), o.Version())
		}
		rec.version = o.Version() + 1
	}

	r.records[id] = rec
	return rec.restore(id)
}

func (r *Repository) FindByID(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewPersistenceErrorWithCause("find order", err)
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	rec, ok := r.records[id]
	r.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("id", id.String())
	}
	return rec.restore(id)
}

func (r *Repository) DeleteByID(ctx context.Context, id kernel.UUID) error {
	if err := ctx.Err(); err != nil {
		return errs.NewPersistenceErrorWithCause("delete order", err)
	}
	if err := id.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return errs.NewObjectNotFoundError("id", id.String())
	}
	delete(r.records, id)
	return nil
}

func (r *Repository) ListPendingCreatedBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*order.ProductionOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewPersistenceErrorWithCause("list pending orders", err)
	}

	type match struct {
		id  kernel.UUID
		rec record
	}

	r.mu.RLock()
	matches := make([]match, 0)
	for id, rec := range r.records {
		if rec.state == order.Pending && rec.createdAt.Before(cutoff) {
			matches = append(matches, match{id: id, rec: rec})
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(matches, func(a, b match) int {
		return a.rec.createdAt.Compare(b.rec.createdAt)
	})
	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	orders := make([]*order.ProductionOrder, 0, len(matches))
	for _, m := range matches {
		o, err := m.rec.restore(m.id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Len reports the number of stored orders.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func snapshot(o *order.ProductionOrder) record {
	rec := record{
		spec:      o.Specification(),
		state:     o.State(),
		createdAt: o.CreatedAt(),
	}
	if at, ok := o.OrchestratedAt(); ok {
		rec.orchestratedAt = &at
	}
	if reason, ok := o.RejectionReason(); ok {
		rec.rejectionReason = &reason
	}
	return rec
}

func (rec record) restore(id kernel.UUID) (*order.ProductionOrder, error) {
	o, err := order.RestoreProductionOrder(
		id, rec.spec, rec.state, rec.createdAt, rec.orchestratedAt, rec.rejectionReason, rec.version,
	)
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("restore order "+id.String(), err)
	}
	return o, nil
}
