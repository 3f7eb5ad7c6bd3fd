// Package ports defines the contracts between the orchestration core and the
// infrastructure that stores orders and carries notifications.
package ports

import (
	"context"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for production orders.
//
// Save is an upsert guarded by optimistic concurrency:
//   - An order without identity (version 0) is inserted; the store assigns the
//     identity and version 1
//   - A persisted order is updated only if the stored version still equals
//     order.Version(); the version is then advanced by one
//   - A stale version fails with *errs.ConcurrencyConflictError and nothing is written
//
// Save never mutates its argument. It returns a fresh aggregate carrying the
// stored identity and version, to be used for any further change.
//
// Infrastructure failures are reported as *errs.PersistenceError.
type OrderRepository interface {
	Save(ctx context.Context, o *order.ProductionOrder) (*order.ProductionOrder, error)

	// FindByID returns *errs.ObjectNotFoundError when no order has the identity.
	FindByID(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error)

	// DeleteByID removes the order. Deleting an unknown identity returns
	// *errs.ObjectNotFoundError.
	DeleteByID(ctx context.Context, id kernel.UUID) error
}

// PendingOrderFinder lists orders stuck in Pending, for example after a crash
// between the two saves of the creation workflow.
type PendingOrderFinder interface {
	// ListPendingCreatedBefore returns at most limit Pending orders created
	// strictly before cutoff, oldest first.
	ListPendingCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.ProductionOrder, error)
}
