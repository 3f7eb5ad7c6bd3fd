// Package orderrepotest holds the behaviour every order repository adapter
// must share. Adapter tests call RunContract with a factory for an empty store.
package orderrepotest

import (
	"sync"
	"testing"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/order"
	"orchestrator/internal/core/ports"
	"orchestrator/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Repository interface {
	ports.OrderRepository
	ports.PendingOrderFinder
}

// RunContract runs the shared repository behaviour. newRepo must return a
// repository over an empty store each time it is called.
func RunContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Helper()

	t.Run("insert assigns identity and first version", func(t *testing.T) {
		repo := newRepo(t)
		pending := NewPendingOrder(t)

		saved, err := repo.Save(t.Context(), pending)

		require.NoError(t, err)
		assert.True(t, saved.IsPersisted())
		assert.Equal(t, int64(1), saved.Version())
		assert.Equal(t, order.Pending, saved.State())
		assert.False(t, pending.IsPersisted(), "input must not be mutated")
		assert.Equal(t, int64(0), pending.Version())
	})

	t.Run("find returns the stored order", func(t *testing.T) {
		repo := newRepo(t)
		saved, err := repo.Save(t.Context(), NewPendingOrder(t))
		require.NoError(t, err)

		found, err := repo.FindByID(t.Context(), saved.ID())

		require.NoError(t, err)
		assert.True(t, found.IsEqual(saved))
		assert.Equal(t, saved.Version(), found.Version())
		assert.Equal(t, saved.State(), found.State())
		assert.True(t, saved.CreatedAt().Equal(found.CreatedAt()))
		spec := found.Specification()
		assert.Equal(t, "Dune", spec.Title())
		assert.Equal(t, "Frank Herbert", spec.Author())
		assert.Equal(t, 100, spec.PageCount())
		assert.Equal(t, order.Hardcover, spec.CoverKind())
		assert.Equal(t, order.Glossy, spec.FinishKind())
		assert.Equal(t, 2, spec.Quantity())
		assert.Equal(t, "32.00", spec.EstimatedCostString())
	})

	t.Run("update advances the version", func(t *testing.T) {
		repo := newRepo(t)
		saved, err := repo.Save(t.Context(), NewPendingOrder(t))
		require.NoError(t, err)
		require.NoError(t, saved.MarkOrchestrated())

		updated, err := repo.Save(t.Context(), saved)

		require.NoError(t, err)
		assert.Equal(t, int64(2), updated.Version())
		assert.Equal(t, order.Orchestrated, updated.State())

		found, err := repo.FindByID(t.Context(), saved.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Orchestrated, found.State())
		at, ok := found.OrchestratedAt()
		require.True(t, ok)
		want, _ := saved.OrchestratedAt()
		assert.True(t, want.Equal(at))
	})

	t.Run("rejection reason round trips", func(t *testing.T) {
		repo := newRepo(t)
		saved, err := repo.Save(t.Context(), NewPendingOrder(t))
		require.NoError(t, err)
		require.NoError(t, saved.Reject("paper shortage"))

		_, err = repo.Save(t.Context(), saved)
		require.NoError(t, err)

		found, err := repo.FindByID(t.Context(), saved.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Rejected, found.State())
		reason, ok := found.RejectionReason()
		require.True(t, ok)
		assert.Equal(t, "paper shortage", reason)
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		repo := newRepo(t)
		saved, err := repo.Save(t.Context(), NewPendingOrder(t))
		require.NoError(t, err)
		stale, err := repo.FindByID(t.Context(), saved.ID())
		require.NoError(t, err)

		require.NoError(t, saved.MarkOrchestrated())
		_, err = repo.Save(t.Context(), saved)
		require.NoError(t, err)

		require.NoError(t, stale.Reject("too late"))
		_, err = repo.Save(t.Context(), stale)

		require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
		require.ErrorIs(t, err, errs.ErrPersistence)
		found, err := repo.FindByID(t.Context(), saved.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Orchestrated, found.State(), "stale write must not apply")
	})

	t.Run("concurrent saves with the same token let exactly one through", func(t *testing.T) {
		repo := newRepo(t)
		saved, err := repo.Save(t.Context(), NewPendingOrder(t))
		require.NoError(t, err)
		require.NoError(t, saved.MarkOrchestrated())

		const writers = 8
		results := make([]error, writers)
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, results[i] = repo.Save(t.Context(), saved)
			}()
		}
		close(start)
		wg.Wait()

		succeeded := 0
		for _, err := range results {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)
		}
		assert.Equal(t, 1, succeeded)

		found, err := repo.FindByID(t.Context(), saved.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(2), found.Version())
	})

	t.Run("unknown identity is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.FindByID(t.Context(), kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("delete removes the order", func(t *testing.T) {
		repo := newRepo(t)
		saved, err := repo.Save(t.Context(), NewPendingOrder(t))
		require.NoError(t, err)

		require.NoError(t, repo.DeleteByID(t.Context(), saved.ID()))

		_, err = repo.FindByID(t.Context(), saved.ID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		require.ErrorIs(t, repo.DeleteByID(t.Context(), saved.ID()), errs.ErrObjectNotFound)

		require.NoError(t, saved.MarkOrchestrated())
		_, err = repo.Save(t.Context(), saved)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("lists stale pending orders oldest first", func(t *testing.T) {
		repo := newRepo(t)
		first, err := repo.Save(t.Context(), NewPendingOrder(t))
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
		second, err := repo.Save(t.Context(), NewPendingOrder(t))
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
		done, err := repo.Save(t.Context(), NewPendingOrder(t))
		require.NoError(t, err)
		require.NoError(t, done.MarkOrchestrated())
		_, err = repo.Save(t.Context(), done)
		require.NoError(t, err)

		cutoff := time.Now().UTC().Add(time.Second)
		stale, err := repo.ListPendingCreatedBefore(t.Context(), cutoff, 10)
		require.NoError(t, err)
		require.Len(t, stale, 2)
		assert.True(t, stale[0].IsEqual(first))
		assert.True(t, stale[1].IsEqual(second))

		stale, err = repo.ListPendingCreatedBefore(t.Context(), cutoff, 1)
		require.NoError(t, err)
		require.Len(t, stale, 1)
		assert.True(t, stale[0].IsEqual(first))

		stale, err = repo.ListPendingCreatedBefore(t.Context(), first.CreatedAt(), 10)
		require.NoError(t, err)
		assert.Empty(t, stale)
	})
}

// NewPendingOrder returns an unsaved order for a two copy hardcover run.
func NewPendingOrder(t *testing.T) *order.ProductionOrder {
	t.Helper()
	spec, err := order.NewBookSpecification("Dune", "Frank Herbert", 100, order.Hardcover, order.Glossy, 2)
	require.NoError(t, err)
	o, err := order.NewProductionOrder(spec)
	require.NoError(t, err)
	return o
}
