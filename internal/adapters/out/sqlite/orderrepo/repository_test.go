package orderrepo_test

import (
	"path/filepath"
	"testing"

	"orchestrator/internal/adapters/out/orderrepotest"
	"orchestrator/internal/adapters/out/sqlite/orderrepo"
	"orchestrator/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) orderrepotest.Repository {
	t.Helper()
	repo, err := orderrepo.Open(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepository_Contract(t *testing.T) {
	orderrepotest.RunContract(t, newRepository)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := orderrepo.Open(" ")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestOpen_ReopensExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	repo, err := orderrepo.Open(path)
	require.NoError(t, err)
	saved, err := repo.Save(t.Context(), orderrepotest.NewPendingOrder(t))
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := orderrepo.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	found, err := reopened.FindByID(t.Context(), saved.ID())
	require.NoError(t, err)
	assert.True(t, found.IsEqual(saved))
	assert.Equal(t, "32.00", found.Specification().EstimatedCostString())
}
