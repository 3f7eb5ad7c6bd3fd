package queries_test

import (
	"testing"
	"time"

	"orchestrator/internal/core/application/usecases/queries"
	"orchestrator/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetStalePendingOrdersQuery(t *testing.T) {
	q, err := queries.NewGetStalePendingOrdersQuery(time.Minute, 50)
	require.NoError(t, err)
	require.NoError(t, q.Validate())
	assert.Equal(t, time.Minute, q.OlderThan())
	assert.Equal(t, 50, q.Limit())

	_, err = queries.NewGetStalePendingOrdersQuery(0, 0)
	fields := errs.ValidationFields(err)
	assert.Contains(t, fields, "olderThan")
	assert.Equal(t, "limit must be between 1 and 1000", fields["limit"])

	require.ErrorIs(t, queries.GetStalePendingOrdersQuery{}.Validate(), queries.ErrGetStalePendingOrdersQueryIsNotConstructed)
}
