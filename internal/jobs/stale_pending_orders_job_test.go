package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"orchestrator/internal/core/application/usecases/queries"
	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStalePendingOrdersHandler struct{ mock.Mock }

func (m *MockStalePendingOrdersHandler) Handle(
	ctx context.Context,
	query queries.GetStalePendingOrdersQuery,
) ([]queries.GetStalePendingOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).([]queries.GetStalePendingOrdersQueryResponse)
	return resp, args.Error(1)
}

func olderThan(d time.Duration) any {
	return mock.MatchedBy(func(q queries.GetStalePendingOrdersQuery) bool {
		return q.OlderThan() == d && q.Limit() == queries.MaxStalePendingOrdersLimit
	})
}

func TestStalePendingOrdersJob_RunOnce_LogsEachStaleOrder(t *testing.T) {
	handler := new(MockStalePendingOrdersHandler)
	first, second := kernel.NewUUID(), kernel.NewUUID()
	handler.On("Handle", mock.Anything, olderThan(15*time.Minute)).Return([]queries.GetStalePendingOrdersQueryResponse{
		{ID: first, Title: "Dune", CreatedAt: time.Now().Add(-time.Hour), Age: time.Hour},
		{ID: second, Title: "Emma", CreatedAt: time.Now().Add(-20 * time.Minute), Age: 20 * time.Minute},
	}, nil).Once()

	var logs bytes.Buffer
	job := jobs.NewStalePendingOrdersJob(handler, "0 * * * * *", 15*time.Minute,
		slog.New(slog.NewJSONHandler(&logs, nil)))

	n, err := job.RunOnce(t.Context())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	out := logs.String()
	assert.Equal(t, 2, strings.Count(out, `"msg":"Order still pending"`))
	assert.Contains(t, out, first.String())
	assert.Contains(t, out, second.String())
	assert.Contains(t, out, `"level":"WARN"`)
	handler.AssertExpectations(t)
}

func TestStalePendingOrdersJob_RunOnce_HandlerError(t *testing.T) {
	handler := new(MockStalePendingOrdersHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	var logs bytes.Buffer
	job := jobs.NewStalePendingOrdersJob(handler, "0 * * * * *", time.Minute,
		slog.New(slog.NewJSONHandler(&logs, nil)))

	n, err := job.RunOnce(t.Context())

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, logs.String(), "Stale pending orders scan failed")
}

func TestStalePendingOrdersJob_Start_InvalidSchedule(t *testing.T) {
	job := jobs.NewStalePendingOrdersJob(new(MockStalePendingOrdersHandler), "every now and then", time.Minute, slog.Default())

	err := jobs.NewJobManager(job).StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "every now and then")
}

func TestStalePendingOrdersJob_Start_InvalidAge(t *testing.T) {
	job := jobs.NewStalePendingOrdersJob(new(MockStalePendingOrdersHandler), "* * * * * *", 0, slog.Default())

	require.Error(t, job.Start())
}

func TestStalePendingOrdersJob_RunsOnSchedule(t *testing.T) {
	var calls atomic.Int32
	handler := new(MockStalePendingOrdersHandler)
	handler.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { calls.Add(1) }).
		Return([]queries.GetStalePendingOrdersQueryResponse{}, nil)

	manager := jobs.NewJobManager(jobs.NewStalePendingOrdersJob(handler, "* * * * * *", time.Minute, slog.Default()))
	require.NoError(t, manager.StartAll())
	defer manager.StopAll()

	require.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
