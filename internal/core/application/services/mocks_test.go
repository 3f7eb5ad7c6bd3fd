package services_test

import (
	"context"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Save(ctx context.Context, o *order.ProductionOrder) (*order.ProductionOrder, error) {
	args := m.Called(ctx, o)
	saved, _ := args.Get(0).(*order.ProductionOrder)
	return saved, args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error) {
	args := m.Called(ctx, id)
	found, _ := args.Get(0).(*order.ProductionOrder)
	return found, args.Error(1)
}

func (m *MockOrderRepository) DeleteByID(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

func isUnsavedPending(o *order.ProductionOrder) bool {
	return o.State() == order.Pending && !o.IsPersisted()
}

func isOrchestrated(o *order.ProductionOrder) bool {
	return o.State() == order.Orchestrated && o.IsPersisted()
}

// stored builds what a repository returns after a save.
func stored(id kernel.UUID, spec order.BookSpecification, state order.State, version int64) *order.ProductionOrder {
	created := time.Now().UTC().Add(-time.Second).Truncate(time.Microsecond)
	var orchestratedAt *time.Time
	if state == order.Orchestrated {
		at := created.Add(time.Millisecond)
		orchestratedAt = &at
	}

	o, err := order.RestoreProductionOrder(id, spec, state, created, orchestratedAt, nil, version)
	if err != nil {
		panic(err)
	}
	return o
}
