package commands_test

import (
	"context"

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
