package commands

import (
	"context"

	"orchestrator/internal/core/domain/model/order"
)

// OrderCreator runs the creation workflow for a specification.
type OrderCreator interface {
	CreateOrder(ctx context.Context, spec order.BookSpecification) (*order.ProductionOrder, error)
}

// CreateOrderCommandHandler hands a validated command to the orchestration
// service, which owns both saves and the notification.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(orchestrationService)
//	cmd, _ := NewCreateOrderCommand("Emma", "Jane Austen", 320, "SOFTCOVER", "MATTE", 1)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommandHandler struct {
	creator OrderCreator
}

func NewCreateOrderCommandHandler(creator OrderCreator) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{creator: creator}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.ProductionOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.creator.CreateOrder(ctx, cmd.Specification())
}
