package commands

import (
	"context"
	"log/slog"

	"orchestrator/internal/core/ports"
)

type DeleteOrderCommandHandler struct {
	repository ports.OrderRepository
	logger     *slog.Logger
}

func NewDeleteOrderCommandHandler(repository ports.OrderRepository, logger *slog.Logger) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		repository: repository,
		logger:     logger.With("component", "delete_order_command_handler"),
	}
}

// Handle deletes the order. An unknown identity is *errs.ObjectNotFoundError.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.repository.DeleteByID(ctx, cmd.OrderID()); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Order deleted", "order_id", cmd.OrderID().String())
	return nil
}
