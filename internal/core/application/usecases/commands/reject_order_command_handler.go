package commands

import (
	"context"
	"fmt"
	"log/slog"

	"orchestrator/internal/core/domain/model/order"
	"orchestrator/internal/core/ports"
)

// RejectOrderCommandHandler loads the order, rejects it and saves it back.
// A concurrent writer between load and save surfaces as
// *errs.ConcurrencyConflictError; the handler does not retry.
type RejectOrderCommandHandler struct {
	repository ports.OrderRepository
	logger     *slog.Logger
}

func NewRejectOrderCommandHandler(repository ports.OrderRepository, logger *slog.Logger) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		repository: repository,
		logger:     logger.With("component", "reject_order_command_handler"),
	}
}

// Handle returns the saved Rejected order.
func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) (*order.ProductionOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := h.repository.FindByID(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	previous := o.State()
	if err = o.Reject(cmd.Reason()); err != nil {
		return nil, err
	}

	saved, err := h.repository.Save(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("save rejected order: %w", err)
	}

	h.logger.InfoContext(ctx, "Order rejected",
		"order_id", saved.ID().String(),
		"previous_state", previous.String(),
		"reason", cmd.Reason(),
	)
	return saved, nil
}
