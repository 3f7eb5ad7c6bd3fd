package commands

import (
	"errors"
	"strings"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/pkg/errs"
	"orchestrator/internal/pkg/guard"
)

var (
	ErrRejectOrderCommandIsNotConstructed = errors.New(
		"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
	)
)

// RejectOrderCommand is an operator override moving an order to Rejected from
// any state.
//
// Example:
//
//	cmd, err := NewRejectOrderCommand(orderID, "customer cancelled")
//	if err != nil {
//	    return err
//	}
//	rejected, err := handler.Handle(ctx, cmd)
type RejectOrderCommand struct {
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand validates the target identity and requires a non-blank reason.
func NewRejectOrderCommand(orderID kernel.UUID, reason string) (RejectOrderCommand, error) {
	cmd := RejectOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return RejectOrderCommand{}, err
	}

	return cmd, nil
}

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

func (c RejectOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RejectOrderCommand) Reason() string {
	return c.reason
}

func (c *RejectOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RejectOrderCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
