package commands

import (
	"errors"

	"orchestrator/internal/core/domain/model/order"
	"orchestrator/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand carries a validated book specification to be produced.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("Dune", "Frank Herbert", 100, "HARDCOVER", "GLOSSY", 2)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	spec order.BookSpecification

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand parses the kind names and validates every field. All
// field errors are joined so a caller can report them together.
func NewCreateOrderCommand(
	title, author string,
	pageCount int,
	coverKind, finishKind string,
	quantity int,
) (CreateOrderCommand, error) {
	cover, errCover := order.ParseCoverKind(coverKind)
	finish, errFinish := order.ParseFinishKind(finishKind)
	spec, errSpec := order.NewBookSpecification(title, author, pageCount, cover, finish, quantity)

	// kind parse errors come first so their messages win per field
	if err := errors.Join(errCover, errFinish, errSpec); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{spec: spec, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Specification() order.BookSpecification {
	return c.spec
}
