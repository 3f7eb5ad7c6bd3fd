package commands_test

import (
	"log/slog"
	"testing"

	"orchestrator/internal/core/application/usecases/commands"
	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should delete", func(t *testing.T) {
		id := kernel.NewUUID()
		cmd, _ := commands.NewDeleteOrderCommand(id)
		repo := new(MockOrderRepository)
		repo.On("DeleteByID", ctx, id).Return(nil).Once()

		err := commands.NewDeleteOrderCommandHandler(repo, slog.Default()).Handle(ctx, cmd)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("should surface not found", func(t *testing.T) {
		id := kernel.NewUUID()
		cmd, _ := commands.NewDeleteOrderCommand(id)
		repo := new(MockOrderRepository)
		repo.On("DeleteByID", ctx, id).Return(errs.NewObjectNotFoundError("id", id)).Once()

		err := commands.NewDeleteOrderCommandHandler(repo, slog.Default()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should refuse unconstructed command", func(t *testing.T) {
		repo := new(MockOrderRepository)

		err := commands.NewDeleteOrderCommandHandler(repo, slog.Default()).Handle(ctx, commands.DeleteOrderCommand{})

		require.ErrorIs(t, err, commands.ErrDeleteOrderCommandIsNotConstructed)
		repo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})
}
