package commands_test

import (
	"testing"

	"orchestrator/internal/core/application/usecases/commands"
	"orchestrator/internal/core/domain/model/order"
	"orchestrator/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand("Dune", "Frank Herbert", 100, "hardcover", " glossy ", 2)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	spec := cmd.Specification()
	assert.Equal(t, "Dune", spec.Title())
	assert.Equal(t, order.Hardcover, spec.CoverKind())
	assert.Equal(t, order.Glossy, spec.FinishKind())
	assert.Equal(t, "32.00", spec.EstimatedCostString())
}

func TestNewCreateOrderCommand_JoinsFieldErrors(t *testing.T) {
	_, err := commands.NewCreateOrderCommand("", "Frank Herbert", 0, "LEATHER", "", 1)

	require.Error(t, err)
	fields := errs.ValidationFields(err)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "pageCount")
	assert.Contains(t, fields["coverKind"], "LEATHER")
	assert.Equal(t, "finishKind is required", fields["finishKind"])
	assert.NotContains(t, fields, "quantity")
}

func TestCreateOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
