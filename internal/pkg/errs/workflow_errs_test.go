package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"orchestrator/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistenceError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewPersistenceError("save order")

		assert.Equal(t, "persistence failed: save order", err.Error())
		require.ErrorIs(t, err, errs.ErrPersistence)
	})

	t.Run("with cause keeps the cause reachable", func(t *testing.T) {
		err := errs.NewPersistenceErrorWithCause("save order", context.DeadlineExceeded)

		assert.Equal(t, "persistence failed: save order (cause: context deadline exceeded)", err.Error())
		require.ErrorIs(t, err, errs.ErrPersistence)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestConcurrencyConflictError(t *testing.T) {
	err := errs.NewConcurrencyConflictError("order", "42", 3)

	assert.Equal(t, "concurrency conflict: order 42 is not at version 3", err.Error())
	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	require.ErrorIs(t, err, errs.ErrPersistence)

	wrapped := fmt.Errorf("handler: %w", err)
	var conflict *errs.ConcurrencyConflictError
	require.ErrorAs(t, wrapped, &conflict)
	assert.Equal(t, int64(3), conflict.ExpectedVersion)
}

func TestPublishError(t *testing.T) {
	cause := errors.New("broker down")
	err := errs.NewPublishErrorWithCause("order-created", "42", cause)

	assert.Equal(t, "publish failed: topic is: order-created, key is: 42 (cause: broker down)", err.Error())
	require.ErrorIs(t, err, errs.ErrPublish)
	require.ErrorIs(t, err, cause)
	assert.False(t, errors.Is(err, errs.ErrPersistence))
}

func TestIllegalTransitionError(t *testing.T) {
	err := errs.NewIllegalTransitionError("ORCHESTRATED", "ORCHESTRATED")

	assert.Equal(t, "illegal transition: ORCHESTRATED -> ORCHESTRATED", err.Error())
	require.ErrorIs(t, err, errs.ErrIllegalTransition)
}

func TestValidationFields(t *testing.T) {
	t.Run("flattens joined validation errors", func(t *testing.T) {
		err := errors.Join(
			errs.NewValueIsRequiredError("title"),
			errs.NewValueIsOutOfRangeError("pageCount", 0, 1, nil),
			errs.NewValueIsOutOfRangeError("quantity", 0, 1, 1000),
			errs.NewValueIsInvalidErrorWithCause("coverKind", errors.New("LEATHER is not a cover kind")),
			errs.NewValueIsInvalidError("finishKind"),
		)

		fields := errs.ValidationFields(err)

		assert.Equal(t, map[string]string{
			"title":      "title is required",
			"pageCount":  "pageCount must be >= 1",
			"quantity":   "quantity must be between 1 and 1000",
			"coverKind":  "LEATHER is not a cover kind",
			"finishKind": "finishKind is invalid",
		}, fields)
	})

	t.Run("walks wrapped errors", func(t *testing.T) {
		err := fmt.Errorf("create order: %w", errors.Join(errs.NewValueIsRequiredError("author")))

		assert.Equal(t, map[string]string{"author": "author is required"}, errs.ValidationFields(err))
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("ignores non validation errors", func(t *testing.T) {
		err := errs.NewPersistenceError("save order")

		assert.Empty(t, errs.ValidationFields(err))
		assert.False(t, errs.IsValidation(err))
	})
}

func TestValueIsOutOfRangeError_WithoutUpperBound(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("pageCount", 0, 1, nil)

	assert.Equal(t, "value is invalid: 0 is pageCount, min value is 1", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
