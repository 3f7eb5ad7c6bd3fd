package order_test

import (
	"testing"

	"orchestrator/internal/core/domain/model/order"
	"orchestrator/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoverKind(t *testing.T) {
	tests := []struct {
		in   string
		want order.CoverKind
	}{
		{"HARDCOVER", order.Hardcover},
		{"hardcover", order.Hardcover},
		{"  Softcover ", order.Softcover},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := order.ParseCoverKind(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("should reject unknown kind", func(t *testing.T) {
		_, err := order.ParseCoverKind("LEATHER")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, errs.ValidationFields(err)["coverKind"], "HARDCOVER, SOFTCOVER")
	})

	t.Run("should require a value", func(t *testing.T) {
		_, err := order.ParseCoverKind(" ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestParseFinishKind(t *testing.T) {
	got, err := order.ParseFinishKind("glossy")
	require.NoError(t, err)
	assert.Equal(t, order.Glossy, got)

	got, err = order.ParseFinishKind("MATTE")
	require.NoError(t, err)
	assert.Equal(t, order.Matte, got)

	_, err = order.ParseFinishKind("satin")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.ParseFinishKind("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestKinds_String(t *testing.T) {
	assert.Equal(t, "HARDCOVER", order.Hardcover.String())
	assert.Equal(t, "SOFTCOVER", order.Softcover.String())
	assert.Equal(t, "UNKNOWN", order.CoverUnknown.String())
	assert.Equal(t, "GLOSSY", order.Glossy.String())
	assert.Equal(t, "MATTE", order.Matte.String())
	assert.Equal(t, "UNKNOWN", order.FinishKind(42).String())
}

func TestKinds_Validate(t *testing.T) {
	require.NoError(t, order.Hardcover.Validate())
	require.NoError(t, order.Matte.Validate())
	require.ErrorIs(t, order.CoverUnknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.FinishUnknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.CoverKind(7).Validate(), errs.ErrValueIsInvalid)
}
