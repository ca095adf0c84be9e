package ident

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts plain identifiers", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"i", "x1", "totalCost", "supply_limit", "A"} {
			assert.NoError(t, Validate(name), "name %q should be valid", name)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()
		require.Error(t, Validate(""))
	})

	t.Run("rejects names over the length bound", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, Validate(strings.Repeat("a", MaxLen)))
		require.Error(t, Validate(strings.Repeat("a", MaxLen+1)))
	})

	t.Run("rejects reserved words case-insensitively", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"set", "Set", "SUM", "Model", "yes", "inf"} {
			assert.Error(t, Validate(name), "name %q should be rejected", name)
		}
	})

	t.Run("rejects leading digit or underscore", func(t *testing.T) {
		t.Parallel()
		require.Error(t, Validate("1x"))
		require.Error(t, Validate("_x"))
	})

	t.Run("rejects invalid characters", func(t *testing.T) {
		t.Parallel()
		require.Error(t, Validate("a-b"))
		require.Error(t, Validate("a b"))
		require.Error(t, Validate("a.b"))
	})
}

func TestIsReserved(t *testing.T) {
	t.Parallel()

	assert.True(t, IsReserved("solve"))
	assert.True(t, IsReserved("SOLVE"))
	assert.False(t, IsReserved("solver"))
}
