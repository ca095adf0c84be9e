package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlias(t *testing.T) {
	t.Parallel()

	t.Run("alias of a set resolves to that set", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i", Records([]string{"i1", "i2"}))
		require.NoError(t, err)

		i2, err := NewAlias(c, "i2", i)
		require.NoError(t, err)
		assert.Same(t, i, i2.Root())
		assert.Equal(t, "Alias(i,i2);", i2.declaration())
		assert.Equal(t, i.Records(), i2.Records(), "alias never owns labels")
	})

	t.Run("alias chains resolve through aliases", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i")
		require.NoError(t, err)
		i2, err := NewAlias(c, "i2", i)
		require.NoError(t, err)

		i3, err := NewAlias(c, "i3", i2)
		require.NoError(t, err)
		assert.Same(t, i, i3.Root())
		assert.Equal(t, "Alias(i2,i3);", i3.declaration())
	})

	t.Run("aliasing the universe is rejected", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		_, err := NewAlias(c, "u", Universe)
		var terr *TypeError
		require.ErrorAs(t, err, &terr)
	})

	t.Run("nil target is rejected", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		_, err := NewAlias(c, "u", nil)
		var terr *TypeError
		require.ErrorAs(t, err, &terr)
	})

	t.Run("cross-container alias is rejected", func(t *testing.T) {
		t.Parallel()
		c1 := testContainer(t)
		c2 := testContainer(t)
		i, err := NewSet(c1, "i")
		require.NoError(t, err)

		_, err = NewAlias(c2, "i2", i)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("redeclaration with the same target is idempotent", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i")
		require.NoError(t, err)
		first, err := NewAlias(c, "i2", i)
		require.NoError(t, err)

		second, err := NewAlias(c, "i2", i)
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Len(t, c.Symbols(), 2)
	})

	t.Run("redeclaration with a different target is rejected", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i")
		require.NoError(t, err)
		j, err := NewSet(c, "j")
		require.NoError(t, err)
		_, err = NewAlias(c, "k", i)
		require.NoError(t, err)

		_, err = NewAlias(c, "k", j)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestAliasAsDomain(t *testing.T) {
	t.Parallel()

	c := testContainer(t)
	i, err := NewSet(c, "i", Records([]string{"i1", "i2"}))
	require.NoError(t, err)
	i2, err := NewAlias(c, "i2", i)
	require.NoError(t, err)

	// An alias is interchangeable with its root for domain purposes; record
	// labels validate against the root's labels.
	d, err := NewParameter(c, "d", Domain(i, i2), Records([][]any{{"i1", "i2", 3.5}}))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Dimension())
	assert.Equal(t, "Parameter d(i,i2) / i1.i2 3.5 /;", d.declaration())

	_, err = NewParameter(c, "bad", Domain(i2), Records([][]any{{"zzz", 1.0}}))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "zzz")
}
