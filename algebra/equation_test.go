package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquationDefinition(t *testing.T) {
	t.Parallel()

	t.Run("indexed definition", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i", Records([]string{"i1", "i2"}))
		require.NoError(t, err)
		a, err := NewParameter(c, "a", Domain(i), Records([][]any{{"i1", 1}, {"i2", 2}}))
		require.NoError(t, err)
		x, err := NewVariable(c, "x", VarPositive, Domain(i))
		require.NoError(t, err)
		e, err := NewEquation(c, "supply", Domain(i), Description("per-plant bound"))
		require.NoError(t, err)

		xr, err := x.Ref(i)
		require.NoError(t, err)
		ar, err := a.Ref(i)
		require.NoError(t, err)
		require.NoError(t, e.Definition(xr.Ge(ar), i))

		assert.True(t, e.Defined())
		assert.Equal(t, `Equation supply(i) "per-plant bound";`, e.declaration())
		statements := c.Statements()
		assert.Equal(t, "supply(i) .. x(i) =g= a(i);", statements[len(statements)-1])
	})

	t.Run("scalar definition with a reduction", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i", Records([]string{"i1"}))
		require.NoError(t, err)
		x, err := NewVariable(c, "x", VarPositive, Domain(i))
		require.NoError(t, err)
		z, err := NewVariable(c, "z", VarFree)
		require.NoError(t, err)
		e, err := NewEquation(c, "obj")
		require.NoError(t, err)

		xr, err := x.Ref(i)
		require.NoError(t, err)
		require.NoError(t, e.Definition(z.Eq(Sum(i, xr))))

		statements := c.Statements()
		assert.Equal(t, "obj .. z =e= sum(i,x(i));", statements[len(statements)-1])
	})

	t.Run("conditional definition", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i", Records([]string{"i1", "i2"}))
		require.NoError(t, err)
		a, err := NewParameter(c, "a", Domain(i), Records([][]any{{"i1", 1}, {"i2", 2}}))
		require.NoError(t, err)
		x, err := NewVariable(c, "x", VarPositive, Domain(i))
		require.NoError(t, err)
		e, err := NewEquation(c, "bound", Domain(i))
		require.NoError(t, err)

		xr, err := x.Ref(i)
		require.NoError(t, err)
		ar, err := a.Ref(i)
		require.NoError(t, err)
		require.NoError(t, e.DefinitionWhere(ar.Gt(0), xr.Le(ar), i))

		statements := c.Statements()
		assert.Equal(t, "bound(i)$(a(i) > 0) .. x(i) =l= a(i);", statements[len(statements)-1])
	})

	t.Run("top node must be relational", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i")
		require.NoError(t, err)
		x, err := NewVariable(c, "x", VarFree, Domain(i))
		require.NoError(t, err)
		e, err := NewEquation(c, "e", Domain(i))
		require.NoError(t, err)
		xr, err := x.Ref(i)
		require.NoError(t, err)

		err = e.Definition(xr.Add(1), i)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.False(t, e.Defined())
	})

	t.Run("free indices must be controlled by the index list", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i")
		require.NoError(t, err)
		j, err := NewSet(c, "j")
		require.NoError(t, err)
		x, err := NewVariable(c, "x", VarFree, Domain(i, j))
		require.NoError(t, err)
		e, err := NewEquation(c, "e", Domain(i))
		require.NoError(t, err)
		xr, err := x.Ref(i, j)
		require.NoError(t, err)

		err = e.Definition(xr.Ge(0), i)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("nil expression", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		e, err := NewEquation(c, "e")
		require.NoError(t, err)
		err = e.Definition(nil)
		var terr *TypeError
		require.ErrorAs(t, err, &terr)
	})
}

func TestEquationAttributes(t *testing.T) {
	t.Parallel()

	c := testContainer(t)
	i, err := NewSet(c, "i", Records([]string{"i1"}))
	require.NoError(t, err)
	a, err := NewParameter(c, "a", Domain(i))
	require.NoError(t, err)
	e, err := NewEquation(c, "e", Domain(i))
	require.NoError(t, err)

	m, err := e.M(i)
	require.NoError(t, err)
	ar, err := a.Ref(i)
	require.NoError(t, err)
	require.NoError(t, ar.Assign(m))

	statements := c.Statements()
	assert.Equal(t, "a(i) = e.m(i);", statements[len(statements)-1])
}
