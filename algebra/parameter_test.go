package algebra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterRecords(t *testing.T) {
	t.Parallel()

	t.Run("scalar takes a bare number", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		p, err := NewParameter(c, "f", Records(90))
		require.NoError(t, err)
		require.Len(t, p.Records(), 1)
		assert.Equal(t, 90.0, p.Records()[0].Value)
		assert.Equal(t, "Scalar f / 90 /;", p.declaration())
	})

	t.Run("rows of labels plus value", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i", Records([]string{"i1", "i2"}))
		require.NoError(t, err)
		p, err := NewParameter(c, "a", Domain(i),
			Records([][]any{{"i1", 10}, {"i2", 20.5}}))
		require.NoError(t, err)
		assert.Equal(t, []ParameterRecord{
			{Key: []string{"i1"}, Value: 10},
			{Key: []string{"i2"}, Value: 20.5},
		}, p.Records())
		assert.Equal(t, "Parameter a(i) / i1 10, i2 20.5 /;", p.declaration())
	})

	t.Run("label-to-value mapping for one dimension", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i", Records([]string{"i1", "i2"}))
		require.NoError(t, err)
		p, err := NewParameter(c, "a", Domain(i),
			Records(map[string]float64{"i2": 2, "i1": 1}))
		require.NoError(t, err)
		// Mapping records iterate in sorted key order for reproducibility.
		assert.Equal(t, []ParameterRecord{
			{Key: []string{"i1"}, Value: 1},
			{Key: []string{"i2"}, Value: 2},
		}, p.Records())
	})

	t.Run("labels validate against domain records", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i", Records([]string{"i1"}))
		require.NoError(t, err)
		_, err = NewParameter(c, "a", Domain(i), Records([][]any{{"nope", 1}}))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		_, found := c.Get("a")
		assert.False(t, found)
	})

	t.Run("domain forwarding skips label validation", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i", Records([]string{"i1"}))
		require.NoError(t, err)
		p, err := NewParameter(c, "a", Domain(i), DomainForwarding(),
			Records([][]any{{"new_label", 7}}))
		require.NoError(t, err)
		assert.Equal(t, []string{"new_label"}, p.Records()[0].Key)
	})

	t.Run("special values render by name", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		i, err := NewSet(c, "i", Records([]string{"i1", "i2", "i3"}))
		require.NoError(t, err)
		p, err := NewParameter(c, "cap", Domain(i), Records([][]any{
			{"i1", math.Inf(1)},
			{"i2", "eps"},
			{"i3", "-inf"},
		}))
		require.NoError(t, err)
		assert.Equal(t, "Parameter cap(i) / i1 inf, i2 eps, i3 -inf /;", p.declaration())
	})

	t.Run("scalar rejects rows", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		_, err := NewParameter(c, "f", Records([][]any{{"i1", 1}}))
		require.Error(t, err)
	})

	t.Run("singleton option is rejected", func(t *testing.T) {
		t.Parallel()
		c := testContainer(t)
		_, err := NewParameter(c, "f", Singleton())
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestParameterAssignment(t *testing.T) {
	t.Parallel()

	c := testContainer(t)
	i, err := NewSet(c, "i", Records([]string{"i1", "i2"}))
	require.NoError(t, err)
	a, err := NewParameter(c, "a", Domain(i))
	require.NoError(t, err)
	b, err := NewParameter(c, "b", Domain(i), Records([][]any{{"i1", 1}, {"i2", 2}}))
	require.NoError(t, err)

	t.Run("indexed assignment", func(t *testing.T) {
		ar, err := a.Ref(i)
		require.NoError(t, err)
		br, err := b.Ref(i)
		require.NoError(t, err)
		require.NoError(t, ar.Assign(br.Mul(2)))

		statements := c.Statements()
		assert.Equal(t, "a(i) = (b(i) * 2);", statements[len(statements)-1])
		assert.True(t, a.Modified())
	})

	t.Run("literal index assignment", func(t *testing.T) {
		ar, err := a.Ref(Lit("i1"))
		require.NoError(t, err)
		require.NoError(t, ar.Assign(42))

		statements := c.Statements()
		assert.Equal(t, `a("i1") = 42;`, statements[len(statements)-1])
	})

	t.Run("unknown literal label is rejected", func(t *testing.T) {
		_, err := a.Ref(Lit("zzz"))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("uncontrolled free index is rejected", func(t *testing.T) {
		j, err := NewSet(c, "j")
		require.NoError(t, err)
		d, err := NewParameter(c, "d", Domain(i, j))
		require.NoError(t, err)
		dr, err := d.Ref(i, j)
		require.NoError(t, err)
		ar, err := a.Ref(Lit("i1"))
		require.NoError(t, err)

		err = ar.Assign(dr)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, err.Error(), "not controlled")
	})

	t.Run("arity mismatch is rejected", func(t *testing.T) {
		_, err := a.Ref(i, i)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("conditional assignment", func(t *testing.T) {
		ar, err := a.Ref(i)
		require.NoError(t, err)
		br, err := b.Ref(i)
		require.NoError(t, err)
		require.NoError(t, ar.Assign(br.Where(br.Gt(1))))

		statements := c.Statements()
		assert.Equal(t, "a(i) = b(i) $ (b(i) > 1);", statements[len(statements)-1])
	})
}

func TestParameterRedeclaration(t *testing.T) {
	t.Parallel()

	c := testContainer(t)
	i, err := NewSet(c, "i", Records([]string{"i1"}))
	require.NoError(t, err)
	p, err := NewParameter(c, "a", Domain(i))
	require.NoError(t, err)

	again, err := NewParameter(c, "a", Domain(i), Records([][]any{{"i1", 3}}))
	require.NoError(t, err)
	assert.Same(t, p, again)
	require.Len(t, p.Records(), 1)

	_, err = NewParameter(c, "a")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
