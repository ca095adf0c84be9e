package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matMulFixture declares index sets and data symbols covering every operand
// shape the product rules distinguish.
type matMulFixture struct {
	c       *Container
	i, j, k *Set
	b       *Set
	vi, vj  *Parameter // vectors over i and j
	mij     *Parameter // matrix (i,j)
	mjk     *Parameter // matrix (j,k)
	mji     *Parameter // matrix (j,i)
	tbij    *Parameter // batched (b,i,j)
	tbjk    *Parameter // batched (b,j,k)
	scalar  *Parameter
}

func newMatMulFixture(t *testing.T) *matMulFixture {
	t.Helper()
	c := testContainer(t)
	f := &matMulFixture{c: c}
	var err error
	f.i, err = NewSet(c, "i")
	require.NoError(t, err)
	f.j, err = NewSet(c, "j")
	require.NoError(t, err)
	f.k, err = NewSet(c, "k")
	require.NoError(t, err)
	f.b, err = NewSet(c, "b")
	require.NoError(t, err)
	f.vi, err = NewParameter(c, "vi", Domain(f.i))
	require.NoError(t, err)
	f.vj, err = NewParameter(c, "vj", Domain(f.j))
	require.NoError(t, err)
	f.mij, err = NewParameter(c, "mij", Domain(f.i, f.j))
	require.NoError(t, err)
	f.mjk, err = NewParameter(c, "mjk", Domain(f.j, f.k))
	require.NoError(t, err)
	f.mji, err = NewParameter(c, "mji", Domain(f.j, f.i))
	require.NoError(t, err)
	f.tbij, err = NewParameter(c, "tbij", Domain(f.b, f.i, f.j))
	require.NoError(t, err)
	f.tbjk, err = NewParameter(c, "tbjk", Domain(f.b, f.j, f.k))
	require.NoError(t, err)
	f.scalar, err = NewParameter(c, "s")
	require.NoError(t, err)
	return f
}

func freeNames(op Operand) []string {
	var names []string
	for _, d := range op.FreeDomain() {
		names = append(names, d.Name())
	}
	return names
}

func TestMatMulShapes(t *testing.T) {
	t.Parallel()

	t.Run("vector dot vector", func(t *testing.T) {
		t.Parallel()
		f := newMatMulFixture(t)
		got, err := MatMul(f.vi, f.vi)
		require.NoError(t, err)
		assert.Equal(t, "sum(i,(vi(i) * vi(i)))", got.Render())
		assert.Empty(t, got.FreeDomain())
	})

	t.Run("matrix times matrix", func(t *testing.T) {
		t.Parallel()
		f := newMatMulFixture(t)
		got, err := MatMul(f.mij, f.mjk)
		require.NoError(t, err)
		assert.Equal(t, "sum(j,(mij(i,j) * mjk(j,k)))", got.Render())
		assert.Equal(t, []string{"i", "k"}, freeNames(got))
	})

	t.Run("matrix times matrix with shared outer set", func(t *testing.T) {
		t.Parallel()
		f := newMatMulFixture(t)
		// Both outer positions would reference i; the left one is rewritten
		// to a deterministically named alias.
		got, err := MatMul(f.mij, f.mji)
		require.NoError(t, err)
		assert.Equal(t, "sum(j,(mij(AliasOfi_2,j) * mji(j,i)))", got.Render())
		assert.Equal(t, []string{"AliasOfi_2", "i"}, freeNames(got))

		alias, found := f.c.Get("AliasOfi_2")
		require.True(t, found, "the disambiguation alias must be registered")
		assert.Equal(t, KindAlias, alias.Kind())

		// Repeating the product reuses the registered alias instead of
		// bumping the counter.
		again, err := MatMul(f.mij, f.mji)
		require.NoError(t, err)
		assert.Equal(t, got.Render(), again.Render())
	})

	t.Run("vector times matrix", func(t *testing.T) {
		t.Parallel()
		f := newMatMulFixture(t)
		got, err := MatMul(f.vi, f.mij)
		require.NoError(t, err)
		assert.Equal(t, "sum(i,(vi(i) * mij(i,j)))", got.Render())
		assert.Equal(t, []string{"j"}, freeNames(got))
	})

	t.Run("matrix times vector", func(t *testing.T) {
		t.Parallel()
		f := newMatMulFixture(t)
		got, err := MatMul(f.mij, f.vj)
		require.NoError(t, err)
		assert.Equal(t, "sum(j,(mij(i,j) * vj(j)))", got.Render())
		assert.Equal(t, []string{"i"}, freeNames(got))
	})

	t.Run("vector times batched matrix", func(t *testing.T) {
		t.Parallel()
		f := newMatMulFixture(t)
		got, err := MatMul(f.vj, f.tbjk)
		require.NoError(t, err)
		assert.Equal(t, "sum(j,(vj(j) * tbjk(b,j,k)))", got.Render())
		assert.Equal(t, []string{"b", "k"}, freeNames(got))
	})

	t.Run("batched matrix times vector", func(t *testing.T) {
		t.Parallel()
		f := newMatMulFixture(t)
		got, err := MatMul(f.tbij, f.vj)
		require.NoError(t, err)
		assert.Equal(t, "sum(j,(tbij(b,i,j) * vj(j)))", got.Render())
		assert.Equal(t, []string{"b", "i"}, freeNames(got))
	})

	t.Run("batched matrix times batched matrix", func(t *testing.T) {
		t.Parallel()
		f := newMatMulFixture(t)
		got, err := MatMul(f.tbij, f.tbjk)
		require.NoError(t, err)
		assert.Equal(t, "sum(j,(tbij(b,i,j) * tbjk(b,j,k)))", got.Render())
		assert.Equal(t, []string{"b", "i", "k"}, freeNames(got))
	})
}

func TestMatMulErrors(t *testing.T) {
	t.Parallel()

	t.Run("scalar operands", func(t *testing.T) {
		t.Parallel()
		f := newMatMulFixture(t)
		_, err := MatMul(f.scalar, f.vi)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		_, err = MatMul(f.vi, f.scalar)
		require.ErrorAs(t, err, &verr)
	})

	t.Run("inner dimension mismatch", func(t *testing.T) {
		t.Parallel()
		f := newMatMulFixture(t)
		_, err := MatMul(f.mij, f.mij)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, err.Error(), "dimensions do not match")
	})

	t.Run("dot product over different sets", func(t *testing.T) {
		t.Parallel()
		f := newMatMulFixture(t)
		_, err := MatMul(f.vi, f.vj)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("batch dimensions must match pairwise", func(t *testing.T) {
		t.Parallel()
		f := newMatMulFixture(t)
		g, err := NewSet(f.c, "g")
		require.NoError(t, err)
		other, err := NewParameter(f.c, "tgjk", Domain(g, f.j, f.k))
		require.NoError(t, err)
		_, err = MatMul(f.tbij, other)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, err.Error(), "batch dimensions do not match")
	})
}

func TestMatMulChaining(t *testing.T) {
	t.Parallel()

	// The result of one product is a normal operand for the next one; the
	// contraction index of the inner product stays controlled.
	f := newMatMulFixture(t)
	inner, err := MatMul(f.mij, f.mjk)
	require.NoError(t, err)
	vk, err := NewParameter(f.c, "vk", Domain(f.k))
	require.NoError(t, err)

	got, err := MatMul(inner, vk)
	require.NoError(t, err)
	assert.Equal(t, []string{"i"}, freeNames(got))
	assert.Equal(t, "sum(k,(sum(j,(mij(i,j) * mjk(j,k))) * vk(k)))", got.Render())
}
