package sentinel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PosInf, Classify(math.Inf(1)))
	assert.Equal(t, NegInf, Classify(math.Inf(-1)))
	assert.Equal(t, NA, Classify(math.NaN()))
	assert.Equal(t, Eps, Classify(Encode(Eps)))
	assert.Equal(t, None, Classify(0))
	assert.Equal(t, None, Classify(42.5))
	assert.Equal(t, None, Classify(-1e300))
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []Special{PosInf, NegInf, NA, Eps} {
		assert.Equal(t, s, Classify(Encode(s)), "special %d should round-trip", s)
	}
	// Undef shares the NaN carrier with NA; it degrades to NA on the way back.
	assert.Equal(t, NA, Classify(Encode(Undef)))
	assert.Equal(t, 0.0, Encode(None))
}

func TestName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "inf", Name(PosInf))
	assert.Equal(t, "-inf", Name(NegInf))
	assert.Equal(t, "na", Name(NA))
	assert.Equal(t, "eps", Name(Eps))
	assert.Equal(t, "undf", Name(Undef))
	assert.Equal(t, "", Name(None))
}

func TestPackUnpack(t *testing.T) {
	t.Parallel()

	t.Run("finite values survive unchanged", func(t *testing.T) {
		t.Parallel()
		for _, v := range []float64{0, 1.5, -3, 1e12} {
			assert.Equal(t, v, Unpack(Pack(v)))
		}
	})

	t.Run("infinities move to the imaginary part", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, complex(0, 1), Pack(math.Inf(1)))
		require.Equal(t, complex(0, -1), Pack(math.Inf(-1)))
		assert.True(t, math.IsInf(Unpack(Pack(math.Inf(1))), 1))
		assert.True(t, math.IsInf(Unpack(Pack(math.Inf(-1))), -1))
	})

	t.Run("arithmetic on real parts keeps infinities intact", func(t *testing.T) {
		t.Parallel()
		// inf - inf through the packing stays inf instead of NaN: the real
		// parts subtract, the imaginary carrier survives on one side.
		a, b := Pack(math.Inf(1)), Pack(5.0)
		diff := complex(real(a)-real(b), imag(a))
		assert.True(t, math.IsInf(Unpack(diff), 1))
	})
}
