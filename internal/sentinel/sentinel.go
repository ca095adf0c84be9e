// Package sentinel maps the special numeric values of the external runtime
// (+inf, -inf, not-available, epsilon, undefined) onto IEEE-754 doubles and
// back. The runtime's data files carry these as magic constants; inside the
// host process they are ordinary float64 values so that arithmetic keeps
// working, and they are re-encoded losslessly on the way out.
package sentinel

import "math"

// Special identifies one of the runtime's special numeric values.
type Special int

const (
	// None marks an ordinary finite number.
	None Special = iota
	// PosInf is the runtime's +infinity.
	PosInf
	// NegInf is the runtime's -infinity.
	NegInf
	// NA marks a value that is not available.
	NA
	// Eps is the runtime's epsilon (numerically zero, logically nonzero).
	Eps
	// Undef marks an undefined result, e.g. division by zero.
	Undef
)

// Runtime-side text for each special value, as it must appear in generated
// source and in exchanged records.
var names = map[Special]string{
	PosInf: "inf",
	NegInf: "-inf",
	NA:     "na",
	Eps:    "eps",
	Undef:  "undf",
}

// epsValue is the payload used to represent Eps in a float64 without
// colliding with a genuine tiny number: the smallest subnormal double.
var epsValue = math.SmallestNonzeroFloat64

// Classify reports which special value v represents, if any. NaN is NA by
// convention; the distinct Undef encoding only survives an explicit Encode.
func Classify(v float64) Special {
	switch {
	case math.IsInf(v, 1):
		return PosInf
	case math.IsInf(v, -1):
		return NegInf
	case math.IsNaN(v):
		return NA
	case v == epsValue:
		return Eps
	}
	return None
}

// Encode returns the float64 carrier for a special value. Encode(None)
// returns 0.
func Encode(s Special) float64 {
	switch s {
	case PosInf:
		return math.Inf(1)
	case NegInf:
		return math.Inf(-1)
	case NA, Undef:
		return math.NaN()
	case Eps:
		return epsValue
	}
	return 0
}

// Name returns the source-text spelling of a special value, or "" for None.
func Name(s Special) string {
	return names[s]
}

// Pack stores v in a complex intermediate: finite magnitudes go to the real
// part, infinities move to the imaginary part as ±1. Vectorized bound
// arithmetic runs on the real parts only, so infinities pass through
// untouched instead of producing inf-inf = NaN artifacts.
func Pack(v float64) complex128 {
	switch {
	case math.IsInf(v, 1):
		return complex(0, 1)
	case math.IsInf(v, -1):
		return complex(0, -1)
	}
	return complex(v, 0)
}

// Unpack reverses Pack. A nonzero imaginary part wins over the real part.
func Unpack(c complex128) float64 {
	switch im := imag(c); {
	case im > 0:
		return math.Inf(1)
	case im < 0:
		return math.Inf(-1)
	}
	return real(c)
}
