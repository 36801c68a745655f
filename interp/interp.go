// package interp provides interpolation helpers.
package interp

import (
	"math"

	"golang.org/x/exp/constraints"
)

// L does linear interpolation:
//
//	L(a, b, c) = (1-c)*a + c*b
//
// The top form is used rather than a + c*(b-a) so that c == 1 lands exactly
// on b.
func L[T constraints.Float](a, b, c T) T {
	return (1-c)*a + c*b
}

// Log interpolates between two positive values in the log domain, which is
// linear in pitch when a and b are frequencies:
//
//	Log(a, b, c) = exp(L(log(a), log(b), c))
//
// c outside of [0, 1] extrapolates along the same curve.
func Log(a, b, c float64) float64 {
	return math.Exp(L(math.Log(a), math.Log(b), c))
}
