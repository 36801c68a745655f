// package fix provides the 16 bit fixed-point sample type that rendered
// waveforms are made of.
package fix

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// S15 is a signed (two's complement) 16 bit number with 1 sign bit and 15
// fractional bits, representing (roughly) the range -1 to 1. It is exactly
// the layout of a 16 bit PCM sample.
type S15 int16

const (
	// MaxS15 is the highest positive S15: 32767, full scale.
	MaxS15 S15 = 0x7FFF
	// MinS15 is the lowest negative S15: -32768.
	MinS15 S15 = -0x8000
)

// scale is the float magnitude of a full scale sample. We use MaxS15 rather
// than 1<<15 so that 1 and -1 map onto symmetric values.
const scale = float64(MaxS15)

func (s S15) String() string {
	return fmt.Sprintf("%.5f", Float[float64](s))
}

// SAdd is a saturating +, clipping to the minimum or maximum value.
func (a S15) SAdd(b S15) S15 {
	return clamp(int32(a) + int32(b))
}

func clamp(x int32) S15 {
	if x > int32(MaxS15) {
		return MaxS15
	}
	if x < int32(MinS15) {
		return MinS15
	}
	return S15(x)
}

// Float converts an S15 into a float where MaxS15 is 1.
func Float[T constraints.Float](s S15) T {
	return T(s) / T(scale)
}

// FromFloat converts a float into an S15, clamping to the maximum or minimum
// values. The fractional part is truncated towards zero.
func FromFloat[T constraints.Float](f T) S15 {
	g := float64(f) * scale
	if g <= float64(MinS15) {
		return MinS15
	}
	if g >= float64(MaxS15) {
		return MaxS15
	}
	return S15(g)
}
