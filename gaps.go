package fret

import (
	"fmt"
	"math"

	"github.com/pfcm/fret/interp"
)

// FillGaps reconstructs a full sequence of frequencies from a sparse one.
// Zero marks an unknown slot; every other value must be positive.
//
// Unknown slots between two known values are interpolated in the log domain,
// which keeps the result equal-tempered between them. Slots before the first
// or after the last known value are extrapolated along the log-domain slope of
// the nearest two known values, so there must be at least two known values
// whenever the first or last slot is unknown.
func FillGaps(hints []float64) ([]float64, error) {
	var known []int
	for i, h := range hints {
		if h == 0 {
			continue
		}
		if !(h > 0) || math.IsInf(h, 0) {
			return nil, fmt.Errorf("slot %d: %v is not a frequency: %w", i, h, ErrDomain)
		}
		known = append(known, i)
	}
	if len(known) == 0 {
		return nil, fmt.Errorf("no known values to fill %d slots from: %w", len(hints), ErrDomain)
	}
	first, last := known[0], known[len(known)-1]
	if len(known) < 2 && (first > 0 || last < len(hints)-1) {
		return nil, fmt.Errorf("extrapolating from a single known value at slot %d: %w", first, ErrDomain)
	}

	out := make([]float64, len(hints))
	// k is the index into known of the nearest known slot at or before i.
	k := 0
	for i, h := range hints {
		if h != 0 {
			out[i] = h
			if i > first {
				k++
			}
			continue
		}
		var a, b int
		switch {
		case i < first:
			a, b = known[0], known[1]
		case i > last:
			a, b = known[len(known)-2], known[len(known)-1]
		default:
			a, b = known[k], known[k+1]
		}
		c := float64(i-a) / float64(b-a)
		out[i] = interp.Log(hints[a], hints[b], c)
	}
	return out, nil
}

// TableFromHints fills the gaps in a sparse hint sequence for every string.
// Each sequence must have exactly Frets slots.
func TableFromHints(hints [Strings][]float64) (*Table, error) {
	var tab Table
	for s, h := range hints {
		if len(h) != Frets {
			return nil, fmt.Errorf("string %d: %d hints, want %d: %w", s, len(h), Frets, ErrInvalidArgument)
		}
		filled, err := FillGaps(h)
		if err != nil {
			return nil, fmt.Errorf("string %d: %w", s, err)
		}
		copy(tab[s][:], filled)
	}
	return &tab, nil
}
