// package fret models the pitch geometry of a six string fretted instrument:
// which frequency sounds at every string and fret, given the tuning of the
// open strings.
package fret

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Strings is the number of strings on the instrument.
	Strings = 6
	// MaxFret is the highest fret. Fret 0 is the open string.
	MaxFret = 20
	// Frets is the number of positions on each string, including the open
	// string.
	Frets = MaxFret + 1
)

// Error kinds. Errors returned from this module wrap one of these, so callers
// can tell them apart with errors.Is.
var (
	// ErrInvalidArgument means an input was outside of the range an
	// operation accepts: a string or fret index off the fretboard, or a
	// non-positive frequency, duration or sample rate.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDomain means a computation is undefined for its input, such as
	// filling gaps with too few known values to anchor to.
	ErrDomain = errors.New("domain error")
	// ErrRange means a computed position fell off the fretboard.
	ErrRange = errors.New("out of range")
)

// Note is a position on the fretboard. Strings are numbered from 0, the
// lowest pitched string.
type Note struct {
	String int
	Fret   int
}

// Validate reports whether the position is on the fretboard.
func (n Note) Validate() error {
	if n.String < 0 || n.String >= Strings {
		return fmt.Errorf("string %d not in [0, %d]: %w", n.String, Strings-1, ErrInvalidArgument)
	}
	if n.Fret < 0 || n.Fret > MaxFret {
		return fmt.Errorf("fret %d not in [0, %d]: %w", n.Fret, MaxFret, ErrInvalidArgument)
	}
	return nil
}

// Tuning is the frequency in Hz of each open string, lowest string first.
type Tuning [Strings]float64

// StandardTuning is E A D G B E, rounded to whole Hz.
var StandardTuning = Tuning{
	82,  // E2
	110, // A2
	147, // D3
	196, // G3
	247, // B3
	330, // E4
}

// Validate checks that every open string has a positive frequency.
func (t Tuning) Validate() error {
	for i, f := range t {
		if !(f > 0) || math.IsInf(f, 0) {
			return fmt.Errorf("string %d: open frequency %v: %w", i, f, ErrInvalidArgument)
		}
	}
	return nil
}

// Intervals derives the interval table of the tuning by rounding the
// distance between each adjacent pair of strings to whole semitones.
func (t Tuning) Intervals() Intervals {
	var iv Intervals
	for s := 1; s < Strings; s++ {
		iv[s] = int(math.Round(12 * math.Log2(t[s]/t[s-1])))
	}
	return iv
}

// Intervals holds, for each string s, how many semitones higher its open
// string is than that of string s-1. Entry 0 is unused.
type Intervals [Strings]int

// StandardIntervals are fourths everywhere except for the major third
// between the G and B strings.
var StandardIntervals = Intervals{0, 5, 5, 5, 4, 5}
