package fret

import (
	"fmt"
	"math"
)

// FretFrequencies returns the frequency at every fret of a string whose open
// frequency is open. Each fret is one equal-tempered semitone:
//
//	f(n) = open * 2^(n/12)
//
// open must be positive; the result is meaningless otherwise.
func FretFrequencies(open float64) []float64 {
	out := make([]float64, Frets)
	for i := range out {
		out[i] = open * math.Exp2(float64(i)/12)
	}
	return out
}

// Table is the frequency of every position on the fretboard, indexed by
// string then fret.
type Table [Strings][Frets]float64

// NewTable derives the full table for a tuning.
func NewTable(t Tuning) (*Table, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("building fret table: %w", err)
	}
	var tab Table
	for s, open := range t {
		copy(tab[s][:], FretFrequencies(open))
	}
	return &tab, nil
}

// Frequency looks up the frequency of a note.
func (t *Table) Frequency(n Note) (float64, error) {
	if err := n.Validate(); err != nil {
		return 0, err
	}
	return t[n.String][n.Fret], nil
}

// Frequencies looks up a sequence of notes.
func (t *Table) Frequencies(ns []Note) ([]float64, error) {
	out := make([]float64, len(ns))
	for i, n := range ns {
		f, err := t.Frequency(n)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}
