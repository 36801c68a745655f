// package scale walks interval patterns across the fretboard.
package scale

import (
	"fmt"

	"github.com/pfcm/fret"
)

// Span is how many frets a pattern may reach above its starting fret before
// moving on to the next string.
const Span = 4

// MinorPentatonicSteps are the semitone steps between successive notes of one
// box of the minor pentatonic scale. The leading 0 is the starting note.
var MinorPentatonicSteps = []int{0, 3, 2, 2, 3, 2}

// Step moves delta semitones on from cur. If that would reach more than Span
// frets above origin, the note is played on the next string instead, shifted
// down by the interval between the two strings. origin stays the same for
// a whole pattern, so that the pattern stays in one box.
func Step(cur fret.Note, delta, origin int, iv fret.Intervals) (fret.Note, error) {
	next := cur
	next.Fret = cur.Fret + delta
	if next.Fret-origin > Span {
		if cur.String+1 >= fret.Strings {
			return fret.Note{}, fmt.Errorf("crossing past the last string from string %d fret %d: %w", cur.String, cur.Fret, fret.ErrRange)
		}
		next.String = cur.String + 1
		next.Fret -= iv[next.String]
	}
	if next.Fret < 0 || next.Fret > fret.MaxFret {
		return fret.Note{}, fmt.Errorf("string %d fret %d is off the fretboard: %w", next.String, next.Fret, fret.ErrRange)
	}
	return next, nil
}

// Walk plays steps starting from start, returning one note per step.
func Walk(start fret.Note, steps []int, iv fret.Intervals) ([]fret.Note, error) {
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	notes := make([]fret.Note, 0, len(steps))
	cur := start
	for i, d := range steps {
		next, err := Step(cur, d, start.Fret, iv)
		if err != nil {
			return nil, fmt.Errorf("step %d (%+d): %w", i, d, err)
		}
		notes = append(notes, next)
		cur = next
	}
	return notes, nil
}

// MinorPentatonic returns the six notes of a minor pentatonic box in
// standard tuning, starting on start.
func MinorPentatonic(start fret.Note) ([]fret.Note, error) {
	return Walk(start, MinorPentatonicSteps, fret.StandardIntervals)
}
