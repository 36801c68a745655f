// package midi maps fretboard positions onto MIDI keys and writes sequences
// of them out as standard MIDI files.
package midi

import (
	"fmt"
	"io"
	"math"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/pfcm/fret"
)

// Key returns the MIDI key nearest to freq, where A4 (440 Hz) is 69.
func Key(freq float64) (uint8, error) {
	if !(freq > 0) {
		return 0, fmt.Errorf("frequency %v Hz: %w", freq, fret.ErrInvalidArgument)
	}
	k := math.Round(69 + 12*math.Log2(freq/440))
	if k < 0 || k > 127 {
		return 0, fmt.Errorf("%v Hz is outside the MIDI range: %w", freq, fret.ErrRange)
	}
	return uint8(k), nil
}

// Keys maps each frequency onto its nearest MIDI key.
func Keys(freqs []float64) ([]uint8, error) {
	keys := make([]uint8, len(freqs))
	for i, f := range freqs {
		k, err := Key(f)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		keys[i] = k
	}
	return keys, nil
}

var names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Name is the name and octave of a key, such as A4 for 69.
func Name(key uint8) string {
	return fmt.Sprintf("%s%d", names[key%12], int(key/12)-1)
}

// Resolution is the number of ticks per quarter note in written files.
const Resolution = 960

// Sequence is a monophonic line of evenly spaced notes.
type Sequence struct {
	Keys     []uint8
	Note     time.Duration // how long each key is held
	Gap      time.Duration // silence between keys
	Velocity uint8
	BPM      float64
	Channel  uint8
}

func (s Sequence) ticks(d time.Duration) uint32 {
	beats := d.Seconds() * s.BPM / 60
	return uint32(beats*Resolution + 0.5)
}

// SMF builds a single track standard MIDI file of the sequence.
func (s Sequence) SMF() (*smf.SMF, error) {
	if s.BPM <= 0 {
		return nil, fmt.Errorf("tempo %v bpm: %w", s.BPM, fret.ErrInvalidArgument)
	}
	if s.Note <= 0 || s.Gap < 0 {
		return nil, fmt.Errorf("note %v, gap %v: %w", s.Note, s.Gap, fret.ErrInvalidArgument)
	}
	if s.Channel > 15 || s.Velocity > 127 {
		return nil, fmt.Errorf("channel %d, velocity %d: %w", s.Channel, s.Velocity, fret.ErrInvalidArgument)
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(Resolution)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("fret"))
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, smf.MetaTempo(s.BPM))
	var (
		note = s.ticks(s.Note)
		gap  = s.ticks(s.Gap)
	)
	for i, k := range s.Keys {
		if k > 127 {
			return nil, fmt.Errorf("key %d: %d: %w", i, k, fret.ErrRange)
		}
		var delta uint32
		if i > 0 {
			delta = gap
		}
		tr.Add(delta, gomidi.NoteOn(s.Channel, k, s.Velocity))
		tr.Add(note, gomidi.NoteOff(s.Channel, k))
	}
	tr.Close(0)
	if err := sm.Add(tr); err != nil {
		return nil, fmt.Errorf("adding track: %w", err)
	}
	return sm, nil
}

// WriteTo writes the sequence as a standard MIDI file.
func (s Sequence) WriteTo(w io.Writer) (int64, error) {
	sm, err := s.SMF()
	if err != nil {
		return 0, err
	}
	return sm.WriteTo(w)
}
