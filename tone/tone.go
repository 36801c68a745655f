// package tone renders notes as sine tones with optional overtones.
package tone

import (
	"fmt"
	"math"
	"time"

	"github.com/pfcm/fret"
	"github.com/pfcm/fret/env"
	"github.com/pfcm/fret/fix"
	"github.com/pfcm/fret/internal/buffer"
	"github.com/pfcm/fret/osc"
)

// Partial is a harmonic overlaid on top of the fundamental.
type Partial struct {
	Multiple  int     `yaml:"multiple"`  // of the fundamental frequency, at least 2
	Amplitude float64 `yaml:"amplitude"` // volume of the partial, 0 to 1
}

// Profile is a set of partials that colour a tone.
type Profile []Partial

var (
	// Pure is a bare sine wave.
	Pure Profile
	// Overtones adds the first five harmonics above the fundamental.
	Overtones = Profile{
		{Multiple: 2, Amplitude: 0.3},
		{Multiple: 3, Amplitude: 0.3},
		{Multiple: 4, Amplitude: 0.2},
		{Multiple: 5, Amplitude: 0.2},
		{Multiple: 6, Amplitude: 0.1},
	}
)

// Preset picks between the two built in profiles.
func Preset(overtones bool) Profile {
	if overtones {
		return Overtones
	}
	return Pure
}

// Validate checks every partial is a harmonic with a volume in [0, 1].
func (p Profile) Validate() error {
	for i, h := range p {
		if h.Multiple < 2 {
			return fmt.Errorf("partial %d: multiple %d is not an overtone: %w", i, h.Multiple, fret.ErrInvalidArgument)
		}
		if !(h.Amplitude >= 0 && h.Amplitude <= 1) {
			return fmt.Errorf("partial %d: amplitude %v not in [0, 1]: %w", i, h.Amplitude, fret.ErrInvalidArgument)
		}
	}
	return nil
}

// Gain converts a volume into a linear amplitude. Volume maps linearly onto
// decibels rather than onto amplitude:
//
//	gain_dB = 20 * (volume - 1)
//
// so 1 is full scale, 0.5 is -10 dB and 0 is -20 dB.
func Gain(volume float64) float64 {
	db := 20 * (volume - 1)
	return math.Pow(10, db/20)
}

// Synthesize renders a single tone. See Synth.Note.
func Synthesize(freq float64, dur time.Duration, samplerate int, volume float64, p Profile) (fret.Waveform, error) {
	s := Synth{
		Rate:    samplerate,
		Volume:  volume,
		Profile: p,
	}
	return s.Note(freq, dur)
}

// Synth holds the settings shared by every note it renders.
//
// Volume only sets the fundamental. Partials keep their own amplitudes
// whatever the volume, so below about 0.3 the loudest overtones of the
// Overtones profile are as loud as the fundamental or louder.
type Synth struct {
	Rate    int     // samples per second
	Volume  float64 // of the fundamental, see Gain
	Profile Profile
	// Fade, if positive, ramps every partial in and out over this long to
	// avoid clicks at the note boundaries.
	Fade time.Duration
}

// Note renders freq for dur. The fundamental is a sine at Volume, and each
// partial of the profile is a sine at its own amplitude added on top, clipping
// if the sum goes beyond full scale. Partials at or above the Nyquist
// frequency are left out.
func (s Synth) Note(freq float64, dur time.Duration) (fret.Waveform, error) {
	if !(freq > 0) || math.IsInf(freq, 0) {
		return fret.Waveform{}, fmt.Errorf("frequency %v Hz: %w", freq, fret.ErrInvalidArgument)
	}
	if dur <= 0 {
		return fret.Waveform{}, fmt.Errorf("duration %v: %w", dur, fret.ErrInvalidArgument)
	}
	if s.Rate <= 0 {
		return fret.Waveform{}, fmt.Errorf("sample rate %d: %w", s.Rate, fret.ErrInvalidArgument)
	}
	if err := s.Profile.Validate(); err != nil {
		return fret.Waveform{}, err
	}

	n := fret.NumSamples(dur, s.Rate)
	w := s.render(freq, n, s.Volume)
	nyquist := float64(s.Rate) / 2
	for _, p := range s.Profile {
		f := float64(p.Multiple) * freq
		if f >= nyquist {
			continue
		}
		if err := w.Overlay(s.render(f, n, p.Amplitude)); err != nil {
			return fret.Waveform{}, fmt.Errorf("overlaying %dx partial: %w", p.Multiple, err)
		}
	}
	return w, nil
}

// render makes a single sine wave of n samples.
func (s Synth) render(freq float64, n int, volume float64) fret.Waveform {
	buf := buffer.Get(n)
	defer buffer.Put(buf)

	osc.NewSine(freq, float64(s.Rate)).Fill(buf, Gain(volume))
	if s.Fade > 0 {
		env.AttackRelease(s.Fade, s.Fade, s.Rate).Apply(buf)
	}
	w := fret.Waveform{
		Rate:    s.Rate,
		Samples: make([]fix.S15, n),
	}
	for i, f := range buf {
		w.Samples[i] = fix.FromFloat(f)
	}
	return w
}

// Sequence renders one note per frequency, one after the other, with gap of
// silence between each.
func (s Synth) Sequence(freqs []float64, dur, gap time.Duration) (fret.Waveform, error) {
	if gap < 0 {
		return fret.Waveform{}, fmt.Errorf("gap %v: %w", gap, fret.ErrInvalidArgument)
	}
	out := fret.Waveform{Rate: s.Rate}
	for i, f := range freqs {
		w, err := s.Note(f, dur)
		if err != nil {
			return fret.Waveform{}, fmt.Errorf("note %d: %w", i, err)
		}
		if i > 0 && gap > 0 {
			if out, err = out.Append(fret.Silence(gap, s.Rate)); err != nil {
				return fret.Waveform{}, err
			}
		}
		if out, err = out.Append(w); err != nil {
			return fret.Waveform{}, err
		}
	}
	return out, nil
}
