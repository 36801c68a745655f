// package osc provides oscillators.
package osc

import (
	"fmt"
	"math"
)

// Sine is a sine oscillator at a constant frequency. Each call to Fill
// continues where the previous one left off.
type Sine struct {
	freq       float64
	samplerate float64
	n          int // samples produced so far
}

// NewSine makes a sine oscillator. Both freq and samplerate are in Hz.
func NewSine(freq, samplerate float64) *Sine {
	return &Sine{freq: freq, samplerate: samplerate}
}

func (s *Sine) String() string { return fmt.Sprintf("Sine(%.2f)", s.freq) }

// Fill writes the next len(out) samples, in [-1, 1], scaled by amp.
func (s *Sine) Fill(out []float64, amp float64) {
	for i := range out {
		// Keep the phase as cycles in [0, 1) rather than accumulating
		// radians, so long tones don't drift.
		cycles := s.freq * float64(s.n) / s.samplerate
		cycles -= math.Floor(cycles)
		out[i] = amp * math.Sin(2*math.Pi*cycles)
		s.n++
	}
}
