// package spectrum measures the frequency content of rendered waveforms.
package spectrum

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/pfcm/fret"
	"github.com/pfcm/fret/fix"
)

// Spectrum is the magnitude spectrum of a waveform, normalised so that a full
// scale sine centred on a bin has magnitude 1.
type Spectrum struct {
	Rate int
	Bins []float64 // from 0 Hz up to and including Nyquist
	n    int       // length of the analysed waveform
}

// Analyze takes the FFT of the whole waveform.
func Analyze(w fret.Waveform) Spectrum {
	x := make([]float64, len(w.Samples))
	for i, s := range w.Samples {
		x[i] = fix.Float[float64](s)
	}
	s := Spectrum{Rate: w.Rate, n: len(x)}
	if len(x) == 0 {
		return s
	}
	X := fft.FFTReal(x)
	s.Bins = make([]float64, len(X)/2+1)
	for i := range s.Bins {
		s.Bins[i] = 2 * cmplx.Abs(X[i]) / float64(len(x))
	}
	return s
}

// Resolution is the width of each bin in Hz.
func (s Spectrum) Resolution() float64 {
	if s.n == 0 {
		return 0
	}
	return float64(s.Rate) / float64(s.n)
}

// At returns the magnitude at freq: the largest of the nearest bin and its
// neighbours, to allow for frequencies that fall between bins.
func (s Spectrum) At(freq float64) float64 {
	if len(s.Bins) == 0 {
		return 0
	}
	k := int(math.Round(freq / s.Resolution()))
	if k < 0 || k >= len(s.Bins) {
		return 0
	}
	m := s.Bins[k]
	if k > 0 {
		m = max(m, s.Bins[k-1])
	}
	if k+1 < len(s.Bins) {
		m = max(m, s.Bins[k+1])
	}
	return m
}

// Peak returns the frequency of the strongest bin above DC.
func (s Spectrum) Peak() float64 {
	if len(s.Bins) < 2 {
		return 0
	}
	best := 1
	for i := 2; i < len(s.Bins); i++ {
		if s.Bins[i] > s.Bins[best] {
			best = i
		}
	}
	return float64(best) * s.Resolution()
}
