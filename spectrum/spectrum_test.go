package spectrum

import (
	"math"
	"testing"

	"github.com/pfcm/fret"
	"github.com/pfcm/fret/fix"
)

func sines(rate, n int, partials map[float64]float64) fret.Waveform {
	w := fret.Waveform{Rate: rate, Samples: make([]fix.S15, n)}
	for i := range w.Samples {
		var v float64
		for f, a := range partials {
			v += a * math.Sin(2*math.Pi*f*float64(i)/float64(rate))
		}
		w.Samples[i] = fix.FromFloat(v)
	}
	return w
}

func TestAnalyze(t *testing.T) {
	w := sines(8000, 800, map[float64]float64{1000: 0.5, 2500: 0.25})
	s := Analyze(w)
	if got := s.Resolution(); got != 10 {
		t.Errorf("Resolution(): %v, want 10", got)
	}
	if got := len(s.Bins); got != 401 {
		t.Errorf("%d bins, want 401", got)
	}
	for _, c := range []struct {
		freq, want float64
	}{
		{1000, 0.5},
		{2500, 0.25},
		{440, 0},
		{3000, 0},
	} {
		if got := s.At(c.freq); math.Abs(got-c.want) > 0.001 {
			t.Errorf("At(%v): %v, want %v", c.freq, got, c.want)
		}
	}
	if got := s.Peak(); got != 1000 {
		t.Errorf("Peak(): %v, want 1000", got)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	s := Analyze(fret.Waveform{Rate: 44100})
	if s.At(440) != 0 || s.Peak() != 0 || s.Resolution() != 0 {
		t.Errorf("empty spectrum: %+v", s)
	}
	if got := Analyze(sines(8000, 80, map[float64]float64{1000: 1})).At(1e6); got != 0 {
		t.Errorf("At above Nyquist: %v, want 0", got)
	}
}
