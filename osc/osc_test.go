package osc

import (
	"math"
	"testing"
)

func TestSineFill(t *testing.T) {
	// A quarter of the sample rate gives 0, 1, 0, -1.
	s := NewSine(11025, 44100)
	out := make([]float64, 8)
	s.Fill(out, 0.5)
	want := []float64{0, 0.5, 0, -0.5, 0, 0.5, 0, -0.5}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Errorf("sample %d: %v, want %v", i, out[i], want[i])
		}
	}
}

func TestSineContinues(t *testing.T) {
	a, b := NewSine(440, 44100), NewSine(440, 44100)
	whole := make([]float64, 1000)
	a.Fill(whole, 1)
	parts := make([]float64, 1000)
	b.Fill(parts[:333], 1)
	b.Fill(parts[333:], 1)
	for i := range whole {
		if whole[i] != parts[i] {
			t.Fatalf("sample %d: %v split, %v whole", i, parts[i], whole[i])
		}
	}
}
