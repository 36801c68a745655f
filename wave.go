package fret

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/pfcm/fret/fix"
)

// Waveform is a mono sequence of 16 bit samples at a fixed sample rate.
type Waveform struct {
	Rate    int // samples per second
	Samples []fix.S15
}

// Silence returns a waveform of zeros lasting d at the given rate.
func Silence(d time.Duration, rate int) Waveform {
	return Waveform{
		Rate:    rate,
		Samples: make([]fix.S15, NumSamples(d, rate)),
	}
}

// NumSamples is the number of samples that make up d at rate, rounded to the
// nearest sample.
func NumSamples(d time.Duration, rate int) int {
	n := d.Seconds() * float64(rate)
	return int(n + 0.5)
}

// Duration is the length of the waveform.
func (w Waveform) Duration() time.Duration {
	if w.Rate <= 0 {
		return 0
	}
	return time.Duration(len(w.Samples)) * time.Second / time.Duration(w.Rate)
}

// Bytes encodes the samples as signed 16 bit little-endian PCM, which is what
// playback devices and wav files expect.
func (w Waveform) Bytes() []byte {
	out := make([]byte, 0, 2*len(w.Samples))
	for _, s := range w.Samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}
	return out
}

// Overlay adds o onto w sample by sample, saturating rather than wrapping
// where the sum overflows. Both must have the same rate and length.
func (w Waveform) Overlay(o Waveform) error {
	if w.Rate != o.Rate {
		return fmt.Errorf("overlaying %d Hz onto %d Hz: %w", o.Rate, w.Rate, ErrInvalidArgument)
	}
	if len(w.Samples) != len(o.Samples) {
		return fmt.Errorf("overlaying %d samples onto %d: %w", len(o.Samples), len(w.Samples), ErrInvalidArgument)
	}
	for i, s := range o.Samples {
		w.Samples[i] = w.Samples[i].SAdd(s)
	}
	return nil
}

// Append returns w followed by o. An empty w takes on the rate of o.
func (w Waveform) Append(o Waveform) (Waveform, error) {
	if len(w.Samples) == 0 && w.Rate == 0 {
		w.Rate = o.Rate
	}
	if w.Rate != o.Rate {
		return Waveform{}, fmt.Errorf("appending %d Hz to %d Hz: %w", o.Rate, w.Rate, ErrInvalidArgument)
	}
	samples := make([]fix.S15, len(w.Samples)+len(o.Samples))
	copy(samples, w.Samples)
	copy(samples[len(w.Samples):], o.Samples)
	return Waveform{Rate: w.Rate, Samples: samples}, nil
}

// Peak is the largest absolute sample value.
func (w Waveform) Peak() int {
	peak := 0
	for _, s := range w.Samples {
		v := int(s)
		if v < 0 {
			v = -v
		}
		peak = max(peak, v)
	}
	return peak
}
