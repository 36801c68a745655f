package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pfcm/fret"
	"github.com/pfcm/fret/tone"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default(): %v", err)
	}
	if got := cfg.StringIntervals(); got != fret.StandardIntervals {
		t.Errorf("StringIntervals(): %v, want %v", got, fret.StandardIntervals)
	}
	tab, err := cfg.Table()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := fret.NewTable(fret.StandardTuning)
	if *tab != *want {
		t.Errorf("Table() differs from the standard table")
	}
	s := cfg.Synth(true)
	if s.Rate != 44100 || s.Volume != 0.5 || !reflect.DeepEqual(s.Profile, tone.Overtones) {
		t.Errorf("Synth(true): %+v", s)
	}
	if p := cfg.Profile(false); p != nil {
		t.Errorf("Profile(false): %v, want none", p)
	}
}

const example = `
tuning: [73.42, 110, 147, 196, 247, 330]
overtones:
  - {multiple: 2, amplitude: 0.5}
  - {multiple: 3, amplitude: 0.25}
sample_rate: 48000
volume: 0.75
note: 250ms
gap: 50ms
fade: 5ms
hints:
  - [73.42, ~, ~, ~, ~, ~, ~, ~, ~, ~, ~, ~, 146.84, ~, ~, ~, ~, ~, ~, ~, ~]
  - [110, ~, ~, ~, ~, ~, ~, ~, ~, ~, ~, ~, 220, ~, ~, ~, ~, ~, ~, ~, ~]
  - [147, ~, ~, ~, ~, ~, ~, ~, ~, ~, ~, ~, 294, ~, ~, ~, ~, ~, ~, ~, ~]
  - [196, ~, ~, ~, ~, ~, ~, ~, ~, ~, ~, ~, 392, ~, ~, ~, ~, ~, ~, ~, ~]
  - [247, ~, ~, ~, ~, ~, ~, ~, ~, ~, ~, ~, 494, ~, ~, ~, ~, ~, ~, ~, ~]
  - [330, ~, ~, ~, ~, ~, ~, ~, ~, ~, ~, ~, 660, ~, ~, ~, ~, ~, ~, ~, ~]
`

func TestLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "fret.yaml")
	if err := os.WriteFile(filename, []byte(example), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(filename)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tuning[0] != 73.42 {
		t.Errorf("tuning: %v", cfg.Tuning)
	}
	if cfg.SampleRate != 48000 || cfg.Volume != 0.75 {
		t.Errorf("sample_rate %d, volume %v", cfg.SampleRate, cfg.Volume)
	}
	if cfg.Note != 250*time.Millisecond || cfg.Gap != 50*time.Millisecond || cfg.Fade != 5*time.Millisecond {
		t.Errorf("note %v, gap %v, fade %v", cfg.Note, cfg.Gap, cfg.Fade)
	}
	// Not set, so still the default.
	if cfg.BPM != 120 {
		t.Errorf("bpm %v, want the default 120", cfg.BPM)
	}
	want := tone.Profile{{Multiple: 2, Amplitude: 0.5}, {Multiple: 3, Amplitude: 0.25}}
	if got := cfg.Profile(true); !reflect.DeepEqual(got, want) {
		t.Errorf("Profile(true): %v, want %v", got, want)
	}
	if got, want := cfg.StringIntervals(), (fret.Intervals{0, 7, 5, 5, 4, 5}); got != want {
		t.Errorf("StringIntervals(): %v, want %v", got, want)
	}

	tab, err := cfg.Table()
	if err != nil {
		t.Fatal(err)
	}
	// The hints are an octave apart at fret 12, so filling them in gives
	// equal temperament.
	for s, open := range cfg.Tuning {
		for f, want := range fret.FretFrequencies(open) {
			if got := tab[s][f]; got/want > 1+1e-9 || got/want < 1-1e-9 {
				t.Errorf("string %d fret %d: %v, want %v", s, f, got, want)
			}
		}
	}
}

func TestParseNullHints(t *testing.T) {
	cfg, err := Parse([]byte(`
hints:
  - [82, ~, null, 100]
  - [~, 110]
  - []
  - [82]
  - [82]
  - [82]
`))
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct {
		s    int
		want Hints
	}{
		{0, Hints{82, 0, 0, 100}},
		{1, Hints{0, 110}},
		{2, Hints{}},
	} {
		if got := cfg.Hints[c.s]; !reflect.DeepEqual(got, c.want) {
			t.Errorf("hints[%d]: %v (len %d), want %v", c.s, got, len(got), c.want)
		}
	}

	if _, err := Parse([]byte("hints: [[82, lots]]")); err == nil {
		t.Errorf("non-numeric hint: no error")
	}
	if _, err := Parse([]byte("hints: [82]")); err == nil {
		t.Errorf("hints not nested: no error")
	}
}

func TestParseIntervals(t *testing.T) {
	cfg, err := Parse([]byte("intervals: [0, 5, 5, 5, 5, 5]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.StringIntervals(), (fret.Intervals{0, 5, 5, 5, 5, 5}); got != want {
		t.Errorf("StringIntervals(): %v, want %v", got, want)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, c := range []struct {
		name, yaml string
	}{
		{"zero string", "tuning: [0, 110, 147, 196, 247, 330]"},
		{"volume", "volume: 1.5"},
		{"sample rate", "sample_rate: -1"},
		{"note", "note: 0s"},
		{"gap", "gap: -1s"},
		{"bpm", "bpm: 0"},
		{"partial", "overtones: [{multiple: 1, amplitude: 0.5}]"},
		{"hints", "hints: [[82]]"},
	} {
		if _, err := Parse([]byte(c.yaml)); !errors.Is(err, fret.ErrInvalidArgument) {
			t.Errorf("%s: got error %v, want %v", c.name, err, fret.ErrInvalidArgument)
		}
	}
	if _, err := Parse([]byte("tuning: [82, 110]")); err == nil {
		t.Errorf("short tuning: no error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got error %v, want %v", err, os.ErrNotExist)
	}
}

func TestTableBadHints(t *testing.T) {
	cfg := Default()
	cfg.Hints = make([]Hints, fret.Strings)
	for s := range cfg.Hints {
		cfg.Hints[s] = make(Hints, fret.Frets)
		cfg.Hints[s][3] = 100
	}
	if _, err := cfg.Table(); !errors.Is(err, fret.ErrDomain) {
		t.Errorf("single anchors: got error %v, want %v", err, fret.ErrDomain)
	}
}
