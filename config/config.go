// package config loads the settings shared by the commands: the tuning, the
// overtone profile and how notes are rendered.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfcm/fret"
	"github.com/pfcm/fret/tone"
)

// Config is the YAML-facing configuration. Durations are written the way
// time.ParseDuration reads them, such as 500ms.
type Config struct {
	Tuning fret.Tuning `yaml:"tuning"`
	// Intervals between adjacent strings in semitones. When absent they
	// are derived from Tuning.
	Intervals *fret.Intervals `yaml:"intervals,omitempty"`
	// Hints are sparse per-string fret frequencies, Frets slots each, with
	// null for unknown frets. When present they replace the equal-tempered
	// table derived from Tuning.
	Hints []Hints `yaml:"hints,omitempty"`
	// Overtones, if set, replaces the built in overtone profile.
	Overtones tone.Profile `yaml:"overtones,omitempty"`

	SampleRate int           `yaml:"sample_rate"`
	Volume     float64       `yaml:"volume"`
	Note       time.Duration `yaml:"note"`
	Gap        time.Duration `yaml:"gap"`
	Fade       time.Duration `yaml:"fade"`
	BPM        float64       `yaml:"bpm"`
}

// Hints is one string's sparse fret frequencies. A null entry is an unknown
// fret and decodes to 0, which is how fret.FillGaps marks a gap.
type Hints []float64

func (h *Hints) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: hints must be a list of frequencies", n.Line)
	}
	out := make(Hints, len(n.Content))
	for i, c := range n.Content {
		if c.ShortTag() == "!!null" {
			continue
		}
		if err := c.Decode(&out[i]); err != nil {
			return fmt.Errorf("line %d: fret %d: %w", c.Line, i, err)
		}
	}
	*h = out
	return nil
}

// Default returns the standard settings.
func Default() Config {
	return Config{
		Tuning:     fret.StandardTuning,
		SampleRate: 44100,
		Volume:     0.5,
		Note:       500 * time.Millisecond,
		Gap:        100 * time.Millisecond,
		BPM:        120,
	}
}

// Load reads filename on top of the defaults.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Parse reads YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	var errs []error
	if err := c.Tuning.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tuning: %w", err))
	}
	if n := len(c.Hints); n != 0 && n != fret.Strings {
		errs = append(errs, fmt.Errorf("hints for %d strings, want %d: %w", n, fret.Strings, fret.ErrInvalidArgument))
	}
	if err := c.Overtones.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("overtones: %w", err))
	}
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample_rate %d: %w", c.SampleRate, fret.ErrInvalidArgument))
	}
	if !(c.Volume >= 0 && c.Volume <= 1) {
		errs = append(errs, fmt.Errorf("volume %v not in [0, 1]: %w", c.Volume, fret.ErrInvalidArgument))
	}
	if c.Note <= 0 {
		errs = append(errs, fmt.Errorf("note %v: %w", c.Note, fret.ErrInvalidArgument))
	}
	if c.Gap < 0 || c.Fade < 0 {
		errs = append(errs, fmt.Errorf("gap %v, fade %v: %w", c.Gap, c.Fade, fret.ErrInvalidArgument))
	}
	if c.BPM <= 0 {
		errs = append(errs, fmt.Errorf("bpm %v: %w", c.BPM, fret.ErrInvalidArgument))
	}
	return errors.Join(errs...)
}

// Table is the fret table: gap-filled from the hints if there are any,
// otherwise derived from the tuning.
func (c Config) Table() (*fret.Table, error) {
	if len(c.Hints) == 0 {
		return fret.NewTable(c.Tuning)
	}
	if len(c.Hints) != fret.Strings {
		return nil, fmt.Errorf("hints for %d strings, want %d: %w", len(c.Hints), fret.Strings, fret.ErrInvalidArgument)
	}
	var hints [fret.Strings][]float64
	for s, h := range c.Hints {
		hints[s] = h
	}
	return fret.TableFromHints(hints)
}

// StringIntervals returns the configured intervals, or derives them from the
// tuning.
func (c Config) StringIntervals() fret.Intervals {
	if c.Intervals != nil {
		return *c.Intervals
	}
	return c.Tuning.Intervals()
}

// Profile returns the configured overtones if any, otherwise the built in
// preset.
func (c Config) Profile(overtones bool) tone.Profile {
	if overtones && len(c.Overtones) > 0 {
		return c.Overtones
	}
	return tone.Preset(overtones)
}

// Synth makes a synthesizer from the settings.
func (c Config) Synth(overtones bool) tone.Synth {
	return tone.Synth{
		Rate:    c.SampleRate,
		Volume:  c.Volume,
		Profile: c.Profile(overtones),
		Fade:    c.Fade,
	}
}
