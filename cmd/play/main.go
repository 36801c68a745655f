// play plays the note at a fretboard position, or a minor pentatonic box
// starting there.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pfcm/fret"
	"github.com/pfcm/fret/config"
	"github.com/pfcm/fret/io"
	"github.com/pfcm/fret/midi"
	"github.com/pfcm/fret/scale"
	"github.com/pfcm/fret/spectrum"
	"github.com/pfcm/fret/tone"
)

var (
	stringFlag    = flag.Int("string", -1, "`string` to play, 0 (low E) to 5 (high E)")
	fretFlag      = flag.Int("fret", -1, "`fret` to play, 0 (open) to 20")
	overtonesFlag = flag.Bool("overtones", false, "whether to add harmonic overtones to each note")
	scaleFlag     = flag.Bool("scale", false, "play a minor pentatonic box starting at the note rather than just the note")

	configFlag   = flag.String("config", "", "YAML `file` with tuning and rendering settings")
	volumeFlag   = flag.Float64("volume", -1, "volume from 0 to 1, overrides the config")
	durationFlag = flag.Duration("duration", 0, "length of each note, overrides the config")
	gapFlag      = flag.Duration("gap", -1, "silence between notes of a scale, overrides the config")
	fadeFlag     = flag.Duration("fade", -1, "fade in and out of each note, overrides the config")

	quietFlag   = flag.Bool("quiet", false, "if true, doesn't play anything")
	writeFlag   = flag.String("write", "", "if set, also writes the output to this wav `file`")
	midiFlag    = flag.String("midi", "", "if set, also writes the notes to this MIDI `file`")
	analyzeFlag = flag.Bool("analyze", false, "print the strength of each partial of the first note")
	profileFlag = flag.Bool("profile", false, "whether to write pprof profiles to the current working directory")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), help)
		fmt.Fprintln(flag.CommandLine.Output(), "\nFlags:")
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("play: ")

	if *stringFlag < 0 && *fretFlag < 0 {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(profiled())
}

// profiled runs the command, collecting profiles around it if asked to, and
// returns the exit code.
func profiled() (code int) {
	if *profileFlag {
		finish, err := startProfiles()
		if err != nil {
			log.Printf("Starting profiling: %v", err)
			return 1
		}
		defer func() {
			if err := finish(); err != nil {
				log.Printf("Finishing profiles: %v", err)
				code = 1
			}
		}()
	}

	if err := run(interruptContext()); err != nil {
		log.Print(err)
		if errors.Is(err, fret.ErrInvalidArgument) || errors.Is(err, fret.ErrRange) {
			return 2
		}
		return 1
	}
	return 0
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tab, err := cfg.Table()
	if err != nil {
		return err
	}

	start := fret.Note{String: *stringFlag, Fret: *fretFlag}
	if err := start.Validate(); err != nil {
		return err
	}
	notes := []fret.Note{start}
	if *scaleFlag {
		notes, err = scale.Walk(start, scale.MinorPentatonicSteps, cfg.StringIntervals())
		if err != nil {
			return fmt.Errorf("no minor pentatonic box from string %d fret %d: %w", start.String, start.Fret, err)
		}
	}
	freqs, err := tab.Frequencies(notes)
	if err != nil {
		return err
	}
	keys, err := midi.Keys(freqs)
	if err != nil {
		return err
	}
	for i, n := range notes {
		fmt.Fprintf(os.Stderr, "string %d fret %d: %s %.2f Hz\n", n.String, n.Fret, midi.Name(keys[i]), freqs[i])
	}

	synth := cfg.Synth(*overtonesFlag)
	if *analyzeFlag {
		if err := analyze(synth, freqs[0], cfg.Note); err != nil {
			return err
		}
	}
	w, err := synth.Sequence(freqs, cfg.Note, cfg.Gap)
	if err != nil {
		return err
	}

	if *writeFlag != "" {
		if err := io.WriteWAV(*writeFlag, w); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %v of audio to %q\n", w.Duration(), *writeFlag)
	}
	if *midiFlag != "" {
		if err := writeMIDI(*midiFlag, keys, cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d notes to %q\n", len(keys), *midiFlag)
	}
	if *quietFlag {
		return nil
	}
	return play(ctx, w)
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return config.Config{}, err
		}
	}
	if *volumeFlag >= 0 {
		cfg.Volume = *volumeFlag
	}
	if *durationFlag > 0 {
		cfg.Note = *durationFlag
	}
	if *gapFlag >= 0 {
		cfg.Gap = *gapFlag
	}
	if *fadeFlag >= 0 {
		cfg.Fade = *fadeFlag
	}
	return cfg, cfg.Validate()
}

// play plays w, printing the elapsed time until it is done.
func play(ctx context.Context, w fret.Waveform) error {
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return io.Play(ctx, w)
	})
	g.Go(func() error {
		t0 := time.Now()
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				fmt.Fprintln(os.Stderr)
				return nil
			case <-t.C:
				fmt.Fprintf(os.Stderr, "\r%.1f / %.1fs", time.Since(t0).Seconds(), w.Duration().Seconds())
			}
		}
	})
	return g.Wait()
}

func analyze(synth tone.Synth, freq float64, dur time.Duration) error {
	w, err := synth.Note(freq, dur)
	if err != nil {
		return err
	}
	s := spectrum.Analyze(w)
	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stderr, "%8s %10s %9s\n", "partial", "Hz", "dBFS")
	partials := append(tone.Profile{{Multiple: 1}}, synth.Profile...)
	for _, h := range partials {
		f := float64(h.Multiple) * freq
		p.Fprintf(os.Stderr, "%7dx %10.2f %9.2f\n", h.Multiple, f, dbfs(s.At(f)))
	}
	return nil
}

func dbfs(mag float64) float64 {
	if mag <= 0 {
		return -999
	}
	return 20 * math.Log10(mag)
}

func writeMIDI(filename string, keys []uint8, cfg config.Config) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	seq := midi.Sequence{
		Keys:     keys,
		Note:     cfg.Note,
		Gap:      cfg.Gap,
		Velocity: uint8(max(1, min(127, 127*cfg.Volume))),
		BPM:      cfg.BPM,
	}
	if _, err := seq.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return f.Close()
}

func interruptContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}

func startProfiles() (func() error, error) {
	cpu, err := os.Create("cpu.pprof")
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(cpu); err != nil {
		return nil, fmt.Errorf("starting cpu profile: %w", err)
	}

	mem, err := os.Create("mem.pprof")
	if err != nil {
		return nil, err
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := cpu.Close(); err != nil {
			return err
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(mem); err != nil {
			return err
		}
		return mem.Close()
	}, nil
}

const help = `play plays a note on a six string guitar in standard tuning, rendered
as a sine wave.
Usage:
	play -string 0 -fret 3
	play -string 0 -fret 3 -overtones
	play -string 0 -fret 3 -scale
	play -string 0 -fret 3 -scale -overtones -write scale.wav -midi scale.mid
`
