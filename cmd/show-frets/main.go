// show-frets shows the frequency of every fret on every string, either
// derived from the tuning or filled in from the sparse hints of a config
// file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pfcm/fret"
	"github.com/pfcm/fret/config"
	"github.com/pfcm/fret/midi"
)

var (
	configFlag  = flag.String("config", "", "YAML `file` with a tuning and optional fret hints")
	stringsFlag = flag.String("strings", "", "comma separated list of `strings` to show, 0 (low E) to 5 (high E). Leave empty to show all strings")
	namesFlag   = flag.Bool("names", false, "also show the nearest note name of each fret")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), help)
		fmt.Fprintln(flag.CommandLine.Output(), "\nOptional arguments:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 0 {
		fail("Takes no arguments.")
	}
	strs, err := parseStrings(*stringsFlag)
	if err != nil {
		fail(err.Error())
	}

	cfg := config.Default()
	if *configFlag != "" {
		if cfg, err = config.Load(*configFlag); err != nil {
			fail(err.Error())
		}
	}
	tab, err := cfg.Table()
	if err != nil {
		fail(err.Error())
	}

	w := tabwriter.NewWriter(os.Stdout, 8, 1, 1, ' ', tabwriter.AlignRight)
	if err := showTable(w, tab, strs, *namesFlag); err != nil {
		fail(err.Error())
	}
	if err := w.Flush(); err != nil {
		fail(err.Error())
	}
}

func parseStrings(ss string) ([]int, error) {
	if ss == "" {
		return []int{0, 1, 2, 3, 4, 5}, nil
	}
	var result []int
	for _, s := range strings.Split(ss, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("parsing string %q: %w", s, err)
		}
		if i < 0 || i >= fret.Strings {
			return nil, fmt.Errorf("unknown string %d", i)
		}
		result = append(result, i)
	}
	return result, nil
}

// showTable writes one row per fret and one column per string.
func showTable(w io.Writer, tab *fret.Table, strs []int, names bool) error {
	p := message.NewPrinter(language.English)
	p.Fprint(w, "fret\t")
	for _, s := range strs {
		p.Fprintf(w, "string %d\t", s)
	}
	fmt.Fprintln(w)
	for f := 0; f <= fret.MaxFret; f++ {
		p.Fprintf(w, "%d\t", f)
		for _, s := range strs {
			hz := tab[s][f]
			if !names {
				p.Fprintf(w, "%.2f\t", hz)
				continue
			}
			key, err := midi.Key(hz)
			if err != nil {
				return fmt.Errorf("string %d fret %d: %w", s, f, err)
			}
			p.Fprintf(w, "%.2f %-3s\t", hz, midi.Name(key))
		}
		fmt.Fprintln(w)
	}
	return nil
}

func fail(reason string) {
	fmt.Fprintln(os.Stderr, reason)
	fmt.Fprint(os.Stderr, help, "\n")
	os.Exit(1)
}

const help = `show-frets shows the frequency in Hz of each fret of a six string guitar.
Usage:
	show-frets [-config file.yaml] [-strings 0,1] [-names]

Without a config file the guitar is in standard tuning. With one, its tuning
is used, or its fret hints if it has any, with unknown frets filled in along
the equal-tempered curve of the known ones.
`
