package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pfcm/fret/io"
)

// setFlags sets flag values for one test, restoring them afterwards.
func setFlags(t *testing.T, str, fr int, profile bool) {
	oldString, oldFret, oldProfile, oldQuiet := *stringFlag, *fretFlag, *profileFlag, *quietFlag
	*stringFlag, *fretFlag, *profileFlag, *quietFlag = str, fr, profile, true
	t.Cleanup(func() {
		*stringFlag, *fretFlag, *profileFlag, *quietFlag = oldString, oldFret, oldProfile, oldQuiet
	})
}

func chdir(t *testing.T, dir string) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestProfiledFinishesOnError(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	setFlags(t, 9, 0, true)

	if got := profiled(); got != 2 {
		t.Errorf("exit code %d, want 2 for a string off the fretboard", got)
	}
	for _, name := range []string{"cpu.pprof", "mem.pprof"} {
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if fi.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	setFlags(t, 1, 0, false)
	wavFile, midiFile := filepath.Join(dir, "a.wav"), filepath.Join(dir, "a.mid")
	oldWrite, oldMIDI, oldScale := *writeFlag, *midiFlag, *scaleFlag
	*writeFlag, *midiFlag, *scaleFlag = wavFile, midiFile, true
	t.Cleanup(func() { *writeFlag, *midiFlag, *scaleFlag = oldWrite, oldMIDI, oldScale })

	if err := run(context.Background()); err != nil {
		t.Fatal(err)
	}
	w, err := io.ReadWAV(wavFile)
	if err != nil {
		t.Fatal(err)
	}
	// Six notes of 500ms with 100ms between them.
	if got, want := len(w.Samples), 6*22050+5*4410; got != want {
		t.Errorf("wav has %d samples, want %d", got, want)
	}
	if fi, err := os.Stat(midiFile); err != nil || fi.Size() == 0 {
		t.Errorf("midi file: %v", err)
	}
}
