// package io does audio out: to the default playback device or to wav files.
package io

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pfcm/fret"
	"github.com/pfcm/fret/fix"
)

// Play plays the waveform on the default output device. It blocks until the
// whole waveform has been played or ctx is cancelled, whichever comes first.
func Play(ctx context.Context, w fret.Waveform) error {
	if w.Rate <= 0 {
		return fmt.Errorf("sample rate %d: %w", w.Rate, fret.ErrInvalidArgument)
	}
	if len(w.Samples) == 0 {
		return nil
	}
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		fmt.Fprint(os.Stderr, msg)
	})
	if err != nil {
		return err
	}
	defer func() {
		mctx.Uninit()
		mctx.Free()
	}()
	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = 1
	cfg.SampleRate = uint32(w.Rate)

	f := newFeeder(w.Bytes())
	device, err := malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: f.recv,
	})
	if err != nil {
		return err
	}
	defer device.Uninit()
	if err := device.Start(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-f.done:
	}
	return device.Stop()
}

// feeder hands data to the playback device one period at a time. recv is
// only ever called from the device's thread, so off needs no locking.
type feeder struct {
	data []byte
	off  int
	done chan struct{}
	once sync.Once
}

func newFeeder(data []byte) *feeder {
	return &feeder{data: data, done: make(chan struct{})}
}

// recv fills out with the next period. done is closed on the period after the
// last of the data, once the device has asked for more and so has played it.
func (f *feeder) recv(out, _ []byte, framecount uint32) {
	if framecount == 0 {
		return
	}
	if f.off >= len(f.data) {
		clear(out)
		f.once.Do(func() { close(f.done) })
		return
	}
	n := copy(out, f.data[f.off:])
	clear(out[n:])
	f.off += n
}

// WriteWAV writes the waveform to filename as 16 bit mono PCM.
func WriteWAV(filename string, w fret.Waveform) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	enc := wav.NewEncoder(f, w.Rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  w.Rate,
		},
		Data:           make([]int, len(w.Samples)),
		SourceBitDepth: 16,
	}
	for i, s := range w.Samples {
		buf.Data[i] = int(s)
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finishing %s: %w", filename, err)
	}
	return f.Close()
}

// ReadWAV reads a mono 16 bit wav file, such as one written by WriteWAV.
func ReadWAV(filename string) (fret.Waveform, error) {
	f, err := os.Open(filename)
	if err != nil {
		return fret.Waveform{}, err
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return fret.Waveform{}, fmt.Errorf("%s is not a valid wav file", filename)
	}
	if dec.NumChans != 1 || dec.BitDepth != 16 {
		return fret.Waveform{}, fmt.Errorf("%s: %d channels of %d bits, want mono 16 bit", filename, dec.NumChans, dec.BitDepth)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return fret.Waveform{}, fmt.Errorf("reading %s: %w", filename, err)
	}
	w := fret.Waveform{
		Rate:    int(dec.SampleRate),
		Samples: make([]fix.S15, len(buf.Data)),
	}
	for i, s := range buf.Data {
		w.Samples[i] = fix.S15(s)
	}
	return w, nil
}
