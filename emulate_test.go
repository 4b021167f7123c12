// SPDX-License-Identifier: EPL-2.0

package vhsaudio

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/ik5/vhsaudio/internal/audiotest"
	"github.com/ik5/vhsaudio/vhs"
)

func TestEmulate_LayoutAndRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       vhs.Options
		srcRate    int
		srcChans   int
		srcFrames  int
		wantFrames int64
	}{
		{"hifi stereo passthrough rate", vhs.Resolve(true, vhs.SP, false).Options(44100), 44100, 2, 10000, 10000},
		{"linear mono from stereo 48k", vhs.Resolve(false, vhs.EP, false).Options(44100), 48000, 2, 48000, 44100},
		{"linear stereo from mono", vhs.Resolve(false, vhs.SP, true).Options(48000), 24000, 1, 2400, 4800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, tt.srcChans, tt.srcFrames, 1000, 0.5)
			samples, report, err := EmulateToPCM16(src, tt.opts, 0)
			if err != nil {
				t.Fatalf("EmulateToPCM16() error = %v", err)
			}

			if report.Frames != tt.wantFrames {
				t.Errorf("Frames = %d, want %d", report.Frames, tt.wantFrames)
			}
			if report.Channels != tt.opts.Channels || report.SampleRate != tt.opts.SampleRate {
				t.Errorf("format = %d Hz/%d ch, want %d Hz/%d ch",
					report.SampleRate, report.Channels, tt.opts.SampleRate, tt.opts.Channels)
			}
			if want := int(tt.wantFrames) * tt.opts.Channels; len(samples) != want {
				t.Errorf("len(samples) = %d, want %d", len(samples), want)
			}
			if wantBlocks := int((tt.wantFrames + DefaultBlockFrames - 1) / DefaultBlockFrames); report.Blocks != wantBlocks {
				t.Errorf("Blocks = %d, want %d", report.Blocks, wantBlocks)
			}
			if report.InputPeakDBFS < -6.1 || report.InputPeakDBFS > -5.9 {
				t.Errorf("InputPeakDBFS = %v, want about -6", report.InputPeakDBFS)
			}
		})
	}
}

func TestEmulate_BlockSizeDoesNotMatter(t *testing.T) {
	t.Parallel()

	opts := vhs.Resolve(true, vhs.SP, false).Options(44100)

	run := func(blockFrames int) []int16 {
		src := audiotest.NewSineSource(22050, 2, 3000, 3000, 0.7)
		samples, _, err := EmulateToPCM16(src, opts, blockFrames)
		if err != nil {
			t.Fatalf("EmulateToPCM16(%d) error = %v", blockFrames, err)
		}
		return samples
	}

	want := run(4096)
	for _, n := range []int{1, 7, 1000} {
		if got := run(n); !slices.Equal(got, want) {
			t.Errorf("block size %d changed the output", n)
		}
	}
}

func TestEmulate_Silence(t *testing.T) {
	t.Parallel()

	samples, report, err := EmulateToPCM16(audiotest.NewSilentSource(44100, 2, 5000), vhs.DefaultOptions(), 512)
	if err != nil {
		t.Fatalf("EmulateToPCM16() error = %v", err)
	}

	for i, s := range samples {
		if s != 0 {
			t.Fatalf("sample %d = %d, want 0", i, s)
		}
	}
	if !math.IsInf(report.OutputPeakDBFS, -1) || !math.IsInf(report.InputRMSDBFS, -1) {
		t.Errorf("levels of silence = %v / %v, want -Inf", report.OutputPeakDBFS, report.InputRMSDBFS)
	}
}

func TestEmulate_EPAttenuatesTreble(t *testing.T) {
	t.Parallel()

	level := func(speed vhs.TapeSpeed) float64 {
		src := audiotest.NewSineSource(44100, 1, 44100, 12000, 0.5)
		_, report, err := EmulateToPCM16(src, vhs.Resolve(false, speed, false).Options(44100), 0)
		if err != nil {
			t.Fatalf("EmulateToPCM16() error = %v", err)
		}
		return report.OutputRMSDBFS
	}

	sp, ep := level(vhs.SP), level(vhs.EP)
	if ep >= sp-12 {
		t.Errorf("EP output %v dBFS, want at least 12 dB below SP %v dBFS", ep, sp)
	}
}

type failingSink struct {
	after  int
	writes int
}

var errSinkFull = errors.New("sink full")

func (f *failingSink) WritePCM16([]int16) error {
	f.writes++
	if f.writes > f.after {
		return errSinkFull
	}
	return nil
}

func (f *failingSink) Close() error { return nil }

func TestEmulate_Errors(t *testing.T) {
	t.Parallel()

	sink := &failingSink{after: 2}
	report, err := Emulate(audiotest.NewSilentSource(44100, 2, 10000), sink, vhs.DefaultOptions(), 1000)
	if !errors.Is(err, errSinkFull) {
		t.Errorf("Emulate() error = %v, want %v", err, errSinkFull)
	}
	if report.Blocks != 2 {
		t.Errorf("Blocks = %d, want 2", report.Blocks)
	}

	bad := vhs.DefaultOptions()
	bad.Passes = 0
	if _, err := Emulate(audiotest.NewSilentSource(44100, 2, 10), sink, bad, 0); !errors.Is(err, vhs.ErrInvalidPasses) {
		t.Errorf("Emulate() error = %v, want %v", err, vhs.ErrInvalidPasses)
	}

	boom := errors.New("decode failed")
	src := audiotest.NewSilentSource(44100, 2, 10000)
	src.Err, src.ErrAt = boom, 3000
	if _, _, err := EmulateToPCM16(src, vhs.DefaultOptions(), 0); !errors.Is(err, boom) {
		t.Errorf("EmulateToPCM16() error = %v, want %v", err, boom)
	}
}
