// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/vhsaudio/audio"
	"github.com/ik5/vhsaudio/config"
	"github.com/ik5/vhsaudio/formats/wav"
	"github.com/ik5/vhsaudio/vhs"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSineWAV(t *testing.T, rate, frames int) string {
	t.Helper()

	samples := make([]int16, frames)
	for n := range samples {
		samples[n] = int16(8000 * math.Sin(2*math.Pi*1000*float64(n)/float64(rate)))
	}

	var buf bytes.Buffer
	require.NoError(t, wav.WriteWAV16(&buf, rate, 1, samples))

	path := filepath.Join(t.TempDir(), "in.wav")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func decodeWAV(t *testing.T, r io.Reader) (rate, channels, frames int) {
	t.Helper()

	src, err := wav.Decoder{}.Decode(r)
	require.NoError(t, err)
	defer src.Close()

	buf := make([]float32, 4096)
	var samples int
	for {
		n, err := src.ReadSamples(buf)
		samples += n
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}

	return src.SampleRate(), src.Channels(), samples / src.Channels()
}

func TestApplyFlags(t *testing.T) {
	var f cliFlags
	cmd := &cobra.Command{Use: "test"}
	bindFlags(cmd, &f)

	require.NoError(t, cmd.ParseFlags([]string{
		"--vhs-hifi=false",
		"--vhs-speed", "ep",
		"--passes", "3",
		"-r", "48000",
		"-i", "in.mp3",
		"--per-channel-preemphasis",
	}))

	cfg := config.NewConfig()
	cfg.Output = "from-config.wav"
	cfg.Preemphasis.CornerHz = 7000
	applyFlags(cmd, &f, cfg)

	assert.False(t, cfg.HiFi)
	assert.Equal(t, "ep", cfg.TapeSpeed)
	assert.Equal(t, 3, cfg.Passes)
	assert.Equal(t, 48000, cfg.SampleRate)
	assert.Equal(t, "in.mp3", cfg.Input)
	assert.Equal(t, "per-channel", cfg.Preemphasis.Mode)

	// untouched flags leave config values alone
	assert.Equal(t, "from-config.wav", cfg.Output)
	assert.Equal(t, 7000.0, cfg.Preemphasis.CornerHz)
	assert.Equal(t, config.DefaultBlockFrames, cfg.BlockFrames)
}

func TestApplyFlags_HiFiSwitch(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"default", nil, true},
		{"separate 0", []string{"--vhs-hifi", "0"}, false},
		{"separate 1", []string{"--vhs-hifi", "1"}, true},
		{"inline false", []string{"--vhs-hifi=false"}, false},
		{"inline 0", []string{"--vhs-hifi=0"}, false},
		{"separate true", []string{"--vhs-hifi", "true"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f cliFlags
			cmd := &cobra.Command{Use: "test"}
			bindFlags(cmd, &f)

			args := append(tt.args, "--vhs-speed", "ep")
			require.NoError(t, cmd.ParseFlags(args))
			assert.Empty(t, cmd.Flags().Args(), "value must not be left as a positional argument")

			cfg := config.NewConfig()
			if len(tt.args) > 0 {
				cfg.HiFi = !tt.want
			}
			applyFlags(cmd, &f, cfg)

			assert.Equal(t, tt.want, cfg.HiFi)
			assert.Equal(t, "ep", cfg.TapeSpeed)
		})
	}
}

func TestApplyFlags_HiFiRejectsGarbage(t *testing.T) {
	var f cliFlags
	cmd := &cobra.Command{Use: "test"}
	bindFlags(cmd, &f)

	assert.Error(t, cmd.ParseFlags([]string{"--vhs-hifi", "maybe"}))
}

func TestApplyFlags_PreemphasisMode(t *testing.T) {
	var f cliFlags
	cmd := &cobra.Command{Use: "test"}
	bindFlags(cmd, &f)
	require.NoError(t, cmd.ParseFlags([]string{"--preemphasis-mode", "per-channel"}))

	cfg := config.NewConfig()
	applyFlags(cmd, &f, cfg)
	assert.Equal(t, "per-channel", cfg.Preemphasis.Mode)

	opts, err := cfg.EmulationOptions()
	require.NoError(t, err)
	assert.Equal(t, vhs.PerChannel, opts.PreemphasisMode)
}

func TestConvert_OriginalSwitchSpelling(t *testing.T) {
	in := writeSineWAV(t, 44100, 4410)

	out, err := execute(t, "-i", in, "-o", "-", "--vhs-hifi", "0", "--vhs-speed", "ep")
	require.NoError(t, err)

	_, channels, frames := decodeWAV(t, strings.NewReader(out))
	assert.Equal(t, 1, channels, "linear track is mono")
	assert.Equal(t, 4410, frames)
}

func TestApplyFlags_ConfigFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hifi: false\ntape_speed: lp\npasses: 2\n"), 0o600))

	var f cliFlags
	cmd := &cobra.Command{Use: "test"}
	bindFlags(cmd, &f)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--passes", "5"}))

	cfg, err := config.Load(f.configPath)
	require.NoError(t, err)
	applyFlags(cmd, &f, cfg)

	assert.False(t, cfg.HiFi)
	assert.Equal(t, "lp", cfg.TapeSpeed)
	assert.Equal(t, 5, cfg.Passes)
}

func TestPresetsCmd(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "NAME")
	assert.Equal(t, []string{"hifi", "20", "20000", "2", "8"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"linear-ep", "100", "4000", "1", "8"}, strings.Fields(lines[4]))
}

func TestResponseCmd(t *testing.T) {
	out, err := execute(t, "response", "--vhs-hifi=false", "--vhs-speed", "ep", "--freq", "1000,10000")
	require.NoError(t, err)

	gains := map[int]float64{}
	sc := bufio.NewScanner(strings.NewReader(out))
	sc.Scan() // header
	for sc.Scan() {
		var hz, db float64
		_, err := fmt.Sscanf(sc.Text(), "%f %f", &hz, &db)
		require.NoError(t, err)
		gains[int(math.Round(hz/1000))] = db
	}

	require.Len(t, gains, 2)
	assert.InDelta(t, -4, gains[1], 1)
	assert.Less(t, gains[10], -60.0)
}

func TestResponseCmd_BadFFTSize(t *testing.T) {
	_, err := execute(t, "response", "--fft-size", "1000")
	assert.Error(t, err)
}

func TestConvert_File(t *testing.T) {
	in := writeSineWAV(t, 44100, 4410)
	outPath := filepath.Join(t.TempDir(), "out.wav")

	_, err := execute(t, "-i", in, "-o", outPath, "--vhs-hifi=false", "--vhs-speed", "lp")
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	rate, channels, frames := decodeWAV(t, f)
	assert.Equal(t, 44100, rate)
	assert.Equal(t, 1, channels)
	assert.Equal(t, 4410, frames)
}

func TestConvert_Stdout(t *testing.T) {
	in := writeSineWAV(t, 44100, 4410)

	out, err := execute(t, "-i", in, "-o", "-")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out, "RIFF"))
	assert.Len(t, out, 44+4410*2*2)

	rate, channels, frames := decodeWAV(t, strings.NewReader(out))
	assert.Equal(t, 44100, rate)
	assert.Equal(t, 2, channels)
	assert.Equal(t, 4410, frames)
}

func TestConvert_Errors(t *testing.T) {
	in := writeSineWAV(t, 8000, 100)

	_, err := execute(t)
	assert.ErrorIs(t, err, errNoInput)

	_, err = execute(t, "-i", in)
	assert.ErrorIs(t, err, errNoOutput)

	_, err = execute(t, "-i", "song.flac", "-o", "-")
	assert.ErrorIs(t, err, audio.ErrUnknownFormat)

	_, err = execute(t, "-i", filepath.Join(t.TempDir(), "missing.wav"), "-o", "-")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, "-i", in, "-o", "-", "--passes", "0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "-i", in, "-o", "-", "--log-level", "chatty")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestTeeSink(t *testing.T) {
	a, b := &audio.MemorySink{}, &audio.MemorySink{}
	tee := teeSink{a, b}

	require.NoError(t, tee.WritePCM16([]int16{1, 2}))
	require.NoError(t, tee.WritePCM16([]int16{3}))
	require.NoError(t, tee.Close())

	assert.Equal(t, []int16{1, 2, 3}, a.Samples)
	assert.Equal(t, a.Samples, b.Samples)
	assert.ErrorIs(t, tee.WritePCM16([]int16{4}), audio.ErrSinkClosed)
}
