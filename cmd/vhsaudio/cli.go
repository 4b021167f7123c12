// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ik5/vhsaudio/analysis"
	"github.com/ik5/vhsaudio/config"
	"github.com/ik5/vhsaudio/internal/logging"
	"github.com/ik5/vhsaudio/vhs"
	"github.com/spf13/cobra"
)

const defaultFFTSize = 8192

var defaultReportFrequencies = []float64{50, 100, 1000, 4000, 7000, 10000, 15000}

// cliFlags holds raw flag values. They replace config values only when the
// flag was given on the command line.
type cliFlags struct {
	configPath   string
	logLevel     string
	input        string
	output       string
	hifi         bool
	speed        string
	linearStereo bool
	rate         int
	passes       int
	preemphasis  bool
	corner       float64
	mode         string
	perChannel   bool
	blockFrames  int
	play         bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var (
		flags cliFlags
		cfg   *config.Config
	)

	rootCmd := &cobra.Command{
		Use:           "vhsaudio",
		Short:         "Make audio sound like it was played from a VHS tape",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &flags, loaded)
			if err := loaded.Validate(); err != nil {
				return err
			}
			if err := logging.Setup(loaded.LogLevel, os.Stderr); err != nil {
				return err
			}
			loaded.LogEnvOverrides(logging.Fields("config"))
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return convert(cfg, stdout)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	bindFlags(rootCmd, &flags)
	rootCmd.AddCommand(newPresetsCmd(), newResponseCmd(&cfg))

	return rootCmd
}

// bindFlags registers the deck settings as persistent flags, shared with
// the subcommands, and the conversion settings as local flags.
func bindFlags(cmd *cobra.Command, f *cliFlags) {
	// Deck configuration
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "",
		"YAML configuration file (default ./"+config.DefaultFileName+" when present)")
	pf.StringVar(&f.logLevel, "log-level", config.DefaultLogLevel,
		"Log level: trace, debug, info, warn, error")
	f.hifi = config.DefaultHiFi
	pf.Var((*switchValue)(&f.hifi), "vhs-hifi",
		"1 emulates the Hi-Fi track, 0 the linear track")
	pf.StringVar(&f.speed, "vhs-speed", config.DefaultTapeSpeed,
		"Tape speed for the linear track: sp, lp or ep")
	pf.BoolVar(&f.linearStereo, "linear-stereo", false,
		"Keep two channels on the linear track")
	pf.IntVarP(&f.rate, "rate", "r", config.DefaultSampleRate,
		"Processing and output sample rate in Hz")
	pf.IntVar(&f.passes, "passes", config.DefaultPasses,
		"Number of cascaded filter passes")
	pf.BoolVar(&f.preemphasis, "preemphasis", config.DefaultPreemphasis,
		"Boost treble before the limiter and cut it after")
	pf.Float64Var(&f.corner, "preemphasis-corner", config.DefaultPreemphasisCorner,
		"Preemphasis corner frequency in Hz")
	pf.StringVar(&f.mode, "preemphasis-mode", config.DefaultPreemphasisMode,
		"Preemphasis filter routing: cross-channel or per-channel")
	pf.BoolVar(&f.perChannel, "per-channel-preemphasis", false,
		"Shorthand for --preemphasis-mode per-channel")

	// Conversion
	cmd.Flags().StringVarP(&f.input, "input", "i", "",
		"Input audio file (wav, aiff, mp3, ogg)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "",
		"Output WAV file, or - for stdout")
	cmd.Flags().IntVar(&f.blockFrames, "block-frames", config.DefaultBlockFrames,
		"Frames processed per block")
	cmd.Flags().BoolVar(&f.play, "play", false,
		"Play the result on the default audio device")
}

// applyFlags copies every flag the user set explicitly into cfg.
func applyFlags(cmd *cobra.Command, f *cliFlags, cfg *config.Config) {
	fs := cmd.Flags()

	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fs.Changed("input") {
		cfg.Input = f.input
	}
	if fs.Changed("output") {
		cfg.Output = f.output
	}
	if fs.Changed("vhs-hifi") {
		cfg.HiFi = f.hifi
	}
	if fs.Changed("vhs-speed") {
		cfg.TapeSpeed = f.speed
	}
	if fs.Changed("linear-stereo") {
		cfg.LinearStereo = f.linearStereo
	}
	if fs.Changed("rate") {
		cfg.SampleRate = f.rate
	}
	if fs.Changed("passes") {
		cfg.Passes = f.passes
	}
	if fs.Changed("preemphasis") {
		cfg.Preemphasis.Enabled = f.preemphasis
	}
	if fs.Changed("preemphasis-corner") {
		cfg.Preemphasis.CornerHz = f.corner
	}
	if fs.Changed("preemphasis-mode") {
		cfg.Preemphasis.Mode = f.mode
	}
	if fs.Changed("per-channel-preemphasis") && f.perChannel {
		cfg.Preemphasis.Mode = vhs.PerChannel.String()
	}
	if fs.Changed("block-frames") {
		cfg.BlockFrames = f.blockFrames
	}
	if fs.Changed("play") {
		cfg.Play = f.play
	}
}

// switchValue is a boolean flag that takes its value as a separate
// argument, so "--vhs-hifi 0" works as well as "--vhs-hifi=false".
type switchValue bool

func (v *switchValue) String() string { return strconv.FormatBool(bool(*v)) }
func (v *switchValue) Type() string   { return "0|1" }

func (v *switchValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*v = switchValue(b)
	return nil
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the deck presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-10s %8s %8s %8s %6s\n", "NAME", "LOW", "HIGH", "CHANNELS", "PASSES")
			for _, p := range vhs.Presets() {
				fmt.Fprintf(out, "%-10s %8.0f %8.0f %8d %6d\n",
					p.Name, p.LowCutoff, p.HighCutoff, p.Channels, p.Passes)
			}
		},
	}
}

func newResponseCmd(cfg **config.Config) *cobra.Command {
	var (
		fftSize int
		freqs   []float64
	)

	cmd := &cobra.Command{
		Use:   "response",
		Short: "Print the frequency response of the configured deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := (*cfg).EmulationOptions()
			if err != nil {
				return err
			}

			points, err := analysis.Response(opts, fftSize)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%10s %9s\n", "HZ", "DB")
			for _, hz := range freqs {
				p, ok := analysis.Nearest(points, hz)
				if !ok {
					continue
				}
				fmt.Fprintf(out, "%10.1f %9.2f\n", p.FrequencyHz, p.GainDB)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&fftSize, "fft-size", defaultFFTSize,
		"Impulse length, a power of two")
	cmd.Flags().Float64SliceVar(&freqs, "freq", defaultReportFrequencies,
		"Frequencies to report, in Hz")

	return cmd
}
