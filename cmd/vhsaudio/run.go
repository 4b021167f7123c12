// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/vhsaudio"
	"github.com/ik5/vhsaudio/audio"
	"github.com/ik5/vhsaudio/config"
	"github.com/ik5/vhsaudio/formats"
	"github.com/ik5/vhsaudio/formats/wav"
	"github.com/ik5/vhsaudio/internal/logging"
	"github.com/ik5/vhsaudio/playback"
	"github.com/ik5/vhsaudio/vhs"
	"github.com/sirupsen/logrus"
)

const stdoutName = "-"

var (
	errNoInput  = errors.New("no input: use --input or set input in the config file")
	errNoOutput = errors.New("no output: use --output, --play, or both")
)

func convert(cfg *config.Config, stdout io.Writer) error {
	log := logging.Fields("cli")

	if cfg.Input == "" {
		return errNoInput
	}
	if cfg.Output == "" && !cfg.Play {
		return errNoOutput
	}

	opts, err := cfg.EmulationOptions()
	if err != nil {
		return err
	}

	dec, err := audio.DecoderForPath(formats.NewRegistry(), cfg.Input)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"input":   cfg.Input,
		"decoder": fmt.Sprintf("%T", dec),
	}).Debug("decoder selected")

	in, err := os.Open(cfg.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	src, err := dec.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", cfg.Input, err)
	}
	defer src.Close()

	sink, err := openSinks(cfg, opts, stdout)
	if err != nil {
		return err
	}

	report, err := vhsaudio.Emulate(src, sink, opts, cfg.BlockFrames)
	if closeErr := sink.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"frames":      report.Frames,
		"seconds":     float64(report.Frames) / float64(report.SampleRate),
		"input_peak":  fmt.Sprintf("%.1f dBFS", report.InputPeakDBFS),
		"output_peak": fmt.Sprintf("%.1f dBFS", report.OutputPeakDBFS),
	}).Info("conversion finished")

	return nil
}

func openSinks(cfg *config.Config, opts vhs.Options, stdout io.Writer) (audio.Sink, error) {
	var sinks teeSink

	switch cfg.Output {
	case "":
	case stdoutName:
		sinks = append(sinks, &wavStdoutSink{w: stdout, rate: opts.SampleRate, channels: opts.Channels})
	default:
		f, err := os.Create(cfg.Output)
		if err != nil {
			return nil, err
		}
		w, err := wav.NewWriter(f, opts.SampleRate, opts.Channels)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		sinks = append(sinks, &wavFileSink{Writer: w, f: f})
	}

	if cfg.Play {
		p, err := playback.Open(opts.SampleRate, opts.Channels)
		if err != nil {
			_ = sinks.Close()
			return nil, err
		}
		sinks = append(sinks, p)
	}

	return sinks, nil
}

// teeSink writes every block to each of its sinks in order.
type teeSink []audio.Sink

func (t teeSink) WritePCM16(samples []int16) error {
	for _, s := range t {
		if err := s.WritePCM16(samples); err != nil {
			return err
		}
	}
	return nil
}

func (t teeSink) Close() error {
	var errs []error
	for _, s := range t {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

// wavFileSink owns the file behind a wav.Writer.
type wavFileSink struct {
	*wav.Writer
	f *os.File
}

func (s *wavFileSink) Close() error {
	return errors.Join(s.Writer.Close(), s.f.Close())
}

// wavStdoutSink buffers the whole stream because a WAV header carries the
// data size up front and stdout cannot seek back to patch it.
type wavStdoutSink struct {
	audio.MemorySink
	w        io.Writer
	rate     int
	channels int
}

func (s *wavStdoutSink) Close() error {
	if err := s.MemorySink.Close(); err != nil {
		return err
	}
	return wav.WriteWAV16(s.w, s.rate, s.channels, s.Samples)
}
