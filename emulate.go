// SPDX-License-Identifier: EPL-2.0

package vhsaudio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/vhsaudio/analysis"
	"github.com/ik5/vhsaudio/audio"
	"github.com/ik5/vhsaudio/internal/logging"
	"github.com/ik5/vhsaudio/vhs"
	"github.com/sirupsen/logrus"
)

// DefaultBlockFrames is the block size used when none is given.
const DefaultBlockFrames = 1024

// Report summarises one Emulate run. Levels are in dBFS and are -Inf for
// silence.
type Report struct {
	Frames     int64
	Blocks     int
	SampleRate int
	Channels   int

	InputPeakDBFS  float64
	InputRMSDBFS   float64
	OutputPeakDBFS float64
	OutputRMSDBFS  float64
}

// Emulate plays src through a tape deck described by opts and writes the
// result to sink.
//
// The source is resampled to opts.SampleRate and mixed to opts.Channels,
// then cut into blocks of blockFrames frames (DefaultBlockFrames when
// blockFrames <= 0). Each block is quantised to 16-bit, processed in place
// and handed to the sink. Emulate closes neither src nor sink.
func Emulate(src audio.Source, sink audio.Sink, opts vhs.Options, blockFrames int) (Report, error) {
	if blockFrames <= 0 {
		blockFrames = DefaultBlockFrames
	}

	proc, err := vhs.NewProcessor(opts)
	if err != nil {
		return Report{}, fmt.Errorf("configuring processor: %w", err)
	}

	resampled, err := audio.NewResampler(src, opts.SampleRate)
	if err != nil {
		return Report{}, fmt.Errorf("resampling: %w", err)
	}
	mixed, err := audio.NewChannelMixer(resampled, opts.Channels)
	if err != nil {
		return Report{}, fmt.Errorf("channel layout: %w", err)
	}
	reader, err := audio.NewPCM16Reader(mixed, blockFrames)
	if err != nil {
		return Report{}, fmt.Errorf("framing: %w", err)
	}

	log := logging.Fields("pipeline")
	log.WithFields(logrus.Fields{
		"source_rate":     src.SampleRate(),
		"source_channels": src.Channels(),
		"rate":            opts.SampleRate,
		"channels":        opts.Channels,
		"block_frames":    blockFrames,
	}).Debug("emulation started")

	report := Report{SampleRate: opts.SampleRate, Channels: opts.Channels}
	var in, out analysis.Level

	for {
		block, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("reading block %d: %w", report.Blocks, err)
		}

		in.Add(block.Samples)
		if err := proc.Process(block.Samples, block.Frames); err != nil {
			return report, fmt.Errorf("processing block %d: %w", report.Blocks, err)
		}
		out.Add(block.Samples)

		if err := sink.WritePCM16(block.Samples); err != nil {
			return report, fmt.Errorf("writing block %d: %w", report.Blocks, err)
		}

		report.Blocks++
		report.Frames += int64(block.Frames)
	}

	report.InputPeakDBFS = in.PeakDBFS()
	report.InputRMSDBFS = in.RMSDBFS()
	report.OutputPeakDBFS = out.PeakDBFS()
	report.OutputRMSDBFS = out.RMSDBFS()

	log.WithFields(logrus.Fields{
		"frames":        report.Frames,
		"blocks":        report.Blocks,
		"out_peak_dbfs": report.OutputPeakDBFS,
		"out_rms_dbfs":  report.OutputRMSDBFS,
	}).Info("emulation finished")

	return report, nil
}

// EmulateToPCM16 runs Emulate into memory and returns the interleaved result.
func EmulateToPCM16(src audio.Source, opts vhs.Options, blockFrames int) ([]int16, Report, error) {
	var sink audio.MemorySink

	report, err := Emulate(src, &sink, opts, blockFrames)
	if err != nil {
		return nil, report, err
	}

	return sink.Samples, report, nil
}
