// SPDX-License-Identifier: EPL-2.0

// Package vhs emulates the audio path of a consumer videotape recorder.
//
// The chain works on interleaved signed 16-bit PCM, one block at a time,
// and keeps its filter state between blocks:
//
//	normalize -> band limit -> pre-emphasis -> limiter -> de-emphasis -> quantize
//
// # Band limiting
//
// Each channel has a CascadedBand: a number of passes, each a pair of one
// pole RC stages. A sample goes through all lowpass stages first and then
// through all highpass stages, which gives a much steeper rolloff than a
// single RC stage.
//
// # Presets
//
// Resolve maps a tape format to a band:
//
//	Hi-Fi      20 Hz - 20 kHz  stereo
//	linear SP 100 Hz - 10 kHz  mono
//	linear LP 100 Hz -  7 kHz  mono
//	linear EP 100 Hz -  4 kHz  mono
//
// # Usage
//
//	opts := vhs.Resolve(false, vhs.EP, false).Options(44100)
//	proc, err := vhs.NewProcessor(opts)
//	if err != nil {
//	    return err
//	}
//	for _, block := range blocks {
//	    if err := proc.Process(block, len(block)/opts.Channels); err != nil {
//	        return err
//	    }
//	}
//
// Configuration mistakes surface as *ConfigError from NewProcessor. A
// Processor never reports clipping; loud input saturates like tape does.
package vhs
