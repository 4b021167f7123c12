// SPDX-License-Identifier: EPL-2.0

// Package vhsaudio emulates the audio path of a VHS video recorder.
//
// A decoded file is resampled, mixed to the deck's channel layout and sent
// through the tape chain implemented by package vhs: a cascaded bandpass
// whose edges depend on the recording mode, followed by treble preemphasis,
// analog limiting and the matching deemphasis.
//
// # Quick Start
//
//	reg := formats.NewRegistry()
//	dec, _ := audio.DecoderForPath(reg, "song.mp3")
//	file, _ := os.Open("song.mp3")
//	src, _ := dec.Decode(file)
//
//	// linear track recorded at extended play
//	opts := vhs.Resolve(false, vhs.EP, false).Options(44100)
//	samples, report, err := vhsaudio.EmulateToPCM16(src, opts, 0)
//
//	out, _ := os.Create("song-ep.wav")
//	wav.WriteWAV16(out, report.SampleRate, report.Channels, samples)
//
// # Recording modes
//
// Hi-Fi decks record a frequency-modulated stereo track and keep nearly the
// whole audible band (20 Hz to 20 kHz). The linear track is written by a
// stationary head, so its bandwidth falls with tape speed: about 10 kHz at
// SP, 7 kHz at LP and 4 kHz at EP, mono unless linear stereo is requested.
//
// # Streaming
//
// Emulate writes each processed block to an audio.Sink instead of collecting
// it, which keeps memory flat for long inputs. formats/wav.Writer and
// playback.Player are sinks.
package vhsaudio
