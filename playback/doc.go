// SPDX-License-Identifier: EPL-2.0

// Package playback streams emulated PCM to the default audio device
// through oto.
//
// A Player is an audio.Sink, so it can stand in for a WAV writer at the
// end of the pipeline:
//
//	p, err := playback.Open(44100, 2)
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//
//	_, err = vhsaudio.Emulate(src, p, opts, 0)
//
// oto allows a single device context per process. Every Player shares it,
// so all players must use the same sample rate and channel count.
package playback
