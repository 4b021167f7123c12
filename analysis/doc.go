// SPDX-License-Identifier: EPL-2.0

// Package analysis measures what the tape emulation does to a signal.
//
// Response reports the magnitude response of a configured chain from its
// impulse response, ToneGain measures a single frequency with a steady sine,
// and Level tracks peak and RMS levels of a PCM stream.
package analysis
