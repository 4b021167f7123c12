// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// Signed integer PCM at 8, 16, 24 or 32 bits is accepted in any channel
// count and sample rate. Samples come out as float32 in [-1.0, 1.0]:
//
//	file, _ := os.Open("tape.aif")
//	source, err := aiff.Decoder{}.Decode(file)
//
// Inputs that cannot seek are buffered in memory first, since the
// underlying decoder walks the chunk list.
package aiff
