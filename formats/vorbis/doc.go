// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis with github.com/jfreymuth/oggvorbis.
//
// Channel count and rate come from the stream header:
//
//	file, _ := os.Open("tape.ogg")
//	source, err := vorbis.Decoder{}.Decode(file)
package vorbis
