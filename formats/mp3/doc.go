// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III with github.com/hajimehoshi/go-mp3.
//
// The decoder always yields two channels, duplicating mono streams, at the
// rate stored in the file:
//
//	file, _ := os.Open("tape.mp3")
//	source, err := mp3.Decoder{}.Decode(file)
package mp3
