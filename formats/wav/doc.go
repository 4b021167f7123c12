// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files.
//
// The Decoder walks the RIFF chunks with github.com/go-audio/wav and accepts
// integer PCM at 8, 16, 24 or 32 bits, in any channel count:
//
//	f, _ := os.Open("tape.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// Two writers produce 16-bit PCM. Writer is an audio.Sink on top of the
// go-audio encoder and needs an io.WriteSeeker such as an *os.File:
//
//	out, _ := os.Create("out.wav")
//	w, err := wav.NewWriter(out, 44100, 2)
//	err = w.WritePCM16(samples)
//	err = w.Close()
//
// WriteWAV16 emits the whole file in one call and works on any io.Writer:
//
//	err := wav.WriteWAV16(os.Stdout, 44100, 2, samples)
package wav
