// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio integer decoders to audio.Source.
package intpcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/vhsaudio/utils"
)

// Reader is the subset of the go-audio wav and aiff decoders that Source uses.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source normalises integer PCM read from a go-audio decoder.
type Source struct {
	// Unsigned marks 8-bit data stored with a +128 bias, as WAV does.
	// Otherwise 8-bit data is two's complement, as in AIFF.
	Unsigned bool

	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
}

func NewSource(dec Reader, sampleRate, channels, bitDepth int) *Source {
	return &Source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Close() error    { return nil }
func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.dec.Format(),
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	} else if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	data := s.intBuf.Data[:n]
	switch {
	case s.bitDepth != 8:
	case s.Unsigned:
		for i, v := range data {
			data[i] = v - 128
		}
	default:
		// signed 8-bit may arrive as the raw byte
		for i, v := range data {
			data[i] = int(int8(uint8(v)))
		}
	}
	for i, v := range data {
		dst[i] = utils.IntToFloat32(v, s.bitDepth)
	}

	// a short read is the end of the data chunk
	if n < len(dst) {
		return n, io.EOF
	}
	return n, err
}

// ReadSeeker returns r itself when it can seek, and otherwise buffers the
// whole stream in memory since go-audio decoders need to seek.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}

// SupportedBitDepth reports whether IntToFloat32 can normalise depth.
func SupportedBitDepth(depth int) bool {
	switch depth {
	case 8, 16, 24, 32:
		return true
	}
	return false
}
