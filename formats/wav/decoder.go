// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/ik5/vhsaudio/audio"
	"github.com/ik5/vhsaudio/formats/internal/intpcm"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Decoder reads integer PCM WAV files, plain or WAVE_FORMAT_EXTENSIBLE.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := intpcm.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	switch dec.WavAudioFormat {
	case formatPCM:
	case formatExtensible:
		tag, err := extensibleSubFormat(rs)
		if err != nil {
			return nil, err
		}
		if tag != formatPCM {
			return nil, fmt.Errorf("%w: extensible sub-format %#x", ErrUnsupportedEncoding, tag)
		}
	default:
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	depth := int(dec.BitDepth)
	if !intpcm.SupportedBitDepth(depth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedWavLayout
	}

	src := intpcm.NewSource(dec, format.SampleRate, format.NumChannels, depth)
	src.Unsigned = true

	return src, nil
}
