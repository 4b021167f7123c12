// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedEncoding  = errors.New("only integer PCM WAV is supported")
	ErrUnsupportedBitDepth  = errors.New("WAV bit depth must be 8, 16, 24 or 32")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrInvalidChannels      = errors.New("channel count must be positive")
	ErrPartialFrame         = errors.New("sample count is not a whole number of frames")
)
