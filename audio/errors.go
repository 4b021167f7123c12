// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize     = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat      = errors.New("no decoder registered for format")
	ErrInvalidChannels    = errors.New("channel layout must be mono or stereo")
	ErrInvalidBlockFrames = errors.New("block size must be positive")
	ErrInvalidRate        = errors.New("sample rate must be positive")
	ErrSinkClosed         = errors.New("sink is closed")
)
