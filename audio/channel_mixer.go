// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// NewChannelMixer adapts src to the requested channel count. A source that
// already has the right layout is returned as is.
func NewChannelMixer(src Source, channels int) (Source, error) {
	switch {
	case src.Channels() == channels:
		return src, nil
	case channels == 1:
		return NewMonoMixer(src), nil
	case channels == 2:
		return NewStereoMixer(src), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
}
