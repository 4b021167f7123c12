// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// StereoMixer presents any channel layout as two channels. Mono is copied to
// both sides, stereo passes through, and wider layouts average their even
// channels into left and their odd channels into right.
type StereoMixer struct {
	src Source
	tmp []float32
}

func NewStereoMixer(src Source) *StereoMixer {
	return &StereoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *StereoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMixer) Channels() int   { return 2 }
func (m *StereoMixer) BufSize() int    { return m.src.BufSize() }
func (m *StereoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *StereoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 2 {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / 2
	m.tmp = grow(m.tmp, frames*channels)

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	got := n / channels

	if channels == 1 {
		for f := range got {
			dst[2*f] = m.tmp[f]
			dst[2*f+1] = m.tmp[f]
		}
		return got * 2, err
	}

	left := float32(1.0) / float32((channels+1)/2)
	right := float32(1.0) / float32(channels/2)
	for f := range got {
		var l, r float32
		for c, s := range m.tmp[f*channels : (f+1)*channels] {
			if c%2 == 0 {
				l += s
			} else {
				r += s
			}
		}
		dst[2*f] = l * left
		dst[2*f+1] = r * right
	}

	return got * 2, err
}
