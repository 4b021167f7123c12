// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/vhsaudio/vhs"
)

// maxEmptyReads bounds consecutive (0, nil) reads from a source.
const maxEmptyReads = 64

// antiAliasRatio places the anti-alias corner below the destination Nyquist.
const antiAliasRatio = 0.45

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// A one-pole lowpass per channel runs ahead of the interpolator when downsampling.
// When the rates match the source is passed through untouched.
type Resampler struct {
	src      Source
	srcRate  int
	dstRate  int
	ratio    float64 // srcRate / dstRate - how many source frames per output frame
	channels int

	// Window of 4 frames for cubic interpolation
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames [4][]float32
	real   [4]bool
	primed bool

	// Position between frames[1] and frames[2]
	pos float64

	// Buffered source frames
	srcBuf  []float32
	srcPos  int
	srcLen  int
	srcDone bool

	antiAlias []vhs.OnePole
}

// NewResampler wraps src so that it is read at dstRate.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidRate, src.SampleRate(), dstRate)
	}
	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: source has %d channels", ErrInvalidChannels, channels)
	}

	bufFrames := max(src.BufSize()/channels, 256)
	r := &Resampler{
		src:      src,
		srcRate:  src.SampleRate(),
		dstRate:  dstRate,
		ratio:    float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		srcBuf:   make([]float32, bufFrames*channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	if r.ratio > 1.0 {
		r.antiAlias = make([]vhs.OnePole, channels)
		for c := range r.antiAlias {
			f, err := vhs.NewOnePole(float64(r.srcRate), antiAliasRatio*float64(dstRate))
			if err != nil {
				return nil, fmt.Errorf("anti-alias filter: %w", err)
			}
			r.antiAlias[c] = f
		}
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame copies the next source frame into dst. It reports false once
// the source is exhausted.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	empty := 0
	for r.srcPos+r.channels > r.srcLen {
		if r.srcDone {
			return false, nil
		}

		// keep a partial frame at the head of the buffer
		rest := copy(r.srcBuf, r.srcBuf[r.srcPos:r.srcLen])
		r.srcPos, r.srcLen = 0, rest

		n, err := r.src.ReadSamples(r.srcBuf[rest:])
		r.srcLen += n
		if errors.Is(err, io.EOF) {
			r.srcDone = true
			continue
		}
		if err != nil {
			return false, fmt.Errorf("%w", err)
		}
		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return false, io.ErrNoProgress
			}
		}
	}

	copy(dst, r.srcBuf[r.srcPos:r.srcPos+r.channels])
	r.srcPos += r.channels

	for c := range r.antiAlias {
		dst[c] = float32(r.antiAlias[c].Lowpass(float64(dst[c])))
	}

	return true, nil
}

// shift slides the window by one frame. Past the end of the source the last
// frame is repeated and marked as padding.
func (r *Resampler) shift() error {
	last := r.frames[0]
	copy(r.frames[:], r.frames[1:])
	copy(r.real[:], r.real[1:])
	r.frames[3] = last

	ok, err := r.nextFrame(r.frames[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.frames[3], r.frames[2])
	}
	r.real[3] = ok

	return nil
}

func (r *Resampler) prime() (bool, error) {
	ok, err := r.nextFrame(r.frames[1])
	if err != nil || !ok {
		return false, err
	}
	copy(r.frames[0], r.frames[1])
	r.real[0], r.real[1] = true, true

	for i := 2; i < 4; i++ {
		ok, err := r.nextFrame(r.frames[i])
		if err != nil {
			return false, err
		}
		if !ok {
			copy(r.frames[i], r.frames[i-1])
		}
		r.real[i] = ok
	}

	r.primed = true
	return true, nil
}

// ReadSamples produces dst samples at r.dstRate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.srcRate == r.dstRate {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		ok, err := r.prime()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, io.EOF
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
		}

		// t0 is padding: every source frame has been consumed
		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		t := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = catmullRom(r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c], t)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}

// catmullRom interpolates between y1 and y2 at t in [0, 1).
func catmullRom(y0, y1, y2, y3, t float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return ((a0*t+a1)*t+a2)*t + a3
}
