// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/vhsaudio/utils"
)

// Block is one chunk of interleaved signed 16-bit PCM.
type Block struct {
	Samples    []int16
	Frames     int
	Channels   int
	SampleRate int
	// Offset is the index of the first frame in the stream.
	Offset int64
}

// PCM16Reader cuts a Source into fixed-size int16 blocks. The last block
// may be shorter.
type PCM16Reader struct {
	src    Source
	frames int
	fbuf   []float32
	block  Block
	done   bool
}

func NewPCM16Reader(src Source, blockFrames int) (*PCM16Reader, error) {
	if blockFrames <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockFrames, blockFrames)
	}
	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: source has %d channels", ErrInvalidChannels, channels)
	}

	return &PCM16Reader{
		src:    src,
		frames: blockFrames,
		fbuf:   make([]float32, blockFrames*channels),
		block: Block{
			Samples:    make([]int16, blockFrames*channels),
			Channels:   channels,
			SampleRate: src.SampleRate(),
		},
	}, nil
}

// Next returns the following block. The returned samples are only valid until
// the next call. At the end of the stream it returns io.EOF.
func (p *PCM16Reader) Next() (*Block, error) {
	if p.done {
		return nil, io.EOF
	}

	n := 0
	empty := 0
	for n < len(p.fbuf) {
		got, err := p.src.ReadSamples(p.fbuf[n:])
		n += got
		if errors.Is(err, io.EOF) {
			p.done = true
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if got == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
		}
	}

	frames := n / p.block.Channels
	if frames == 0 {
		p.done = true
		return nil, io.EOF
	}

	samples := frames * p.block.Channels
	p.block.Offset += int64(p.block.Frames)
	p.block.Frames = frames
	p.block.Samples = p.block.Samples[:cap(p.block.Samples)][:samples]
	utils.QuantizeInto(p.block.Samples, p.fbuf[:samples])

	return &p.block, nil
}

func (p *PCM16Reader) Channels() int   { return p.block.Channels }
func (p *PCM16Reader) SampleRate() int { return p.block.SampleRate }
