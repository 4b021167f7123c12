// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/vhsaudio/audio"
	"github.com/ik5/vhsaudio/internal/logging"
	"github.com/sirupsen/logrus"
)

const (
	bytesPerSample = 2
	drainPoll      = 10 * time.Millisecond
)

// DrainTimeout bounds how long Close waits for queued audio to finish.
var DrainTimeout = 30 * time.Second

var (
	ErrContextMismatch = errors.New("playback device already opened with another format")
	ErrPartialFrame    = errors.New("sample count is not a whole number of frames")
)

var device struct {
	mu       sync.Mutex
	ctx      *oto.Context
	rate     int
	channels int
}

// deviceContext returns the process-wide oto context, creating it on the
// first call.
func deviceContext(rate, channels int) (*oto.Context, error) {
	device.mu.Lock()
	defer device.mu.Unlock()

	if device.ctx != nil {
		if device.rate != rate || device.channels != channels {
			return nil, fmt.Errorf("%w: open at %d Hz x %d, requested %d Hz x %d",
				ErrContextMismatch, device.rate, device.channels, rate, channels)
		}
		return device.ctx, nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	device.ctx = ctx
	device.rate = rate
	device.channels = channels

	return ctx, nil
}

// Player plays interleaved 16-bit PCM as it is written. WritePCM16 blocks
// while the device buffer is full, so a pipeline feeding a Player runs at
// real-time speed.
type Player struct {
	player   *oto.Player
	pw       *io.PipeWriter
	channels int
	buf      []byte
	written  int64
	closed   bool
	log      *logrus.Entry
}

// Open starts a player on the default output device.
func Open(sampleRate, channels int) (*Player, error) {
	if sampleRate <= 0 {
		return nil, audio.ErrInvalidRate
	}
	if channels != 1 && channels != 2 {
		return nil, audio.ErrInvalidChannels
	}

	ctx, err := deviceContext(sampleRate, channels)
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	p := &Player{
		player:   ctx.NewPlayer(pr),
		pw:       pw,
		channels: channels,
		log: logging.Fields("playback").WithFields(logrus.Fields{
			"rate":     sampleRate,
			"channels": channels,
		}),
	}
	p.player.Play()
	p.log.Info("playback started")

	return p, nil
}

func (p *Player) WritePCM16(samples []int16) error {
	if p.closed {
		return audio.ErrSinkClosed
	}
	if len(samples)%p.channels != 0 {
		return ErrPartialFrame
	}
	if err := p.player.Err(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	p.buf = EncodeS16LE(p.buf[:0], samples)
	if _, err := p.pw.Write(p.buf); err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	p.written += int64(len(samples) / p.channels)

	return nil
}

// Frames reports how many frames were queued for playback.
func (p *Player) Frames() int64 { return p.written }

// Close ends the stream and waits, up to DrainTimeout, for the device to
// play what is still buffered.
func (p *Player) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.pw.Close(); err != nil {
		return err
	}

	deadline := time.Now().Add(DrainTimeout)
	for p.player.IsPlaying() || p.player.BufferedSize() > 0 {
		if time.Now().After(deadline) {
			p.log.Warn("drain timed out, dropping buffered audio")
			break
		}
		time.Sleep(drainPoll)
	}

	err := p.player.Err()
	p.player.Pause()
	p.player.Close()
	p.log.WithField("frames", p.written).Info("playback finished")

	return err
}

// EncodeS16LE appends samples to dst as little-endian bytes.
func EncodeS16LE(dst []byte, samples []int16) []byte {
	dst = growBytes(dst, len(samples)*bytesPerSample)
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(s))
	}
	return dst
}

func growBytes(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	out := make([]byte, len(b), len(b)+n)
	copy(out, b)
	return out
}
