// SPDX-License-Identifier: EPL-2.0

package vhs

import (
	"math"

	"github.com/sirupsen/logrus"
)

const pcmScale = 32768.0

// Processor applies the tape audio path to interleaved 16-bit PCM. It owns
// all filter state; separate pipelines need separate processors.
//
// A Processor is not safe for concurrent use.
type Processor struct {
	opts     Options
	banks    BankManager
	emphasis *Preemphasis
}

// NewProcessor validates opts and allocates the filter state.
func NewProcessor(opts Options) (*Processor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	p := &Processor{opts: opts}

	cfg := opts.bankConfig()
	p.banks.SetChannels(cfg.Channels)
	p.banks.SetRate(cfg.SampleRate)
	p.banks.SetCutoff(cfg.LowCutoff, cfg.HighCutoff)
	p.banks.SetPasses(cfg.Passes)
	if err := p.banks.Init(); err != nil {
		return nil, err
	}

	if opts.EnablePreemphasis {
		emphasis, err := NewPreemphasis(opts.Channels, cfg.SampleRate, opts.PreemphasisCornerHz, opts.PreemphasisMode)
		if err != nil {
			return nil, err
		}
		p.emphasis = emphasis
	}

	logrus.WithFields(logrus.Fields{
		"component":   "vhs",
		"sample_rate": opts.SampleRate,
		"channels":    opts.Channels,
		"low_hz":      opts.LowCutoffHz,
		"high_hz":     opts.HighCutoffHz,
		"passes":      opts.Passes,
		"preemphasis": opts.EnablePreemphasis,
		"mode":        opts.PreemphasisMode,
	}).Debug("processor configured")

	return p, nil
}

// Process runs frames interleaved frames of buf through the filter chain in
// place. Filter state carries over from the previous call, so consecutive
// blocks are filtered as one continuous signal. Out of range values are
// clamped, never reported.
func (p *Processor) Process(buf []int16, frames int) error {
	if !p.banks.Ready() {
		return ErrNotReady
	}

	channels := p.opts.Channels
	if frames < 0 || len(buf) < frames*channels {
		return ErrShortBuffer
	}

	for i := 0; i < frames*channels; i += channels {
		for c := range channels {
			s := float64(buf[i+c]) / pcmScale
			buf[i+c] = quantize(p.FilterSample(c, s))
		}
	}

	return nil
}

// FilterSample runs one normalized sample of channel c through the band
// filter, the emphasis stages and the analog limiter. The result is still
// normalized and not yet quantized.
func (p *Processor) FilterSample(c int, s float64) float64 {
	s = p.banks.Bank()[c].Filter(s)

	if p.emphasis != nil {
		s = p.emphasis.ApplyPre(c, s)
	}

	// analog limiting
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}

	if p.emphasis != nil {
		s = p.emphasis.ApplyPost(c, s)
	}

	return s
}

// Reset zeroes all filter history. Coefficients are kept.
func (p *Processor) Reset() {
	p.banks.Bank().Reset()
	if p.emphasis != nil {
		p.emphasis.Reset()
	}
}

func (p *Processor) Options() Options { return p.opts }
func (p *Processor) Channels() int    { return p.opts.Channels }
func (p *Processor) SampleRate() int  { return p.opts.SampleRate }

func quantize(s float64) int16 {
	v := math.Round(s * pcmScale)
	if v < math.MinInt16 {
		return math.MinInt16
	}
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	return int16(v)
}
