// SPDX-License-Identifier: EPL-2.0

package vhs

import (
	"fmt"
	"strings"
)

// DefaultPreemphasisCorner is the corner used for both emphasis stages.
// Real decks vary; 10 kHz is an estimate.
const DefaultPreemphasisCorner = 10000.0

// PreemphasisMode selects which channel filters touch a sample.
type PreemphasisMode int

const (
	// CrossChannel runs every channel's filter over each sample, which is
	// how the reference renderer behaves. Channel 0's filter state is
	// therefore also driven by channel 1's samples.
	CrossChannel PreemphasisMode = iota
	// PerChannel runs only the sample's own channel filter.
	PerChannel
)

func (m PreemphasisMode) String() string {
	switch m {
	case CrossChannel:
		return "cross-channel"
	case PerChannel:
		return "per-channel"
	default:
		return fmt.Sprintf("PreemphasisMode(%d)", int(m))
	}
}

// ParsePreemphasisMode accepts the String() names.
func ParsePreemphasisMode(s string) (PreemphasisMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cross-channel", "cross":
		return CrossChannel, nil
	case "per-channel", "per":
		return PerChannel, nil
	default:
		return CrossChannel, configError("preemphasis_mode", s, ErrInvalidPreemphasisMode)
	}
}

// Preemphasis emulates the record-side high frequency boost and the
// playback-side cut of an analog tape deck. The pre and post filters exist
// only as a pair.
type Preemphasis struct {
	pre  []OnePole // highpass, added back to the signal
	post []OnePole // lowpass
	mode PreemphasisMode
}

func NewPreemphasis(channels int, rate, cornerHz float64, mode PreemphasisMode) (*Preemphasis, error) {
	if channels <= 0 {
		return nil, configError("channels", channels, ErrInvalidChannels)
	}

	f, err := NewOnePole(rate, cornerHz)
	if err != nil {
		return nil, err
	}

	p := &Preemphasis{
		pre:  make([]OnePole, channels),
		post: make([]OnePole, channels),
		mode: mode,
	}
	for i := range channels {
		p.pre[i] = f
		p.post[i] = f
	}

	return p, nil
}

// ApplyPre boosts the high end of sample s belonging to channel c.
func (p *Preemphasis) ApplyPre(c int, s float64) float64 {
	if p.mode == PerChannel {
		return s + p.pre[c].Highpass(s)
	}

	for i := range p.pre {
		s += p.pre[i].Highpass(s)
	}
	return s
}

// ApplyPost cuts the high end of sample s belonging to channel c.
func (p *Preemphasis) ApplyPost(c int, s float64) float64 {
	if p.mode == PerChannel {
		return p.post[c].Lowpass(s)
	}

	for i := range p.post {
		s = p.post[i].Lowpass(s)
	}
	return s
}

func (p *Preemphasis) Reset() {
	for i := range p.pre {
		p.pre[i].Reset()
		p.post[i].Reset()
	}
}

func (p *Preemphasis) Mode() PreemphasisMode { return p.mode }
func (p *Preemphasis) Channels() int         { return len(p.pre) }
