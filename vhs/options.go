// SPDX-License-Identifier: EPL-2.0

package vhs

const (
	DefaultSampleRate = 44100
	DefaultPasses     = 8
)

// Options is everything a Processor needs. It is resolved once, before the
// first block is processed.
type Options struct {
	SampleRate          int
	Channels            int
	LowCutoffHz         float64 // highpass corner
	HighCutoffHz        float64 // lowpass corner
	Passes              int
	PreemphasisCornerHz float64
	EnablePreemphasis   bool
	PreemphasisMode     PreemphasisMode
}

// DefaultOptions returns the Hi-Fi preset at DefaultSampleRate.
func DefaultOptions() Options {
	return Resolve(true, SP, false).Options(DefaultSampleRate)
}

// Validate reports the first value a Processor would refuse.
func (o Options) Validate() error {
	if o.SampleRate <= 0 {
		return configError("sample_rate", o.SampleRate, ErrInvalidSampleRate)
	}
	if o.Channels != 1 && o.Channels != 2 {
		return configError("channels", o.Channels, ErrInvalidChannels)
	}
	if !(o.LowCutoffHz > 0) {
		return configError("low_cutoff", o.LowCutoffHz, ErrInvalidCutoff)
	}
	if !(o.HighCutoffHz > o.LowCutoffHz) {
		return configError("high_cutoff", o.HighCutoffHz, ErrInvalidCutoff)
	}
	if o.Passes <= 0 {
		return configError("passes", o.Passes, ErrInvalidPasses)
	}
	if o.EnablePreemphasis && !(o.PreemphasisCornerHz > 0) {
		return configError("preemphasis_corner", o.PreemphasisCornerHz, ErrInvalidCutoff)
	}

	return nil
}

func (o Options) bankConfig() BankConfig {
	return BankConfig{
		Channels:   o.Channels,
		SampleRate: float64(o.SampleRate),
		LowCutoff:  o.LowCutoffHz,
		HighCutoff: o.HighCutoffHz,
		Passes:     o.Passes,
	}
}
