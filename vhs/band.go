// SPDX-License-Identifier: EPL-2.0

package vhs

// BandPair is one pass of band limiting: a lowpass stage for the upper band
// edge and a highpass stage for the lower one.
type BandPair struct {
	Low  OnePole // lowpass, cutoff = upper edge
	High OnePole // highpass, cutoff = lower edge
}

// CascadedBand is every pass for one channel. All pairs share the same
// coefficients and differ only in accumulated state.
type CascadedBand []BandPair

// NewCascadedBand builds passes pairs that keep lowCutoff..highCutoff.
func NewCascadedBand(passes int, rate, lowCutoff, highCutoff float64) (CascadedBand, error) {
	if passes <= 0 {
		return nil, configError("passes", passes, ErrInvalidPasses)
	}

	var pair BandPair
	if err := pair.Low.Configure(rate, highCutoff); err != nil {
		return nil, err
	}
	if err := pair.High.Configure(rate, lowCutoff); err != nil {
		return nil, err
	}

	band := make(CascadedBand, passes)
	for i := range band {
		band[i] = pair
	}

	return band, nil
}

// Filter runs s through every lowpass stage in pass order, then through
// every highpass stage in pass order.
func (b CascadedBand) Filter(s float64) float64 {
	for i := range b {
		s = b[i].Low.Lowpass(s)
	}
	for i := range b {
		s = b[i].High.Highpass(s)
	}
	return s
}

func (b CascadedBand) Reset() {
	for i := range b {
		b[i].Low.Reset()
		b[i].High.Reset()
	}
}

func (b CascadedBand) Passes() int { return len(b) }
