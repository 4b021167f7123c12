// SPDX-License-Identifier: EPL-2.0

package vhs

import "math"

// OnePole is a first order RC filter. The same state serves as a lowpass,
// or as a highpass by subtracting the lowpass output from the input.
type OnePole struct {
	timeInterval float64
	cutoff       float64
	tau          float64
	alpha        float64
	prev         float64
}

// NewOnePole returns a filter configured for rate and cutoffHz.
func NewOnePole(rate, cutoffHz float64) (OnePole, error) {
	var f OnePole
	if err := f.Configure(rate, cutoffHz); err != nil {
		return OnePole{}, err
	}
	return f, nil
}

// Configure sets the filter coefficients. A zero or negative rate or cutoff
// is rejected and the previous coefficients are kept. The accumulated output
// is left as is; call Reset to clear it.
func (f *OnePole) Configure(rate, cutoffHz float64) error {
	if !(rate > 0) {
		return configError("sample_rate", rate, ErrInvalidSampleRate)
	}
	if !(cutoffHz > 0) {
		return configError("cutoff", cutoffHz, ErrInvalidCutoff)
	}

	f.timeInterval = 1 / rate
	f.tau = 1 / (cutoffHz * 2 * math.Pi)
	f.cutoff = cutoffHz
	f.alpha = f.timeInterval / (f.tau + f.timeInterval)

	return nil
}

func (f *OnePole) Reset() { f.prev = 0 }

// Lowpass feeds x through the filter and returns the new output.
func (f *OnePole) Lowpass(x float64) float64 {
	stage1 := x * f.alpha
	stage2 := f.prev - f.prev*f.alpha
	f.prev = stage1 + stage2
	return f.prev
}

// Highpass performs the same update as Lowpass and returns what the lowpass
// removed.
func (f *OnePole) Highpass(x float64) float64 {
	return x - f.Lowpass(x)
}

func (f *OnePole) Cutoff() float64  { return f.cutoff }
func (f *OnePole) Alpha() float64   { return f.alpha }
func (f *OnePole) Tau() float64     { return f.tau }
func (f *OnePole) Configured() bool { return f.alpha > 0 }
