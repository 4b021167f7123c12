// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"math"

	"github.com/ik5/vhsaudio/vhs"
	"gonum.org/v1/gonum/floats"
)

const pcm16Scale = 32768.0

// Level accumulates peak and RMS over a stream of 16-bit blocks.
// The zero value is ready to use.
type Level struct {
	peak    float64
	sumSq   float64
	samples int64
	scratch []float64
}

// Add folds samples into the running totals.
func (l *Level) Add(samples []int16) {
	if len(samples) == 0 {
		return
	}

	if cap(l.scratch) < len(samples) {
		l.scratch = make([]float64, len(samples))
	}
	x := l.scratch[:len(samples)]
	for i, s := range samples {
		x[i] = float64(s) / pcm16Scale
	}

	l.peak = max(l.peak, floats.Max(x), -floats.Min(x))
	l.sumSq += floats.Dot(x, x)
	l.samples += int64(len(x))
}

func (l *Level) Samples() int64 { return l.samples }
func (l *Level) Peak() float64  { return l.peak }

func (l *Level) RMS() float64 {
	if l.samples == 0 {
		return 0
	}
	return math.Sqrt(l.sumSq / float64(l.samples))
}

// PeakDBFS is -Inf for silence.
func (l *Level) PeakDBFS() float64 { return vhs.MeasureDBFS(l.Peak()) }

// RMSDBFS is -Inf for silence.
func (l *Level) RMSDBFS() float64 { return vhs.MeasureDBFS(l.RMS()) }
