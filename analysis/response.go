// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	"github.com/ik5/vhsaudio/vhs"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// impulseLevel keeps the impulse well below the limiter so the chain stays linear.
const impulseLevel = 0.25

var (
	ErrInvalidFFTSize = errors.New("fft size must be a power of two of at least 16")
	ErrInvalidLength  = errors.New("measurement length must be positive")
	ErrInvalidFreq    = errors.New("frequency must be between 0 and Nyquist")
)

// Point is one bin of a magnitude response.
type Point struct {
	FrequencyHz float64
	GainDB      float64
}

// Response drives an impulse through a fresh processor built from opts and
// returns the magnitude of its transform, one point per bin from the first
// bin above DC up to Nyquist. Only the first channel is measured.
func Response(opts vhs.Options, fftSize int) ([]Point, error) {
	if fftSize < 16 || bits.OnesCount(uint(fftSize)) != 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	p, err := vhs.NewProcessor(opts)
	if err != nil {
		return nil, err
	}

	impulse := make([]float64, fftSize)
	for n := range impulse {
		var x float64
		if n == 0 {
			x = impulseLevel
		}
		impulse[n] = p.FilterSample(0, x)
	}

	fft := fourier.NewFFT(fftSize)
	coeffs := fft.Coefficients(nil, impulse)

	rate := float64(opts.SampleRate)
	points := make([]Point, 0, len(coeffs)-1)
	for k := 1; k < len(coeffs); k++ {
		points = append(points, Point{
			FrequencyHz: fft.Freq(k) * rate,
			GainDB:      vhs.MeasureDBFS(cmplx.Abs(coeffs[k]) / impulseLevel),
		})
	}

	return points, nil
}

// Nearest returns the point whose frequency is closest to hz.
func Nearest(points []Point, hz float64) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}

	best := points[0]
	for _, pt := range points[1:] {
		if math.Abs(pt.FrequencyHz-hz) < math.Abs(best.FrequencyHz-hz) {
			best = pt
		}
	}
	return best, true
}

// ToneGain feeds a sine of freqHz into the first channel of a fresh processor
// and returns the ratio of output to input RMS over frames samples, after
// discarding settle samples of start-up transient.
func ToneGain(opts vhs.Options, freqHz float64, frames, settle int) (float64, error) {
	if frames <= 0 || settle < 0 {
		return 0, fmt.Errorf("%w: frames=%d settle=%d", ErrInvalidLength, frames, settle)
	}
	if !(freqHz > 0) || freqHz >= float64(opts.SampleRate)/2 {
		return 0, fmt.Errorf("%w: %g Hz", ErrInvalidFreq, freqHz)
	}

	p, err := vhs.NewProcessor(opts)
	if err != nil {
		return 0, err
	}

	in := make([]float64, frames)
	out := make([]float64, frames)
	w := 2 * math.Pi * freqHz / float64(opts.SampleRate)

	for n := range settle + frames {
		x := impulseLevel * math.Sin(w*float64(n))
		y := p.FilterSample(0, x)
		if n >= settle {
			in[n-settle] = x
			out[n-settle] = y
		}
	}

	return RMS(out) / RMS(in), nil
}

// RMS is the root mean square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, 2) / math.Sqrt(float64(len(x)))
}
