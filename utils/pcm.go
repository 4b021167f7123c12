// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

const pcm16Scale = 32768.0

// Float32ToInt16 quantizes a normalized sample to signed 16-bit PCM.
// The input is scaled by 32768, rounded, and clamped to [-32768, 32767],
// which makes it the exact inverse of Int16ToFloat32 for every int16.
func Float32ToInt16(x float32) int16 {
	v := math.Round(float64(x) * pcm16Scale)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// Int16ToFloat32 normalizes a signed 16-bit sample to [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / pcm16Scale
}

// FullScale returns the magnitude of the most negative value of a signed
// PCM sample of bitDepth bits. Unknown depths fall back to 16 bits.
func FullScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return pcm16Scale
	}
}

// IntToFloat32 normalizes a signed integer PCM sample of bitDepth bits.
func IntToFloat32(v int, bitDepth int) float32 {
	return float32(float64(v) / float64(FullScale(bitDepth)))
}

// QuantizeInto converts src into dst and returns the number of samples
// written, which is the shorter of the two lengths.
func QuantizeInto(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}
	return n
}
