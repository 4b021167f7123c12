// SPDX-License-Identifier: EPL-2.0

package vhs

import "math"

// DBFS returns the linear factor that scales a full-scale sample down (or
// up) by dB decibels: 10^(dB/20).
func DBFS(dB float64) float64 {
	return math.Pow(10, dB/20)
}

// AttenuateDBFS scales sample by dB decibels. Pass -20 to lower it by 20 dB.
func AttenuateDBFS(sample, dB float64) float64 {
	return sample * DBFS(dB)
}

// MeasureDBFS converts a normalized amplitude to dBFS.
// Silence yields -Inf.
func MeasureDBFS(sample float64) float64 {
	return 20 * math.Log10(math.Abs(sample))
}

// PCM16ToDBFS converts a signed 16-bit amplitude to dBFS.
func PCM16ToDBFS(v int16) float64 {
	return MeasureDBFS(float64(v) / pcmScale)
}
