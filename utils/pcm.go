// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// FullScale returns the magnitude that maps a signed integer sample of
// bitDepth bits to 1.0 when decoding: 2^(bitDepth-1).
func FullScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}

// IntToFloat decodes a signed PCM sample to [-1,1).
func IntToFloat(v int, bitDepth int) float64 {
	return float64(v) / FullScale(bitDepth)
}

// Clip limits x to [-1,1].
func Clip(x float64) float64 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}
	return x
}

// Quantize clips x and scales it to a signed integer of bitDepth bits.
// Rounding is symmetric (half away from zero) against 2^(bitDepth-1)-1, so
// 1.0 and -1.0 map to equal magnitudes. 8-bit output is offset to the
// unsigned range used by WAV.
func Quantize(x float64, bitDepth int) int {
	peak := FullScale(bitDepth) - 1
	q := int(math.Round(Clip(x) * peak))
	if bitDepth == 8 {
		return q + 128
	}
	return q
}
