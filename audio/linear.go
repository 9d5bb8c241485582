// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"

	"github.com/ik5/visqolbatch/utils"
)

// ResamplerKind selects the sample rate converter used during normalization.
type ResamplerKind string

const (
	// ResamplerLinear interpolates linearly over a re-indexed axis. It is not
	// anti-aliased.
	ResamplerLinear ResamplerKind = "linear"
	// ResamplerCubic streams through the Catmull-Rom Resampler with its
	// one-pole low-pass on downsampling. Output length may differ from the
	// linear converter by a sample.
	ResamplerCubic ResamplerKind = "cubic"
)

// TargetLength returns round(duration * dstRate) for n samples at srcRate.
func TargetLength(n, srcRate, dstRate int) int {
	duration := float64(n) / float64(srcRate)
	return int(math.Round(duration * float64(dstRate)))
}

// ResampleLinear converts mono samples from srcRate to dstRate.
// The output holds TargetLength samples placed uniformly between the first and
// last input sample, each linearly interpolated from its two neighbours.
// When the rates match, samples is returned as is.
func ResampleLinear(samples []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate || len(samples) == 0 {
		return samples
	}

	n := len(samples)
	outLen := max(TargetLength(n, srcRate, dstRate), 1)
	out := make([]float64, outLen)

	if outLen == 1 || n == 1 {
		for i := range out {
			out[i] = samples[0]
		}
		return out
	}

	span := float64(outLen - 1)
	for j := range out {
		x := float64(j*(n-1)) / span
		i := int(x)
		if i >= n-1 {
			out[j] = samples[n-1]
			continue
		}
		out[j] = utils.LinearInterpolate(samples[i], samples[i+1], x-float64(i))
	}

	return out
}
