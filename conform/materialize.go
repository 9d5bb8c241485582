// SPDX-License-Identifier: EPL-2.0

package conform

import (
	"fmt"
	"math"
)

// Materialize writes an in-memory mono buffer to a temporary conformant WAV at
// sampleRate. channels of 0 is read as 1.
//
// A buffer whose peak magnitude exceeds 1.0 is scaled down by that peak first,
// and a warning is logged.
func (n *Normalizer) Materialize(samples []float64, sampleRate, channels int) (*Conformant, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: empty sample buffer", ErrInvalidAudioData)
	}
	if channels > 1 {
		return nil, fmt.Errorf("%w: buffer must be one-dimensional, got %d channels", ErrInvalidAudioData, channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidAudioData, sampleRate)
	}

	peak := 0.0
	for i, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: non-finite sample at index %d", ErrInvalidAudioData, i)
		}
		peak = max(peak, math.Abs(s))
	}

	if peak > 1 {
		n.logger.Warn("sample buffer exceeds full scale, rescaling", "peak", peak, "samples", len(samples))

		scaled := make([]float64, len(samples))
		for i, s := range samples {
			scaled[i] = s / peak
		}
		samples = scaled
	}

	return n.write(samples, sampleRate)
}
