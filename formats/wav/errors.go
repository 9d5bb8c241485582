// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile         = errors.New("not a WAV file")
	ErrUnsupportedWavData = errors.New("WAV data is not integer PCM")
	ErrUnsupportedDepth   = errors.New("unsupported PCM bit depth")
	ErrNoChannels         = errors.New("WAV header reports zero channels")
	ErrNoSamples          = errors.New("WAV data chunk is empty")
	ErrMalformedHeader    = errors.New("malformed WAV header")
)
