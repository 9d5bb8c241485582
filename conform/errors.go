// SPDX-License-Identifier: EPL-2.0

package conform

import "errors"

var (
	// ErrUnsupportedFormat is returned for containers other than integer PCM
	// RIFF/WAVE that no registered decoder can read.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrInvalidAudioData is returned for unreadable, empty or malformed audio.
	ErrInvalidAudioData = errors.New("invalid audio data")
)
