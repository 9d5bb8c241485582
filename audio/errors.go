// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrAmbiguousInput = errors.New("input must carry exactly one of path or samples")
	ErrEmptyStream    = errors.New("audio stream has no samples")
)
