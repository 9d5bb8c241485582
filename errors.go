// SPDX-License-Identifier: EPL-2.0

package visqolbatch

import "errors"

var (
	ErrNoReferenceFiles = errors.New("no audio files in reference directory")
	ErrNoDegradedFiles  = errors.New("no audio files in degraded directory")
)
