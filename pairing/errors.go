// SPDX-License-Identifier: EPL-2.0

package pairing

import "errors"

var (
	ErrNoMatchingFiles = errors.New("no matching reference/degraded pairs")
	ErrDuplicateStem   = errors.New("duplicate degraded file stem")
	ErrNotDirectory    = errors.New("not a directory")
	ErrCountMismatch   = errors.New("reference and degraded counts differ")
	ErrLengthMismatch  = errors.New("reference and degraded lengths differ")
)
