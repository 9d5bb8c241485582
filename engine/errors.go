// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	// ErrEngineUnavailable is returned when the engine executable or its
	// model cannot be found.
	ErrEngineUnavailable = errors.New("scoring engine unavailable")
)
