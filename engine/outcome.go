// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"time"
)

// Kind classifies why an invocation failed. The zero value means success.
type Kind string

const (
	KindNone              Kind = ""
	KindEngineUnavailable Kind = "engine_unavailable"
	KindPreprocessing     Kind = "preprocessing_error"
	KindEngine            Kind = "engine_error"
	KindTimeout           Kind = "timeout"
	KindUnparsable        Kind = "unparsable_output"
	// KindInternal is a recovered panic.
	KindInternal Kind = "internal_error"
	// KindCanceled marks a pair that was never dispatched.
	KindCanceled Kind = "canceled"
)

// Kinds lists every failure kind, for reporting.
func Kinds() []Kind {
	return []Kind{
		KindEngineUnavailable,
		KindPreprocessing,
		KindEngine,
		KindTimeout,
		KindUnparsable,
		KindInternal,
		KindCanceled,
	}
}

func (k Kind) String() string {
	if k == KindNone {
		return "none"
	}
	return string(k)
}

// Outcome is the result of scoring one pair.
type Outcome struct {
	Score   float64
	Elapsed time.Duration
	Kind    Kind
	Message string
}

// Success reports whether the outcome carries a score.
func (o Outcome) Success() bool {
	return o.Kind == KindNone
}

func (o Outcome) String() string {
	if o.Success() {
		return fmt.Sprintf("MOS-LQO %.3f in %s", o.Score, o.Elapsed.Round(time.Millisecond))
	}
	return fmt.Sprintf("%s: %s", o.Kind, o.Message)
}

// Succeeded builds a successful outcome.
func Succeeded(score float64, elapsed time.Duration) Outcome {
	return Outcome{Score: score, Elapsed: elapsed}
}

// Failed builds a failed outcome of the given kind.
func Failed(kind Kind, elapsed time.Duration, format string, args ...any) Outcome {
	return Outcome{Kind: kind, Elapsed: elapsed, Message: fmt.Sprintf(format, args...)}
}
