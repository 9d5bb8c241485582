// SPDX-License-Identifier: EPL-2.0

package pairing

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ik5/visqolbatch/audio"
)

// Pair is one reference/degraded work item. Key identifies it in reports.
type Pair struct {
	Key       string
	Reference audio.Input
	Degraded  audio.Input
}

// DuplicatePolicy decides what happens when two degraded files share a stem.
type DuplicatePolicy int

const (
	// DuplicateLastWins keeps the later path and logs a warning.
	DuplicateLastWins DuplicatePolicy = iota
	// DuplicateFail rejects the input with ErrDuplicateStem.
	DuplicateFail
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateLastWins:
		return "last-wins"
	case DuplicateFail:
		return "fail"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

// Result holds the pairs in reference order along with the stems that could
// not be paired.
type Result struct {
	Pairs []Pair
	// Unmatched reference stems, in reference order.
	Unmatched []string
	// Duplicates lists degraded stems seen more than once.
	Duplicates []string
}

// Matcher pairs references with degraded files by stem.
type Matcher struct {
	Policy DuplicatePolicy
	Logger *slog.Logger
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Match pairs each reference with the degraded file sharing its stem.
// It does not touch the filesystem and returns equal results for equal input.
func (m Matcher) Match(refs, degs []string) (Result, error) {
	logger := m.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var res Result

	byStem := make(map[string]string, len(degs))
	for _, deg := range degs {
		stem := Stem(deg)
		if prev, ok := byStem[stem]; ok {
			if m.Policy == DuplicateFail {
				return Result{}, fmt.Errorf("%w: %q (%s, %s)", ErrDuplicateStem, stem, prev, deg)
			}
			logger.Warn("duplicate degraded stem, keeping last", "stem", stem, "dropped", prev, "kept", deg)
			res.Duplicates = append(res.Duplicates, stem)
		}
		byStem[stem] = deg
	}

	for _, ref := range refs {
		stem := Stem(ref)
		deg, ok := byStem[stem]
		if !ok {
			logger.Warn("no degraded file for reference", "stem", stem, "reference", ref)
			res.Unmatched = append(res.Unmatched, stem)
			continue
		}

		res.Pairs = append(res.Pairs, Pair{
			Key:       stem,
			Reference: audio.FileInput(ref),
			Degraded:  audio.FileInput(deg),
		})
	}

	logger.Debug("matched files", "pairs", len(res.Pairs), "unmatched", len(res.Unmatched))

	if len(res.Pairs) == 0 {
		return res, ErrNoMatchingFiles
	}
	return res, nil
}

// FromArrays builds in-memory pairs from parallel slices of mono buffers at a
// shared rate. Pairs are keyed by zero padded index. Each reference and its
// degraded buffer must have the same length.
func FromArrays(refs, degs [][]float64, sampleRate int) ([]Pair, error) {
	if len(refs) != len(degs) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrCountMismatch, len(refs), len(degs))
	}
	if len(refs) == 0 {
		return nil, ErrNoMatchingFiles
	}

	width := len(fmt.Sprint(len(refs) - 1))
	pairs := make([]Pair, len(refs))
	for i := range refs {
		if len(refs[i]) != len(degs[i]) {
			return nil, fmt.Errorf("%w: pair %d has %d vs %d samples", ErrLengthMismatch, i, len(refs[i]), len(degs[i]))
		}

		pairs[i] = Pair{
			Key:       fmt.Sprintf("%0*d", width, i),
			Reference: audio.BufferInput(refs[i], sampleRate),
			Degraded:  audio.BufferInput(degs[i], sampleRate),
		}
	}

	return pairs, nil
}
