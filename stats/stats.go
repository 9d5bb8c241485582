// SPDX-License-Identifier: EPL-2.0

// Package stats summarizes a batch of scoring outcomes.
package stats

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is one outcome as seen by the aggregator.
type Sample struct {
	Score   float64
	OK      bool
	Elapsed time.Duration
	// Skipped marks a sample that never ran. It counts as failed but is left
	// out of MeanElapsed.
	Skipped bool
}

// Scores describes the successful scores. It is only present when at least
// one sample succeeded.
type Scores struct {
	Mean float64
	Min  float64
	Max  float64
	// Std is the sample standard deviation, 0 for fewer than two scores.
	Std float64
}

type Statistics struct {
	Total       int
	Successful  int
	Failed      int
	SuccessRate float64
	// TotalElapsed is the wall clock of the whole batch.
	TotalElapsed time.Duration
	// MeanElapsed averages the per-pair durations of the samples that ran.
	MeanElapsed time.Duration
	Scores      *Scores
}

// Compute aggregates samples. wall is the batch's wall clock duration.
// The result does not depend on sample order.
func Compute(samples []Sample, wall time.Duration) Statistics {
	st := Statistics{
		Total:        len(samples),
		TotalElapsed: wall,
	}
	if st.Total == 0 {
		return st
	}

	var (
		sumElapsed time.Duration
		ran        int
		scores     = make([]float64, 0, len(samples))
	)
	for _, s := range samples {
		if !s.Skipped {
			sumElapsed += s.Elapsed
			ran++
		}
		if s.OK {
			scores = append(scores, s.Score)
		}
	}

	st.Successful = len(scores)
	st.Failed = st.Total - st.Successful
	st.SuccessRate = float64(st.Successful) / float64(st.Total)
	if ran > 0 {
		st.MeanElapsed = sumElapsed / time.Duration(ran)
	}

	if len(scores) > 0 {
		sc := &Scores{
			Mean: stat.Mean(scores, nil),
			Min:  floats.Min(scores),
			Max:  floats.Max(scores),
		}
		if len(scores) >= 2 {
			sc.Std = stat.StdDev(scores, nil)
		}
		st.Scores = sc
	}

	return st
}
