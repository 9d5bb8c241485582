// SPDX-License-Identifier: EPL-2.0

package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Empty(t *testing.T) {
	t.Parallel()

	st := Compute(nil, time.Second)
	assert.Equal(t, Statistics{TotalElapsed: time.Second}, st)
	assert.Zero(t, st.SuccessRate)
	assert.Nil(t, st.Scores)
}

func TestCompute_SingleScore(t *testing.T) {
	t.Parallel()

	st := Compute([]Sample{{Score: 4.2, OK: true, Elapsed: 2 * time.Second}}, 3*time.Second)

	require.NotNil(t, st.Scores)
	assert.Equal(t, 1, st.Total)
	assert.Equal(t, 1.0, st.SuccessRate)
	assert.InDelta(t, 4.2, st.Scores.Mean, 1e-12)
	assert.InDelta(t, 4.2, st.Scores.Min, 1e-12)
	assert.InDelta(t, 4.2, st.Scores.Max, 1e-12)
	assert.Zero(t, st.Scores.Std)
	assert.Equal(t, 2*time.Second, st.MeanElapsed)
	assert.Equal(t, 3*time.Second, st.TotalElapsed)
}

func TestCompute_BesselCorrectedStd(t *testing.T) {
	t.Parallel()

	samples := []Sample{
		{Score: 2, OK: true},
		{Score: 4, OK: true},
		{Score: 4, OK: true},
		{Score: 4, OK: true},
		{Score: 5, OK: true},
		{Score: 5, OK: true},
		{Score: 7, OK: true},
		{Score: 9, OK: true},
	}

	st := Compute(samples, 0)
	require.NotNil(t, st.Scores)

	// population std is 2; the sample std divides by n-1
	assert.InDelta(t, 5.0, st.Scores.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0), st.Scores.Std, 1e-12)
	assert.Equal(t, 2.0, st.Scores.Min)
	assert.Equal(t, 9.0, st.Scores.Max)
}

func TestCompute_FailuresExcludedFromScores(t *testing.T) {
	t.Parallel()

	samples := []Sample{
		{Score: 4, OK: true, Elapsed: time.Second},
		{Score: 0, OK: false, Elapsed: 3 * time.Second},
		{Score: 2, OK: true, Elapsed: 2 * time.Second},
		{OK: false},
	}

	st := Compute(samples, 5*time.Second)

	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 2, st.Successful)
	assert.Equal(t, 2, st.Failed)
	assert.InDelta(t, 0.5, st.SuccessRate, 1e-12)
	assert.Equal(t, 1500*time.Millisecond, st.MeanElapsed)
	require.NotNil(t, st.Scores)
	assert.InDelta(t, 3.0, st.Scores.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt2, st.Scores.Std, 1e-12)
}

func TestCompute_AllFailed(t *testing.T) {
	t.Parallel()

	st := Compute([]Sample{{OK: false}, {OK: false}}, 0)
	assert.Equal(t, 0.0, st.SuccessRate)
	assert.Equal(t, 2, st.Failed)
	assert.Nil(t, st.Scores)
}

func TestCompute_OrderIndependent(t *testing.T) {
	t.Parallel()

	a := []Sample{{Score: 1, OK: true}, {Score: 3.5, OK: true}, {OK: false}, {Score: 2.25, OK: true}}
	b := []Sample{a[3], a[2], a[0], a[1]}

	sa, sb := Compute(a, 0), Compute(b, 0)
	assert.Equal(t, sa.Total, sb.Total)
	assert.Equal(t, sa.Successful, sb.Successful)
	assert.InDelta(t, sa.Scores.Mean, sb.Scores.Mean, 1e-12)
	assert.InDelta(t, sa.Scores.Std, sb.Scores.Std, 1e-12)
	assert.Equal(t, sa.Scores.Min, sb.Scores.Min)
	assert.Equal(t, sa.Scores.Max, sb.Scores.Max)
}

func TestCompute_SkippedExcludedFromElapsed(t *testing.T) {
	t.Parallel()

	st := Compute([]Sample{
		{Score: 4, OK: true, Elapsed: 2 * time.Second},
		{OK: false, Elapsed: 4 * time.Second},
		{OK: false, Skipped: true},
		{OK: false, Skipped: true},
	}, 5*time.Second)

	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 3, st.Failed)
	assert.InDelta(t, 0.25, st.SuccessRate, 1e-12)
	assert.Equal(t, 3*time.Second, st.MeanElapsed)
}

func TestCompute_AllSkipped(t *testing.T) {
	t.Parallel()

	st := Compute([]Sample{{Skipped: true}, {Skipped: true}}, time.Second)

	assert.Equal(t, 2, st.Failed)
	assert.Zero(t, st.MeanElapsed)
	assert.Nil(t, st.Scores)
}
