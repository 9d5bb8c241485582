// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"io"

	"github.com/ik5/visqolbatch/batch"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Progress draws a bar for a batch run. A nil *Progress is valid and draws
// nothing, which is how quiet mode is expressed.
type Progress struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

// NewProgress returns a progress container rendering to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{
		p: mpb.New(mpb.WithWidth(64), mpb.WithOutput(w)),
	}
}

// Start adds the bar once the number of pairs is known. It fits
// batch.Options.OnStart.
func (pr *Progress) Start(md batch.Metadata) {
	if pr == nil {
		return
	}

	pr.bar = pr.p.AddBar(int64(md.TotalPairs),
		mpb.PrependDecorators(
			decor.Name("Scoring: "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
			decor.Name(" "),
			decor.EwmaETA(decor.ET_STYLE_GO, 60),
		),
	)
}

// Observe advances the bar by one pair. It fits batch.Options.OnOutcome.
func (pr *Progress) Observe(e batch.Entry) {
	if pr == nil || pr.bar == nil {
		return
	}
	pr.bar.EwmaIncrement(e.Outcome.Elapsed)
}

// Wait stops rendering. A bar left short by an interrupted run is aborted
// in place.
func (pr *Progress) Wait() {
	if pr == nil {
		return
	}
	if pr.bar != nil && !pr.bar.Completed() {
		pr.bar.Abort(false)
	}
	pr.p.Wait()
}
