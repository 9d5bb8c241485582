// SPDX-License-Identifier: EPL-2.0

package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/visqolbatch/engine"
	"github.com/ik5/visqolbatch/pairing"
	"github.com/ik5/visqolbatch/stats"
)

// MaxRecommendedWorkers is the pool size above which New logs a warning.
const MaxRecommendedWorkers = 32

var ErrInvalidWorkers = errors.New("worker count must be at least 1")

// Scorer scores one pair. Implementations report failures in the Outcome.
type Scorer interface {
	Score(ctx context.Context, pair pairing.Pair) engine.Outcome
}

// Entry is one pair's result. Index is the pair's position in the input.
type Entry struct {
	Index   int
	Pair    pairing.Pair
	Outcome engine.Outcome
}

// Metadata describes a run. Callers fill in the descriptive fields; Run sets
// the identity, timing and size fields.
type Metadata struct {
	RunID        string
	StartedAt    time.Time
	ReferenceDir string
	DegradedDir  string
	TotalPairs   int
	MaxWorkers   int
	Executable   string
	Model        string
	Timeout      time.Duration
	Profile      string
	// Unmatched lists reference stems that had no degraded partner.
	Unmatched []string
	// Duplicates lists degraded stems found more than once.
	Duplicates []string
}

// Report is the complete result of a run, entries in input order.
type Report struct {
	Entries     []Entry
	Statistics  stats.Statistics
	Metadata    Metadata
	Interrupted bool
}

type Options struct {
	Workers int
	Logger  *slog.Logger
	// OnOutcome is called once per scored pair, in completion order, from a
	// single goroutine.
	OnOutcome func(Entry)
	// OnStart is called once before the first pair is dispatched.
	OnStart  func(Metadata)
	Metadata Metadata
}

// Orchestrator scores pairs on a fixed pool of workers.
type Orchestrator struct {
	scorer    Scorer
	workers   int
	logger    *slog.Logger
	onOutcome func(Entry)
	onStart   func(Metadata)
	metadata  Metadata
}

func New(scorer Scorer, opts Options) (*Orchestrator, error) {
	if opts.Workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, opts.Workers)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "batch")

	if opts.Workers > MaxRecommendedWorkers {
		logger.Warn("worker count above recommended maximum", "workers", opts.Workers, "recommended", MaxRecommendedWorkers)
	}

	return &Orchestrator{
		scorer:    scorer,
		workers:   opts.Workers,
		logger:    logger,
		onOutcome: opts.OnOutcome,
		onStart:   opts.OnStart,
		metadata:  opts.Metadata,
	}, nil
}

type job struct {
	index int
	pair  pairing.Pair
}

// Run scores every pair exactly once and builds the report.
//
// When ctx is cancelled no further pairs are dispatched. Pairs already
// running finish on their own, the rest are reported as engine.KindCanceled,
// and Run returns the report together with ctx.Err(). A cancel that arrives
// after every pair was dispatched still marks the report Interrupted.
func (o *Orchestrator) Run(ctx context.Context, pairs []pairing.Pair) (*Report, error) {
	started := time.Now()

	md := o.metadata
	md.RunID = uuid.NewString()
	md.StartedAt = started
	md.TotalPairs = len(pairs)
	md.MaxWorkers = o.workers

	log := o.logger.With("run_id", md.RunID)
	log.Info("starting batch", "pairs", len(pairs), "workers", o.workers)
	if o.onStart != nil {
		o.onStart(md)
	}

	jobs := make(chan job)
	results := make(chan Entry, o.workers)

	var wg sync.WaitGroup
	for range o.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- o.score(ctx, log, j)
			}
		}()
	}

	entries := make([]Entry, 0, len(pairs))
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for e := range results {
			entries = append(entries, e)
			if o.onOutcome != nil {
				o.onOutcome(e)
			}
		}
	}()

	dispatched := o.dispatch(ctx, jobs, pairs)
	close(jobs)
	wg.Wait()
	close(results)
	<-collected

	// A cancel that lands after the last dispatch still marks the run.
	interrupted := dispatched < len(pairs) || ctx.Err() != nil
	if dispatched < len(pairs) {
		log.Warn("batch interrupted", "dispatched", dispatched, "canceled", len(pairs)-dispatched)
		for i := dispatched; i < len(pairs); i++ {
			entries = append(entries, Entry{
				Index:   i,
				Pair:    pairs[i],
				Outcome: engine.Failed(engine.KindCanceled, 0, "not started: batch interrupted"),
			})
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int { return a.Index - b.Index })

	samples := make([]stats.Sample, len(entries))
	for i, e := range entries {
		samples[i] = stats.Sample{
			Score:   e.Outcome.Score,
			OK:      e.Outcome.Success(),
			Elapsed: e.Outcome.Elapsed,
			Skipped: e.Outcome.Kind == engine.KindCanceled,
		}
	}

	report := &Report{
		Entries:     entries,
		Statistics:  stats.Compute(samples, time.Since(started)),
		Metadata:    md,
		Interrupted: interrupted,
	}

	log.Info("batch finished",
		"successful", report.Statistics.Successful,
		"failed", report.Statistics.Failed,
		"elapsed", report.Statistics.TotalElapsed,
	)

	if interrupted {
		return report, ctx.Err()
	}
	return report, nil
}

// dispatch feeds pairs to the workers until done or ctx is cancelled and
// returns how many were handed out. Pairs go out in input order.
func (o *Orchestrator) dispatch(ctx context.Context, jobs chan<- job, pairs []pairing.Pair) int {
	for i, p := range pairs {
		if ctx.Err() != nil {
			return i
		}

		select {
		case <-ctx.Done():
			return i
		case jobs <- job{index: i, pair: p}:
		}
	}
	return len(pairs)
}

// score runs one job, turning a panic into a KindInternal outcome.
func (o *Orchestrator) score(ctx context.Context, log *slog.Logger, j job) (e Entry) {
	e = Entry{Index: j.index, Pair: j.pair}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while scoring pair", "pair", j.pair.Key, "panic", r, "stack", string(debug.Stack()))
			e.Outcome = engine.Failed(engine.KindInternal, time.Since(start), "panic: %v", r)
		}
	}()

	e.Outcome = o.scorer.Score(ctx, j.pair)
	return e
}
