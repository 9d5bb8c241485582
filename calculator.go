// SPDX-License-Identifier: EPL-2.0

package visqolbatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/visqolbatch/audio"
	"github.com/ik5/visqolbatch/batch"
	"github.com/ik5/visqolbatch/conform"
	"github.com/ik5/visqolbatch/engine"
	"github.com/ik5/visqolbatch/pairing"
)

// DefaultWorkers is the pool size used when Config.Workers is 0.
const DefaultWorkers = 4

// Config holds everything needed to score batches. The zero value locates
// the engine automatically and scores with DefaultWorkers.
type Config struct {
	// Executable and Model override engine discovery when set.
	Executable string
	Model      string
	// SelfDir anchors bundled engine paths. Empty means the running binary's
	// directory.
	SelfDir string

	Workers int
	Timeout time.Duration

	Profile   audio.Profile
	TempDir   string
	Resampler audio.ResamplerKind
	// DecodeCompressed enables the in-process AIFF, MP3 and Ogg decoders.
	DecodeCompressed bool

	Duplicates pairing.DuplicatePolicy

	Logger *slog.Logger
	// OnStart and OnOutcome are passed to batch.Options.
	OnStart   func(batch.Metadata)
	OnOutcome func(batch.Entry)
}

// Calculator pairs inputs, scores them with the engine and builds reports.
type Calculator struct {
	cfg        Config
	workers    int
	invoker    *engine.Invoker
	normalizer *conform.Normalizer
	logger     *slog.Logger
}

// NewCalculator resolves the engine and model and checks the configuration.
// Nothing is scored yet.
func NewCalculator(cfg Config) (*Calculator, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}
	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", batch.ErrInvalidWorkers, workers)
	}

	loc := engine.Locator{Executable: cfg.Executable, Model: cfg.Model, SelfDir: cfg.SelfDir}
	exe, model, err := loc.Locate()
	if err != nil {
		return nil, err
	}

	var decoders *audio.Registry
	if cfg.DecodeCompressed {
		decoders = conform.ExtendedDecoders()
	}

	normalizer := conform.NewNormalizer(conform.Options{
		Profile:   cfg.Profile,
		TempDir:   cfg.TempDir,
		Logger:    logger,
		Decoders:  decoders,
		Resampler: cfg.Resampler,
	})

	inv, err := engine.New(engine.Config{
		Executable: exe,
		Model:      model,
		Timeout:    cfg.Timeout,
		Conformer:  normalizer,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("engine located", "executable", exe, "model", model, "workers", workers)

	return &Calculator{
		cfg:        cfg,
		workers:    workers,
		invoker:    inv,
		normalizer: normalizer,
		logger:     logger,
	}, nil
}

// Invoker returns the engine invoker used for every pair.
func (c *Calculator) Invoker() *engine.Invoker {
	return c.invoker
}

// CalculateSingle scores one reference/degraded file pair.
func (c *Calculator) CalculateSingle(ctx context.Context, reference, degraded string) engine.Outcome {
	return c.invoker.ScoreFiles(ctx, reference, degraded)
}

// CalculateBatch discovers audio under both directories, pairs the files by
// stem and scores every pair.
//
// Setup problems (empty directories, nothing to pair, duplicate stems in
// strict mode) are returned before anything runs. Per-pair failures are
// reported in the Report.
func (c *Calculator) CalculateBatch(ctx context.Context, referenceDir, degradedDir string) (*batch.Report, error) {
	refs, err := pairing.Discover(referenceDir)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoReferenceFiles, referenceDir)
	}

	degs, err := pairing.Discover(degradedDir)
	if err != nil {
		return nil, err
	}
	if len(degs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDegradedFiles, degradedDir)
	}

	c.logger.Info("discovered audio files", "references", len(refs), "degraded", len(degs))

	matched, err := pairing.Matcher{Policy: c.cfg.Duplicates, Logger: c.logger}.Match(refs, degs)
	if err != nil {
		return nil, err
	}

	md := c.metadata()
	md.ReferenceDir = referenceDir
	md.DegradedDir = degradedDir
	md.Unmatched = matched.Unmatched
	md.Duplicates = matched.Duplicates

	return c.Run(ctx, matched.Pairs, md)
}

// CalculateArrays scores in-memory mono buffers pairwise. All buffers share
// sampleRate and each pair must have equal lengths.
func (c *Calculator) CalculateArrays(ctx context.Context, references, degraded [][]float64, sampleRate int) (*batch.Report, error) {
	pairs, err := pairing.FromArrays(references, degraded, sampleRate)
	if err != nil {
		return nil, err
	}

	return c.Run(ctx, pairs, c.metadata())
}

// Run scores prepared pairs. md supplies descriptive metadata for the report.
func (c *Calculator) Run(ctx context.Context, pairs []pairing.Pair, md batch.Metadata) (*batch.Report, error) {
	o, err := batch.New(c.invoker, batch.Options{
		Workers:   c.workers,
		Logger:    c.logger,
		OnStart:   c.cfg.OnStart,
		OnOutcome: c.cfg.OnOutcome,
		Metadata:  md,
	})
	if err != nil {
		return nil, err
	}

	return o.Run(ctx, pairs)
}

func (c *Calculator) metadata() batch.Metadata {
	return batch.Metadata{
		Executable: c.invoker.Executable(),
		Model:      c.invoker.Model(),
		Timeout:    c.invoker.Timeout(),
		Profile:    c.normalizer.Profile().String(),
	}
}
