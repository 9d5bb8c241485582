// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ik5/visqolbatch/audio"
	"github.com/ik5/visqolbatch/conform"
	"github.com/ik5/visqolbatch/pairing"
)

// DefaultTimeout bounds a single engine run.
const DefaultTimeout = 60 * time.Second

// Conformer turns an input into a file the engine accepts.
type Conformer interface {
	Normalize(in audio.Input) (*conform.Conformant, error)
}

// Config describes one engine installation.
type Config struct {
	Executable string
	Model      string
	// Timeout per invocation. Zero means DefaultTimeout.
	Timeout time.Duration
	// Conformer prepares both sides of a pair. Nil uses a default
	// conform.Normalizer.
	Conformer Conformer
	Logger    *slog.Logger
}

// Invoker scores pairs by running the engine as a subprocess.
// It is safe for concurrent use.
type Invoker struct {
	executable string
	model      string
	timeout    time.Duration
	conformer  Conformer
	logger     *slog.Logger
}

// New validates the executable and model paths once.
func New(cfg Config) (*Invoker, error) {
	if cfg.Executable == "" {
		return nil, fmt.Errorf("%w: no executable configured", ErrEngineUnavailable)
	}
	if _, ok := ExecutableAt(cfg.Executable)(); !ok {
		return nil, fmt.Errorf("%w: executable %s not found or not executable", ErrEngineUnavailable, cfg.Executable)
	}
	if _, ok := FileAt(cfg.Model)(); !ok {
		return nil, fmt.Errorf("%w: model %q not found", ErrEngineUnavailable, cfg.Model)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	conformer := cfg.Conformer
	if conformer == nil {
		conformer = conform.NewNormalizer(conform.Options{Logger: logger})
	}

	return &Invoker{
		executable: cfg.Executable,
		model:      cfg.Model,
		timeout:    timeout,
		conformer:  conformer,
		logger:     logger.With("component", "engine"),
	}, nil
}

func (inv *Invoker) Executable() string     { return inv.executable }
func (inv *Invoker) Model() string          { return inv.model }
func (inv *Invoker) Timeout() time.Duration { return inv.timeout }

// ScoreFiles scores a single reference/degraded file pair.
func (inv *Invoker) ScoreFiles(ctx context.Context, reference, degraded string) Outcome {
	return inv.Score(ctx, pairing.Pair{
		Key:       pairing.Stem(reference),
		Reference: audio.FileInput(reference),
		Degraded:  audio.FileInput(degraded),
	})
}

// Score normalizes both sides of pair, runs the engine and parses its score.
// Failures are reported in the Outcome, never as a panic or error.
//
// Cancellation of ctx does not stop a running engine; only the per-invocation
// timeout does.
func (inv *Invoker) Score(ctx context.Context, pair pairing.Pair) Outcome {
	start := time.Now()
	log := inv.logger.With("pair", pair.Key)

	log.Debug("stage", "stage", "preparing")
	if err := inv.available(); err != nil {
		log.Error("engine unavailable", "error", err)
		return Failed(KindEngineUnavailable, time.Since(start), "%v", err)
	}

	log.Debug("stage", "stage", "normalizing")
	ref, err := inv.conformer.Normalize(pair.Reference)
	if err != nil {
		log.Error("reference preprocessing failed", "error", err)
		return Failed(KindPreprocessing, time.Since(start), "reference %s: %v", pair.Reference, err)
	}
	defer inv.release(log, ref)

	deg, err := inv.conformer.Normalize(pair.Degraded)
	if err != nil {
		log.Error("degraded preprocessing failed", "error", err)
		return Failed(KindPreprocessing, time.Since(start), "degraded %s: %v", pair.Degraded, err)
	}
	defer inv.release(log, deg)

	log.Debug("stage", "stage", "invoking", "reference", ref.Path, "degraded", deg.Path)
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), inv.timeout)
	defer cancel()

	res := run(runCtx, inv.executable,
		"--reference_file", ref.Path,
		"--degraded_file", deg.Path,
		"--similarity_to_quality_model", inv.model,
		"--verbose",
	)
	elapsed := time.Since(start)

	switch {
	case res.timedOut:
		log.Error("engine timed out", "timeout", inv.timeout)
		return Failed(KindTimeout, elapsed, "engine exceeded %s timeout", inv.timeout)
	case res.err != nil:
		var exitErr *exec.ExitError
		if errors.As(res.err, &exitErr) {
			log.Error("engine failed", "exit_code", exitErr.ExitCode(), "stderr", res.stderr)
			return Failed(KindEngine, elapsed, "engine exited with code %d: %s", exitErr.ExitCode(), res.stderr)
		}
		log.Error("engine failed", "error", res.err)
		return Failed(KindEngine, elapsed, "running engine: %v", res.err)
	}

	log.Debug("stage", "stage", "parsing")
	score, ok := ParseScore(res.stdout)
	if !ok {
		log.Error("could not parse engine output", "stdout", res.stdout)
		return Failed(KindUnparsable, elapsed, "no MOS-LQO score in output: %s", strings.TrimSpace(res.stdout))
	}

	log.Info("scored pair", "mos_lqo", score, "elapsed", elapsed)
	return Succeeded(score, elapsed)
}

// available re-checks that the engine and model are still on disk.
func (inv *Invoker) available() error {
	for _, p := range []string{inv.executable, inv.model} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%w: %w", ErrEngineUnavailable, err)
		}
	}
	return nil
}

func (inv *Invoker) release(log *slog.Logger, c *conform.Conformant) {
	if err := c.Release(); err != nil {
		log.Warn("failed to remove temp file", "path", c.Path, "error", err)
	}
}
