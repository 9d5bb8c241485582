// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ik5/visqolbatch"
	"github.com/ik5/visqolbatch/audio"
	"github.com/ik5/visqolbatch/batch"
	"github.com/ik5/visqolbatch/engine"
	"github.com/ik5/visqolbatch/internal/cli"
	"github.com/ik5/visqolbatch/internal/config"
	"github.com/ik5/visqolbatch/internal/output"
	"github.com/ik5/visqolbatch/pairing"
)

var version = "0.1.0"

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

// CLI defines the command-line interface
type CLI struct {
	ReferenceDir string `arg:"" name:"reference_dir" help:"Directory of reference audio files." optional:""`
	DegradedDir  string `arg:"" name:"degraded_dir" help:"Directory of degraded audio files." optional:""`

	Output  string `short:"o" type:"path" placeholder:"FILE" help:"Write results as JSON to this file."`
	Workers int    `short:"w" default:"${workers}" help:"Number of pairs scored in parallel."`

	VisqolPath string        `name:"visqol-path" default:"${visqol_path}" placeholder:"PATH" help:"ViSQOL executable; located automatically when empty."`
	ModelPath  string        `name:"model-path" default:"${model_path}" placeholder:"PATH" help:"ViSQOL SVR model file; located automatically when empty."`
	Timeout    time.Duration `default:"${timeout}" help:"Engine time limit per pair."`

	TargetRate       int    `name:"target-rate" default:"${target_rate}" placeholder:"HZ" help:"Rate used when an input rate is not accepted by the engine (16000 or 48000)."`
	Resampler        string `default:"${resampler}" enum:"linear,cubic" help:"Sample rate converter (linear or cubic)."`
	TempDir          string `name:"temp-dir" default:"${temp_dir}" placeholder:"DIR" help:"Directory for converted temporary files."`
	StrictPairs      bool   `name:"strict-pairs" default:"${strict_pairs}" help:"Fail when a degraded stem appears more than once."`
	DecodeCompressed bool   `name:"decode-compressed" default:"${decode_compressed}" help:"Decode AIFF, MP3 and Ogg Vorbis inputs in process."`

	Verbose bool `short:"v" help:"Enable debug logging."`
	Quiet   bool `short:"q" help:"Only print errors."`
	Check   bool `help:"Check the installation and exit."`
	Version bool `help:"Show version information."`
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.LoadDotEnv(); err != nil {
		cli.PrintWarning(fmt.Sprintf("reading .env: %v", err))
	}
	cfg := config.Load()

	cliArgs := &CLI{}
	kctx := kong.Parse(cliArgs,
		kong.Name("visqol-batch"),
		kong.Description("Batch ViSQOL audio quality scoring"),
		kong.UsageOnError(),
		cfg.Vars(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cliArgs.Version {
		cli.PrintVersion(os.Stdout, version)
		return exitOK
	}

	logger := newLogger(cliArgs.Verbose, cliArgs.Quiet)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cliArgs.Check {
		st := engine.CheckInstallation(ctx, engine.Locator{
			Executable: cliArgs.VisqolPath,
			Model:      cliArgs.ModelPath,
		})
		if cli.PrintStatus(os.Stdout, st) {
			return exitOK
		}
		return exitFailure
	}

	if err := validate(cliArgs); err != nil {
		cli.PrintError(err.Error())
		if cliArgs.ReferenceDir == "" || cliArgs.DegradedDir == "" {
			_ = kctx.PrintUsage(true)
		}
		return exitFailure
	}

	var progress *cli.Progress
	if !cliArgs.Quiet {
		progress = cli.NewProgress(os.Stderr)
	}

	profile := audio.DefaultProfile()
	profile.TargetRate = cliArgs.TargetRate

	duplicates := pairing.DuplicateLastWins
	if cliArgs.StrictPairs {
		duplicates = pairing.DuplicateFail
	}

	calc, err := visqolbatch.NewCalculator(visqolbatch.Config{
		Executable:       cliArgs.VisqolPath,
		Model:            cliArgs.ModelPath,
		Workers:          cliArgs.Workers,
		Timeout:          cliArgs.Timeout,
		Profile:          profile,
		TempDir:          cliArgs.TempDir,
		Resampler:        audio.ResamplerKind(cliArgs.Resampler),
		DecodeCompressed: cliArgs.DecodeCompressed,
		Duplicates:       duplicates,
		Logger:           logger,
		OnStart:          progress.Start,
		OnOutcome:        progress.Observe,
	})
	if err != nil {
		cli.PrintError(err.Error())
		if errors.Is(err, engine.ErrEngineUnavailable) {
			cli.PrintError("run with --check to inspect the installation")
		}
		return exitFailure
	}

	report, err := calc.CalculateBatch(ctx, cliArgs.ReferenceDir, cliArgs.DegradedDir)
	progress.Wait()
	if report == nil {
		if !errors.Is(err, context.Canceled) {
			cli.PrintError(err.Error())
		}
		return exitCode(nil, err)
	}

	if cliArgs.Output != "" {
		if err := output.Save(report, cliArgs.Output); err != nil {
			cli.PrintError(err.Error())
			return exitFailure
		}
	}

	if !cliArgs.Quiet {
		fmt.Println()
		cli.PrintSummary(os.Stdout, report, cliArgs.Output)
	}

	return exitCode(report, err)
}

// exitCode maps a batch result to the process exit status: 130 for an
// interrupted run, 0 only when every pair scored, 1 otherwise.
func exitCode(report *batch.Report, err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case report == nil:
		return exitFailure
	case report.Interrupted:
		return exitInterrupted
	case report.Statistics.SuccessRate < 1.0:
		return exitFailure
	default:
		return exitOK
	}
}

// validate checks the arguments a batch run needs.
func validate(c *CLI) error {
	if c.ReferenceDir == "" || c.DegradedDir == "" {
		return errors.New("both reference_dir and degraded_dir are required")
	}

	for _, d := range []struct{ role, path string }{
		{"reference", c.ReferenceDir},
		{"degraded", c.DegradedDir},
	} {
		info, err := os.Stat(d.path)
		if err != nil {
			return fmt.Errorf("%s directory does not exist: %s", d.role, d.path)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s path is not a directory: %s", d.role, d.path)
		}
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	if c.VisqolPath != "" {
		if _, err := os.Stat(c.VisqolPath); err != nil {
			return fmt.Errorf("ViSQOL executable does not exist: %s", c.VisqolPath)
		}
	}

	if !audio.DefaultProfile().AllowsRate(c.TargetRate) {
		return fmt.Errorf("target rate must be one of %v, got %d", audio.DefaultProfile().SampleRates, c.TargetRate)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	return nil
}

// newLogger builds the stderr logger: verbose shows debug records, quiet
// only errors, and the default warnings and up.
func newLogger(verbose, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
