// SPDX-License-Identifier: EPL-2.0

// Package visqolbatch scores perceptual audio quality in batches with the
// external ViSQOL engine.
//
// A batch pairs every reference file with the degraded file of the same stem,
// brings both to the engine's PCM profile, runs the engine on a pool of
// workers and aggregates the MOS-LQO scores:
//
//	calc, err := visqolbatch.NewCalculator(visqolbatch.Config{Workers: 8})
//	if err != nil {
//	    return err
//	}
//	report, err := calc.CalculateBatch(ctx, "ref", "deg")
//
// # Packages
//
//   - audio: sample sources, profiles, downmixing and resampling
//   - formats/...: WAV probe/decode/encode and optional AIFF, MP3, Ogg decoders
//   - conform: normalization of inputs to the engine's profile
//   - pairing: file discovery and stem matching
//   - engine: subprocess invocation, score parsing, engine discovery
//   - batch: the worker pool and report
//   - stats: aggregate statistics
//
// The visqol-batch command in cmd/visqol-batch wraps Calculator with flags,
// environment defaults, a progress bar and JSON output.
//
// # Failures
//
// Setup problems are returned as errors before anything is scored. Once a
// batch runs, a failing pair is recorded in its Outcome with an engine.Kind
// and the remaining pairs continue.
package visqolbatch
