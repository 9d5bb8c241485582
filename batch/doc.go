// SPDX-License-Identifier: EPL-2.0

// Package batch runs a Scorer over many pairs on a fixed worker pool and
// assembles a Report.
//
// Workers pull jobs from an unbuffered channel, so at most Workers pairs are
// in flight. A single collector goroutine receives outcomes as they finish;
// the report is sorted back into input order before statistics are computed.
//
// A panic in one job is recovered and reported as engine.KindInternal for
// that pair alone.
package batch
