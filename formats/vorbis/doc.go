// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to floating point, so the Source reports a BitDepth of 0 and
// always needs requantizing before it reaches the scoring engine. Samples are
// interleaved:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// ReadSamples rejects a dst whose length is not a multiple of the channel
// count with audio.ErrInvalidDstSize, because the underlying reader works in
// whole frames.
package vorbis
