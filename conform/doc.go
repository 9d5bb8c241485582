// SPDX-License-Identifier: EPL-2.0

// Package conform brings audio inputs to the PCM profile the scoring engine
// reads: integer PCM RIFF/WAVE at one of the allowed rates, at a fixed bit
// depth, mono.
//
// A file that already matches is handed back untouched. Everything else is
// decoded, averaged to mono, resampled and requantized into a temporary file:
//
//	n := conform.NewNormalizer(conform.Options{})
//	c, err := n.Normalize(audio.FileInput("ref.wav"))
//	if err != nil {
//	    return err
//	}
//	defer c.Release()
//	// pass c.Path to the engine
//
// In-memory buffers go through Materialize and always produce a temporary
// file at their declared rate.
//
// Containers other than WAV fail with ErrUnsupportedFormat unless
// Options.Decoders holds a decoder for the file extension, see
// ExtendedDecoders.
package conform
