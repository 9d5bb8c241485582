// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// It is one of the optional decoders a conform.Normalizer can be given for
// inputs that are not RIFF/WAVE. Samples are always converted afterwards, so
// the decoder only has to produce float64 samples in [-1.0, 1.0].
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not a FORM/AIFF stream
//	}
//
// Integer PCM of 8, 16, 24 and 32 bits is supported. AIFF stores signed
// samples at every depth, unlike 8-bit WAV. AIFF-C compressed streams are
// rejected.
package aiff
