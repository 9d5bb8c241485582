// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level building blocks used to bring an
// input into the scoring engine's PCM profile.
//
// This package contains:
//   - Source interface for decoded audio
//   - Input, the file-or-buffer description of one side of a pair
//   - Profile and Format, the required and the observed PCM layout
//   - MonoMixer for channel averaging
//   - ResampleLinear, the default whole-buffer rate converter
//   - Resampler, the opt-in streaming cubic converter
//   - Registry for optional decoders keyed by file extension
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    BitDepth() int
//	    ReadSamples(dst []float64) (int, error)
//	    Close() error
//	}
//
// Decoders in formats/ return a Source. Processors wrap one, so they can be
// chained:
//
//	mono := audio.NewMonoMixer(src)
//	samples, err := audio.ReadAll(mono, 4096)
//	out := audio.ResampleLinear(samples, mono.SampleRate(), 48000)
//
// # Profiles
//
// A Profile lists the sample rates the engine accepts together with the one
// required bit depth and channel count:
//
//	p := audio.DefaultProfile() // {16000, 48000} Hz, 16 bit, mono
//	if p.Matches(format) {
//	    // no conversion needed
//	}
//
// # Resampling
//
// ResampleLinear keeps the duration: the output has
// round(len/srcRate*dstRate) samples spread evenly between the first and last
// input sample. It does not low-pass before downsampling.
//
// # Sample Format
//
// Samples are float64 in [-1.0, 1.0]. Integer PCM is scaled by
// 2^(bitDepth-1) on decode; see package utils for the reverse direction.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
