// SPDX-License-Identifier: EPL-2.0

// Package wav probes, decodes and writes RIFF/WAVE files.
//
// It is built on github.com/go-audio/wav and only deals with integer PCM:
// format tag 1 (PCM) and 0xFFFE (extensible). Floating point, A-law and other
// WAVE encodings are rejected with ErrUnsupportedWavData.
//
// # Probing
//
// Probe reads the header only and reports the PCM layout:
//
//	f, _ := os.Open("ref.wav")
//	format, err := wav.Probe(f)
//	// format.SampleRate, format.BitDepth, format.Channels
//
// # Decoding
//
// Decoder returns an audio.Source that yields float64 samples in [-1.0, 1.0].
// 8-bit data is unsigned and is centred before scaling; 16, 24 and 32-bit data
// is signed and divided by 2^(bitDepth-1).
//
// # Writing
//
// WritePCM writes already quantized mono samples:
//
//	out, _ := os.CreateTemp("", "conformant-*.wav")
//	err := wav.WritePCM(out, 48000, 16, pcm)
//
// The header is finalized on return, so the writer must be seekable.
//
// # Errors
//
//   - ErrNotWavFile: no RIFF/WAVE signature
//   - ErrMalformedHeader: the chunks could not be parsed
//   - ErrUnsupportedWavData: the format tag is not integer PCM
//   - ErrUnsupportedDepth: the bit depth is not 8, 16, 24 or 32
//   - ErrNoChannels, ErrNoSamples: the header describes no audio
package wav
