// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Input identifies one audio input: a file on disk, or an in-memory buffer of
// float64 samples in [-1,1] at a declared rate.
type Input struct {
	Path string

	Samples    []float64
	SampleRate int
	// Channels of the in-memory buffer. 0 is treated as mono.
	Channels int
}

// FileInput returns an Input backed by path.
func FileInput(path string) Input {
	return Input{Path: path}
}

// BufferInput returns a mono Input backed by samples at sampleRate.
func BufferInput(samples []float64, sampleRate int) Input {
	return Input{Samples: samples, SampleRate: sampleRate, Channels: 1}
}

// InMemory reports whether the input is a sample buffer.
func (in Input) InMemory() bool {
	return in.Path == "" && in.Samples != nil
}

// Validate checks that exactly one representation is populated.
func (in Input) Validate() error {
	hasPath := in.Path != ""
	hasSamples := in.Samples != nil
	if hasPath == hasSamples {
		return ErrAmbiguousInput
	}
	return nil
}

// String describes the input for logs and reports.
func (in Input) String() string {
	if in.InMemory() {
		return fmt.Sprintf("<memory:%d@%dHz>", len(in.Samples), in.SampleRate)
	}
	return in.Path
}
