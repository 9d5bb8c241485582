// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"slices"
)

// Format describes the PCM layout read from a container header.
type Format struct {
	SampleRate int
	BitDepth   int
	Channels   int
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz/%dbit/%dch", f.SampleRate, f.BitDepth, f.Channels)
}

// Profile is the PCM layout the scoring engine accepts.
type Profile struct {
	// SampleRates is the allowed set; a source already at one of these rates
	// keeps its rate.
	SampleRates []int
	// TargetRate is used when the source rate is not in SampleRates.
	TargetRate int
	BitDepth   int
	Channels   int
}

// DefaultProfile is ViSQOL's 16-bit mono profile at the speech (16kHz) and
// audio (48kHz) rates.
func DefaultProfile() Profile {
	return Profile{
		SampleRates: []int{16000, 48000},
		TargetRate:  48000,
		BitDepth:    16,
		Channels:    1,
	}
}

// AllowsRate reports whether rate is in the allowed set.
func (p Profile) AllowsRate(rate int) bool {
	return slices.Contains(p.SampleRates, rate)
}

// Matches reports whether f already conforms to the profile.
func (p Profile) Matches(f Format) bool {
	return p.AllowsRate(f.SampleRate) && f.BitDepth == p.BitDepth && f.Channels == p.Channels
}

// RateFor returns the output rate for a source at srcRate.
func (p Profile) RateFor(srcRate int) int {
	if p.AllowsRate(srcRate) {
		return srcRate
	}
	return p.TargetRate
}

func (p Profile) String() string {
	return fmt.Sprintf("%vHz/%dbit/%dch", p.SampleRates, p.BitDepth, p.Channels)
}
