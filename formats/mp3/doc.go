// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III through github.com/hajimehoshi/go-mp3.
//
// The decoder always reports two channels at 16 bits, because that is what
// go-mp3 emits regardless of the stream layout. A mono MP3 therefore comes out
// as two identical channels, which audio.MonoMixer collapses again.
//
//	src, err := mp3.Decoder{}.Decode(f)
//	mono := audio.NewMonoMixer(src)
package mp3
