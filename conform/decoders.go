// SPDX-License-Identifier: EPL-2.0

package conform

import (
	"github.com/ik5/visqolbatch/audio"
	"github.com/ik5/visqolbatch/formats/aiff"
	"github.com/ik5/visqolbatch/formats/mp3"
	"github.com/ik5/visqolbatch/formats/vorbis"
)

// ExtendedDecoders returns a registry with the in-process decoders for AIFF,
// MP3 and Ogg Vorbis, keyed by file extension.
func ExtendedDecoders() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})

	return r
}
