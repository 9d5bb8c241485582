// SPDX-License-Identifier: EPL-2.0

package conform

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/visqolbatch/audio"
	"github.com/ik5/visqolbatch/formats/wav"
	"github.com/ik5/visqolbatch/utils"
)

const readBufferSize = 4096

// Options configures a Normalizer. The zero value converts to the default
// profile in os.TempDir with the linear resampler and no extended decoders.
type Options struct {
	Profile audio.Profile
	// TempDir receives converted files. Empty means os.TempDir().
	TempDir string
	Logger  *slog.Logger
	// Decoders handles non-WAV inputs by extension. Nil disables them.
	Decoders  *audio.Registry
	Resampler audio.ResamplerKind
}

// Normalizer brings inputs to a fixed PCM profile.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	profile   audio.Profile
	tempDir   string
	logger    *slog.Logger
	decoders  *audio.Registry
	resampler audio.ResamplerKind
}

func NewNormalizer(opts Options) *Normalizer {
	profile := opts.Profile
	if len(profile.SampleRates) == 0 {
		profile = audio.DefaultProfile()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	resampler := opts.Resampler
	if resampler == "" {
		resampler = audio.ResamplerLinear
	}

	return &Normalizer{
		profile:   profile,
		tempDir:   opts.TempDir,
		logger:    logger.With("component", "conform"),
		decoders:  opts.Decoders,
		resampler: resampler,
	}
}

// Profile returns the profile outputs conform to.
func (n *Normalizer) Profile() audio.Profile {
	return n.profile
}

// Normalize returns a conformant version of in. A file that already matches
// the profile is returned as is, with no copy. Anything else is converted into
// a temporary file that the caller must Release.
func (n *Normalizer) Normalize(in audio.Input) (*Conformant, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAudioData, err)
	}

	if in.InMemory() {
		return n.Materialize(in.Samples, in.SampleRate, in.Channels)
	}

	f, err := os.Open(in.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAudioData, err)
	}
	defer f.Close()

	header := make([]byte, 12)
	hn, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAudioData, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAudioData, err)
	}

	if !wav.IsWAV(header[:hn]) {
		if hn == 0 {
			return nil, fmt.Errorf("%w: %s: empty file", ErrInvalidAudioData, in.Path)
		}
		if strings.EqualFold(filepath.Ext(in.Path), ".wav") {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidAudioData, in.Path, wav.ErrNotWavFile)
		}
		return n.decodeOther(in.Path, f)
	}

	format, err := wav.Probe(f)
	if err != nil {
		return nil, classifyWAV(in.Path, err)
	}

	if n.profile.Matches(format) {
		n.logger.Debug("input already conformant", "path", in.Path, "format", format.String())
		return &Conformant{Path: in.Path, Format: format}, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAudioData, err)
	}
	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		return nil, classifyWAV(in.Path, err)
	}
	defer src.Close()

	n.logger.Debug("converting input", "path", in.Path, "from", format.String(), "to", n.profile.String())
	return n.convert(in.Path, src)
}

func (n *Normalizer) decodeOther(path string, r io.Reader) (*Conformant, error) {
	ext := filepath.Ext(path)

	dec, ok := n.decoders.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrInvalidAudioData, path, err)
	}
	defer src.Close()

	n.logger.Debug("decoding with extended decoder", "path", path, "ext", ext)
	return n.convert(path, src)
}

func classifyWAV(path string, err error) error {
	switch {
	case errors.Is(err, wav.ErrUnsupportedWavData), errors.Is(err, wav.ErrUnsupportedDepth):
		return fmt.Errorf("%w: %s: %w", ErrUnsupportedFormat, path, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrInvalidAudioData, path, err)
	}
}

// convert decodes, downmixes, resamples and requantizes src into a new
// temporary file.
func (n *Normalizer) convert(path string, src audio.Source) (*Conformant, error) {
	if src.Channels() < 1 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %s: %d channels at %d Hz", ErrInvalidAudioData, path, src.Channels(), src.SampleRate())
	}

	srcRate := src.SampleRate()
	dstRate := n.profile.RateFor(srcRate)

	var mono audio.Source = audio.NewMonoMixer(src)

	var (
		samples []float64
		err     error
	)
	if n.resampler == audio.ResamplerCubic && srcRate != dstRate {
		samples, err = audio.ReadAll(audio.NewResampler(mono, dstRate), readBufferSize)
	} else {
		samples, err = audio.ReadAll(mono, readBufferSize)
		if err == nil {
			samples = audio.ResampleLinear(samples, srcRate, dstRate)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidAudioData, path, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidAudioData, path, audio.ErrEmptyStream)
	}

	return n.write(samples, dstRate)
}

// write quantizes mono samples to the profile depth and stores them in a new
// temporary WAV.
func (n *Normalizer) write(samples []float64, sampleRate int) (*Conformant, error) {
	depth := n.profile.BitDepth
	pcm := make([]int, len(samples))
	for i, s := range samples {
		pcm[i] = utils.Quantize(s, depth)
	}

	f, err := os.CreateTemp(n.tempDir, "visqol-conformant-*.wav")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}

	c := &Conformant{
		Path:      f.Name(),
		Format:    audio.Format{SampleRate: sampleRate, BitDepth: depth, Channels: 1},
		temporary: true,
	}

	werr := wav.WritePCM(f, sampleRate, depth, pcm)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		if rerr := c.Release(); rerr != nil {
			n.logger.Warn("failed to remove temp file", "path", c.Path, "error", rerr)
		}
		return nil, fmt.Errorf("writing conformant wav: %w", err)
	}

	n.logger.Debug("wrote conformant file", "path", c.Path, "samples", len(pcm), "rate", sampleRate)
	return c, nil
}
