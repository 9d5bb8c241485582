// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/visqolbatch/utils"
)

// Resampler streams from src to a target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// A one-pole low-pass is applied to the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// frames[0..3] hold t-1, t0, t+1, t+2
	frames   [4][]float64
	hasFrame [4]bool
	primed   bool

	pos    float64
	srcBuf []float64
	eof    bool

	useFilter   bool
	filterAlpha float64
	filterState []float64
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float64, channels),
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float64, channels),
	}
	for i := range r.frames {
		r.frames[i] = make([]float64, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BitDepth() int   { return r.src.BitDepth() }
func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads one frame into dst, applying the low-pass when enabled.
func (r *Resampler) readFrame(dst []float64) (bool, error) {
	n, err := r.src.ReadSamples(r.srcBuf)
	got := n == r.channels
	if got {
		copy(dst, r.srcBuf)
		if r.useFilter {
			for c := range r.channels {
				dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
				r.filterState[c] = dst[c]
			}
		}
	}

	switch {
	case errors.Is(err, io.EOF), err == nil && n == 0:
		r.eof = true
		return got, nil
	case err != nil:
		return got, fmt.Errorf("%w", err)
	}
	return got, nil
}

func (r *Resampler) prime() error {
	r.primed = true
	// Seed the filter with the first frame to avoid a warm-up transient.
	n, err := r.src.ReadSamples(r.srcBuf)
	if n == r.channels {
		copy(r.frames[0], r.srcBuf)
		copy(r.filterState, r.srcBuf)
		r.hasFrame[0] = true
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w", err)
	}
	if !r.hasFrame[0] {
		r.eof = true
		return io.EOF
	}
	if errors.Is(err, io.EOF) {
		r.eof = true
	}

	// frames[0] doubles as t-1 for the first output frame.
	copy(r.frames[1], r.frames[0])
	r.hasFrame[1] = true
	for i := 2; i < 4; i++ {
		if r.eof {
			break
		}
		ok, err := r.readFrame(r.frames[i])
		if err != nil {
			return err
		}
		r.hasFrame[i] = ok
	}
	return nil
}

// advance shifts the window one frame forward.
func (r *Resampler) advance() error {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]
	r.hasFrame[3] = false

	if r.eof {
		return nil
	}
	ok, err := r.readFrame(r.frames[3])
	r.hasFrame[3] = ok
	return err
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float64) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst)/r.channels {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.hasFrame[1] || !r.hasFrame[2] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		for c := range r.channels {
			y1 := r.frames[1][c]
			y2 := r.frames[2][c]
			y0, y3 := y1, y2
			if r.hasFrame[0] {
				y0 = r.frames[0][c]
			}
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}
			dst[written*r.channels+c] = utils.CubicInterpolate(y0, y1, y2, y3, r.pos)
		}
		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
