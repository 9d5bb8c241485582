// SPDX-License-Identifier: EPL-2.0

package conform

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/ik5/visqolbatch/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialize_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		samples  []float64
		rate     int
		channels int
	}{
		{"empty", []float64{}, 16000, 1},
		{"two dimensional", []float64{0, 0, 0, 0}, 16000, 2},
		{"zero rate", []float64{0.1}, 0, 1},
		{"negative rate", []float64{0.1}, -8000, 1},
		{"nan", []float64{0, math.NaN()}, 16000, 1},
		{"inf", []float64{math.Inf(-1)}, 16000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmp := t.TempDir()
			c, err := NewNormalizer(Options{TempDir: tmp}).Materialize(tt.samples, tt.rate, tt.channels)
			require.ErrorIs(t, err, ErrInvalidAudioData)
			assert.Nil(t, c)
			assert.Zero(t, dirEntries(t, tmp))
		})
	}
}

func TestMaterialize_WritesDeclaredRate(t *testing.T) {
	t.Parallel()

	samples := []float64{0, 0.5, -0.5, 1, -1}
	c, err := NewNormalizer(Options{TempDir: t.TempDir()}).Materialize(samples, 16000, 0)
	require.NoError(t, err)
	defer c.Release()

	assert.True(t, c.Temporary())

	format, got := readConformant(t, c.Path)
	assert.Equal(t, audio.Format{SampleRate: 16000, BitDepth: 16, Channels: 1}, format)
	require.Len(t, got, len(samples))
	for i, want := range samples {
		assert.InDelta(t, want, got[i], 1.0/32768, "sample %d", i)
	}
}

func TestMaterialize_RescalesAndWarns(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	c, err := NewNormalizer(Options{TempDir: t.TempDir(), Logger: logger}).Materialize([]float64{2, -1, 0.5}, 48000, 1)
	require.NoError(t, err)
	defer c.Release()

	_, got := readConformant(t, c.Path)
	require.Len(t, got, 3)
	assert.InDelta(t, 1.0, got[0], 1.0/32768)
	assert.InDelta(t, -0.5, got[1], 1.0/32768)
	assert.InDelta(t, 0.25, got[2], 1.0/32768)

	out := logs.String()
	assert.True(t, strings.Contains(out, "level=WARN"), out)
	assert.True(t, strings.Contains(out, "peak=2"), out)
}

func TestNormalize_InMemoryInput(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	c, err := NewNormalizer(Options{TempDir: tmp}).Normalize(audio.BufferInput(make([]float64, 160), 16000))
	require.NoError(t, err)

	assert.Equal(t, 1, dirEntries(t, tmp))
	require.NoError(t, c.Release())
	assert.Zero(t, dirEntries(t, tmp))
}
