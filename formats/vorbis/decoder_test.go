// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/visqolbatch/audio"
)

// mockOggReader returns interleaved frames
type mockOggReader struct {
	rate     int
	channels int
	samples  []float32
}

func (m *mockOggReader) SampleRate() int { return m.rate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	if len(m.samples) == 0 {
		return 0, io.EOF
	}
	n := copy(p, m.samples)
	m.samples = m.samples[n:]
	return n / m.channels, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"text", []byte("OggS but not really")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockOggReader{rate: 48000, channels: 2, samples: []float32{0.5, -0.5, 0.25, -0.25}},
		sampleRate: 48000,
		channels:   2,
	}

	if src.BitDepth() != 0 {
		t.Errorf("BitDepth() = %d, want 0", src.BitDepth())
	}

	got, err := audio.ReadAll(src, 2)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	want := []float64{0.5, -0.5, 0.25, -0.25}
	if len(got) != len(want) {
		t.Fatalf("ReadAll() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSource_ReadSamples_InvalidDstSize(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggReader{channels: 2}, channels: 2}
	_, err := src.ReadSamples(make([]float64, 3))
	if !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}
