// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/visqolbatch/audio"
	"github.com/ik5/visqolbatch/internal/audiotest"
)

type mockPCMReader struct {
	samples []int
	offset  int
	err     error
}

func (m *mockPCMReader) Format() *goaudio.Format {
	return &goaudio.Format{SampleRate: 8000, NumChannels: 1}
}

func (m *mockPCMReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func TestIsWAV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   bool
	}{
		{"canonical", audiotest.WAV(8000, 1, 16, []int{0}), true},
		{"too short", []byte("RIFF"), false},
		{"riff but not wave", []byte("RIFF\x00\x00\x00\x00AVI "), false},
		{"aiff", []byte("FORM\x00\x00\x00\x00AIFF"), false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsWAV(tt.header); got != tt.want {
				t.Errorf("IsWAV() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProbe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		depth    int
	}{
		{"16-bit mono 48k", 48000, 1, 16},
		{"16-bit stereo 44.1k", 44100, 2, 16},
		{"8-bit mono 8k", 8000, 1, 8},
		{"24-bit stereo 96k", 96000, 2, 24},
		{"32-bit mono 16k", 16000, 1, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := audiotest.WAV(tt.rate, tt.channels, tt.depth, make([]int, 64*tt.channels))
			got, err := Probe(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Probe() error = %v", err)
			}

			want := audio.Format{SampleRate: tt.rate, BitDepth: tt.depth, Channels: tt.channels}
			if got != want {
				t.Errorf("Probe() = %v, want %v", got, want)
			}
		})
	}
}

func TestProbe_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not riff", []byte("This is definitely not a WAV file"), ErrNotWavFile},
		{"truncated", []byte("RIFF"), ErrMalformedHeader},
		{"float data", audiotest.FloatWAV(48000, 1, 32), ErrUnsupportedWavData},
		{"zero channels", audiotest.WAV(48000, 0, 16, nil), ErrNoChannels},
		{"extensible float", audiotest.ExtensibleWAV(48000, 1, 32, audiotest.SubFormatFloat, audiotest.FloatBits(0.01, 0.5)), ErrUnsupportedWavData},
		{"extensible unknown sub-format", audiotest.ExtensibleWAV(48000, 1, 16, make([]byte, 16), []int{0, 1}), ErrUnsupportedWavData},
		{"extensible float after odd chunk", withLeadingChunk(audiotest.ExtensibleWAV(48000, 1, 32, audiotest.SubFormatFloat, audiotest.FloatBits(0.25)), "LIST", []byte("abc")), ErrUnsupportedWavData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Probe(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Probe() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// withLeadingChunk inserts a chunk between the RIFF header and the fmt chunk,
// padding odd sizes as RIFF requires.
func withLeadingChunk(wav []byte, id string, body []byte) []byte {
	chunk := append([]byte(id), byte(len(body)), byte(len(body)>>8), byte(len(body)>>16), byte(len(body)>>24))
	chunk = append(chunk, body...)
	if len(body)%2 == 1 {
		chunk = append(chunk, 0)
	}

	out := append([]byte{}, wav[:12]...)
	out = append(out, chunk...)
	out = append(out, wav[12:]...)

	riffSize := len(out) - 8
	out[4], out[5], out[6], out[7] = byte(riffSize), byte(riffSize>>8), byte(riffSize>>16), byte(riffSize>>24)
	return out
}

func TestProbe_ExtensiblePCM(t *testing.T) {
	t.Parallel()

	data := audiotest.ExtensibleWAV(48000, 2, 24, audiotest.SubFormatPCM, make([]int, 64))
	got, err := Probe(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}

	want := audio.Format{SampleRate: 48000, BitDepth: 24, Channels: 2}
	if got != want {
		t.Errorf("Probe() = %v, want %v", got, want)
	}
}

func TestDecoder_ExtensiblePCMSamples(t *testing.T) {
	t.Parallel()

	data := audiotest.ExtensibleWAV(16000, 1, 16, audiotest.SubFormatPCM, []int{0, 16384, -16384})
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	got, err := audio.ReadAll(src, 4)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	want := []float64{0, 0.5, -0.5}
	if len(got) != len(want) {
		t.Fatalf("ReadAll() len = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("sample[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProbe_EmptyData(t *testing.T) {
	t.Parallel()

	_, err := Probe(bytes.NewReader(audiotest.WAV(48000, 1, 16, nil)))
	if err == nil {
		t.Fatal("Probe() error = nil, want error for empty data chunk")
	}
}

func TestDecoder_Samples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		depth int
		in    []int
		want  []float64
	}{
		{"16-bit", 16, []int{0, 16384, -16384, -32768}, []float64{0, 0.5, -0.5, -1}},
		{"8-bit unsigned", 8, []int{128, 192, 64, 0}, []float64{0, 0.5, -0.5, -1}},
		{"24-bit", 24, []int{0, 4194304, -8388608}, []float64{0, 0.5, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(bytes.NewReader(audiotest.WAV(16000, 1, tt.depth, tt.in)))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			defer src.Close()

			if src.BitDepth() != tt.depth {
				t.Errorf("BitDepth() = %d, want %d", src.BitDepth(), tt.depth)
			}

			got, err := audio.ReadAll(src, 3)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ReadAll() len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("sample[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV(44100, 2, 16, audiotest.Tone(44100, 2, 100))
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Errorf("got %d Hz / %d ch, want 44100 Hz / 2 ch", src.SampleRate(), src.Channels())
	}

	samples, err := audio.ReadAll(src, 64)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(samples) != 200 {
		t.Errorf("ReadAll() len = %d, want 200", len(samples))
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	t.Run("empty dst", func(t *testing.T) {
		t.Parallel()
		src := &source{dec: &mockPCMReader{samples: []int{1}}, bitDepth: 16}
		n, err := src.ReadSamples(nil)
		if n != 0 || err != nil {
			t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
		}
	})

	t.Run("eof after data", func(t *testing.T) {
		t.Parallel()
		src := &source{dec: &mockPCMReader{samples: []int{16384, -16384}}, bitDepth: 16}
		dst := make([]float64, 4)

		n, err := src.ReadSamples(dst)
		if n != 2 || err != nil {
			t.Fatalf("first ReadSamples() = (%d, %v), want (2, nil)", n, err)
		}

		n, err = src.ReadSamples(dst)
		if n != 0 || !errors.Is(err, io.EOF) {
			t.Errorf("second ReadSamples() = (%d, %v), want (0, EOF)", n, err)
		}
	})

	t.Run("decoder error", func(t *testing.T) {
		t.Parallel()
		src := &source{dec: &mockPCMReader{err: io.ErrUnexpectedEOF}, bitDepth: 16}
		_, err := src.ReadSamples(make([]float64, 4))
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("ReadSamples() error = %v, want ErrUnexpectedEOF", err)
		}
	})
}

func TestWritePCM_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	pcm := []int{0, 1000, -1000, 32767, -32767}
	if err := WritePCM(f, 48000, 16, pcm); err != nil {
		t.Fatalf("WritePCM() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	format, err := Probe(in)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	want := audio.Format{SampleRate: 48000, BitDepth: 16, Channels: 1}
	if format != want {
		t.Errorf("Probe() = %v, want %v", format, want)
	}

	if _, err := in.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	src, err := Decoder{}.Decode(in)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got, err := audio.ReadAll(src, 16)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != len(pcm) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(pcm))
	}
	for i, v := range pcm {
		if want := float64(v) / 32768; got[i] != want {
			t.Errorf("sample[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestWritePCM_UnsupportedDepth(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := WritePCM(f, 48000, 12, []int{0}); !errors.Is(err, ErrUnsupportedDepth) {
		t.Errorf("WritePCM() error = %v, want ErrUnsupportedDepth", err)
	}
}
