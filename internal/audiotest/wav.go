// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// WAV builds a canonical 44-byte header PCM WAV. samples are interleaved raw
// integer values; 8-bit values must already be unsigned.
func WAV(sampleRate, channels, bitDepth int, samples []int) []byte {
	return build(1, sampleRate, channels, bitDepth, samples)
}

// FloatWAV builds a WAV whose format tag is IEEE float (3). Samples are written
// as 32-bit zeros; only the header matters to callers.
func FloatWAV(sampleRate, channels, frames int) []byte {
	return build(3, sampleRate, channels, 32, make([]int, frames*channels))
}

// Sub-format GUIDs of a WAVE_FORMAT_EXTENSIBLE fmt chunk.
var (
	SubFormatPCM   = []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}
	SubFormatFloat = []byte{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}
)

// ExtensibleWAV builds a WAV with format tag 0xFFFE and the given sub-format
// GUID. samples are raw values of bitDepth bits, so float data is passed as
// its IEEE bit pattern.
func ExtensibleWAV(sampleRate, channels, bitDepth int, subFormat []byte, samples []int) []byte {
	return encode(0xFFFE, subFormat, sampleRate, channels, bitDepth, samples)
}

// FloatBits returns the 32-bit IEEE pattern of each value, for ExtensibleWAV.
func FloatBits(values ...float32) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(int32(math.Float32bits(v)))
	}
	return out
}

func build(format uint16, sampleRate, channels, bitDepth int, samples []int) []byte {
	return encode(format, nil, sampleRate, channels, bitDepth, samples)
}

func encode(format uint16, subFormat []byte, sampleRate, channels, bitDepth int, samples []int) []byte {
	buf := new(bytes.Buffer)
	bytesPerSample := bitDepth / 8
	dataSize := uint32(len(samples) * bytesPerSample)

	fmtSize := uint32(16)
	if subFormat != nil {
		fmtSize = 40
	}

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 4+(8+fmtSize)+(8+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, fmtSize)
	binary.Write(buf, binary.LittleEndian, format)
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*channels*bytesPerSample))
	binary.Write(buf, binary.LittleEndian, uint16(channels*bytesPerSample))
	binary.Write(buf, binary.LittleEndian, uint16(bitDepth))
	if subFormat != nil {
		binary.Write(buf, binary.LittleEndian, uint16(22))
		binary.Write(buf, binary.LittleEndian, uint16(bitDepth))
		binary.Write(buf, binary.LittleEndian, uint32(0))
		buf.Write(subFormat)
	}

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)

	for _, s := range samples {
		switch bitDepth {
		case 8:
			buf.WriteByte(byte(s))
		case 16:
			binary.Write(buf, binary.LittleEndian, int16(s))
		case 24:
			v := uint32(int32(s))
			buf.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16)})
		case 32:
			binary.Write(buf, binary.LittleEndian, int32(s))
		}
	}

	return buf.Bytes()
}

// Tone returns frames*channels interleaved 16-bit samples of a 440Hz tone
// at half scale, identical across channels.
func Tone(sampleRate, channels, frames int) []int {
	out := make([]int, 0, frames*channels)
	for i := range frames {
		v := int(16000 * sinAt(i, sampleRate))
		for range channels {
			out = append(out, v)
		}
	}
	return out
}

// WriteFile writes data under dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ConformantWAV writes a 16-bit mono tone of the given length under dir/name.
func ConformantWAV(t testing.TB, dir, name string, sampleRate, frames int) string {
	t.Helper()
	return WriteFile(t, dir, name, WAV(sampleRate, 1, 16, Tone(sampleRate, 1, frames)))
}

func sinAt(i, sampleRate int) float64 {
	return math.Sin(2 * math.Pi * 440 * float64(i) / float64(sampleRate))
}
