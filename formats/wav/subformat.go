// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// subFormatPCM is KSDATAFORMAT_SUBTYPE_PCM as stored in the fmt extension.
var subFormatPCM = []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

const (
	extensibleFmtSize = 40
	minExtensionSize  = 22
)

// checkSubFormat finds the fmt chunk and, for WAVE_FORMAT_EXTENSIBLE, accepts
// only the integer PCM sub-format. Other format tags are left to the caller.
func checkSubFormat(rs io.ReadSeeker) error {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	p := riff.New(rs)
	if err := p.ParseHeaders(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return fmt.Errorf("%w: no fmt chunk: %w", ErrMalformedHeader, err)
		}

		if ch.ID != riff.FmtID {
			ch.Drain()
			// chunks are word aligned
			if ch.Size%2 == 1 {
				if _, err := io.ReadFull(ch.R, make([]byte, 1)); err != nil {
					return fmt.Errorf("%w: %w", ErrMalformedHeader, err)
				}
			}
			continue
		}

		if ch.Size < 2 {
			return fmt.Errorf("%w: fmt chunk of %d bytes", ErrMalformedHeader, ch.Size)
		}
		body := make([]byte, min(int(ch.Size), extensibleFmtSize))
		if _, err := io.ReadFull(ch, body); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedHeader, err)
		}

		return checkExtension(body, int(ch.Size))
	}
}

// checkExtension inspects the first bytes of a fmt chunk of size bytes.
func checkExtension(body []byte, size int) error {
	if binary.LittleEndian.Uint16(body[0:2]) != formatExtensible {
		return nil
	}
	if len(body) < extensibleFmtSize {
		return fmt.Errorf("%w: extensible fmt chunk of %d bytes", ErrUnsupportedWavData, size)
	}
	if cb := binary.LittleEndian.Uint16(body[16:18]); cb < minExtensionSize {
		return fmt.Errorf("%w: extensible fmt extension of %d bytes", ErrUnsupportedWavData, cb)
	}
	if !bytes.Equal(body[24:40], subFormatPCM) {
		return fmt.Errorf("%w: extensible sub-format % x", ErrUnsupportedWavData, body[24:40])
	}
	return nil
}
