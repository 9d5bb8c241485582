// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// ReadAll drains src into a single slice using reads of bufferSize samples.
// io.EOF is not returned as an error.
func ReadAll(src Source, bufferSize int) ([]float64, error) {
	if bufferSize <= 0 {
		bufferSize = 4096
	}
	bufferSize -= bufferSize % max(src.Channels(), 1)
	if bufferSize == 0 {
		bufferSize = src.Channels()
	}

	out := make([]float64, 0, bufferSize)
	buf := make([]float64, bufferSize)

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			// Decoders that signal the end with (0, nil).
			break
		}
	}

	return out, nil
}
