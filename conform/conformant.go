// SPDX-License-Identifier: EPL-2.0

package conform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ik5/visqolbatch/audio"
)

// Conformant is a file the scoring engine can read as is.
type Conformant struct {
	Path   string
	Format audio.Format

	temporary bool
}

// Temporary reports whether Path was created by the normalizer and must be
// released by the caller.
func (c *Conformant) Temporary() bool {
	return c != nil && c.temporary
}

// Release deletes the file when it is temporary. It is safe to call more than
// once and on a nil receiver. Caller-owned inputs are never touched.
func (c *Conformant) Release() error {
	if !c.Temporary() {
		return nil
	}
	c.temporary = false

	if err := os.Remove(c.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", c.Path, err)
	}
	return nil
}
