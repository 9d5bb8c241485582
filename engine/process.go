// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Wait blocks on output pipes after a kill.
const waitDelay = 2 * time.Second

type runResult struct {
	stdout   string
	stderr   string
	timedOut bool
	err      error
}

// run executes name with args, capturing both output streams. The process is
// killed when ctx is done; timedOut is set when that happened because of the
// deadline.
func run(ctx context.Context, name string, args ...string) runResult {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	configureProcess(cmd)

	err := cmd.Run()

	res := runResult{
		stdout: stdout.String(),
		stderr: strings.TrimSpace(stderr.String()),
		err:    err,
	}
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		res.timedOut = true
	}

	return res
}
