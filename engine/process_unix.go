// SPDX-License-Identifier: EPL-2.0

//go:build unix

package engine

import (
	"os/exec"
	"syscall"
)

// configureProcess starts the engine in its own process group so a timeout
// kills it along with anything it spawned.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
