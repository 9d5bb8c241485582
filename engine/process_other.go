// SPDX-License-Identifier: EPL-2.0

//go:build !unix

package engine

import "os/exec"

// configureProcess keeps the exec.CommandContext default of killing the
// direct child only.
func configureProcess(*exec.Cmd) {}
