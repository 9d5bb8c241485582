// SPDX-License-Identifier: EPL-2.0

// Package enginetest writes stand-in engine executables for tests.
//
// Stubs are POSIX shell scripts. Tests that execute them should not run in
// parallel with tests that write them, or exec may fail with ETXTBSY.
package enginetest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Script writes an executable shell script with body under dir and returns
// its path.
func Script(t testing.TB, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
	return path
}

// Printing returns a stub that prints out on stdout and exits 0.
func Printing(t testing.TB, dir, out string) string {
	t.Helper()
	return Script(t, dir, "visqol", fmt.Sprintf("cat <<'STUB_EOF'\n%s\nSTUB_EOF", out))
}

// Failing returns a stub that writes msg to stderr and exits with code.
func Failing(t testing.TB, dir, msg string, code int) string {
	t.Helper()
	return Script(t, dir, "visqol", fmt.Sprintf("echo %q >&2\nexit %d", msg, code))
}

// Sleeping returns a stub that records its pid in pidFile and then sleeps.
func Sleeping(t testing.TB, dir, pidFile string) string {
	t.Helper()
	return Script(t, dir, "visqol", fmt.Sprintf("echo $$ > %q\nexec sleep 30", pidFile))
}

// ArgRecorder returns a stub that appends its arguments, one per line, to
// argsFile and prints a score.
func ArgRecorder(t testing.TB, dir, argsFile string) string {
	t.Helper()
	return Script(t, dir, "visqol", fmt.Sprintf("for a in \"$@\"; do echo \"$a\" >> %q; done\necho 'MOS-LQO: 3.5'", argsFile))
}

// Model writes a placeholder model file and returns its path.
func Model(t testing.TB, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "libsvm_nu_svr_model.txt")
	if err := os.WriteFile(path, []byte("svm_type nu_svr\n"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return path
}
