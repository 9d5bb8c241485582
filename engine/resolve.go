// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"os"
	"os/exec"
	"path/filepath"
)

const (
	executableName = "visqol"
	modelName      = "libsvm_nu_svr_model.txt"
)

// Resolver proposes one candidate path.
type Resolver func() (string, bool)

// Resolve returns the first path a resolver accepts.
func Resolve(resolvers []Resolver) (string, bool) {
	for _, r := range resolvers {
		if path, ok := r(); ok {
			return path, true
		}
	}
	return "", false
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// FileAt accepts path when it is an existing regular file.
func FileAt(path string) Resolver {
	return func() (string, bool) {
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			return "", false
		}
		return absolute(path), true
	}
}

// ExecutableAt accepts path when it is a regular file with an execute bit.
func ExecutableAt(path string) Resolver {
	return func() (string, bool) {
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() || fi.Mode().Perm()&0o111 == 0 {
			return "", false
		}
		return absolute(path), true
	}
}

// LookPath accepts name when it is found on PATH.
func LookPath(name string) Resolver {
	return func() (string, bool) {
		path, err := exec.LookPath(name)
		if err != nil {
			return "", false
		}
		return path, true
	}
}

// ExecutableCandidates lists where the engine is looked for, bundled copies
// next to selfDir first and PATH last.
func ExecutableCandidates(selfDir string) []Resolver {
	return []Resolver{
		ExecutableAt(filepath.Join(selfDir, "bin", executableName)),
		ExecutableAt(filepath.Join(selfDir, "visqol-rs", "target", "release", executableName)),
		ExecutableAt(filepath.Join(selfDir, "visqol-rs", executableName)),
		ExecutableAt(filepath.Join(".", "visqol-rs", "target", "release", executableName)),
		ExecutableAt(filepath.Join(".", "visqol-rs", executableName)),
		ExecutableAt(filepath.Join(".", executableName)),
		ExecutableAt(filepath.Join("/usr/local/bin", executableName)),
		ExecutableAt(filepath.Join("/usr/bin", executableName)),
		LookPath(executableName),
	}
}

// ModelCandidates lists where the quality model is looked for, relative to
// selfDir and to the resolved executable.
func ModelCandidates(selfDir, executable string) []Resolver {
	exeDir := filepath.Dir(executable)

	return []Resolver{
		FileAt(filepath.Join(selfDir, "model", modelName)),
		FileAt(filepath.Join(exeDir, "..", "model", modelName)),
		FileAt(filepath.Join(exeDir, "model", modelName)),
		FileAt(filepath.Join(selfDir, "visqol-rs", "model", modelName)),
		FileAt(filepath.Join(selfDir, "..", "visqol-rs", "model", modelName)),
		FileAt(filepath.Join(".", "visqol-rs", "model", modelName)),
		FileAt(filepath.Join(".", "model", modelName)),
		FileAt(filepath.Join("/usr/local/share/visqol/model", modelName)),
	}
}

// SelfDir returns the directory of the running binary, or "." when it cannot
// be determined.
func SelfDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
