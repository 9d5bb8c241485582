// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const toolProbeTimeout = 10 * time.Second

// Tool describes an optional build tool found on PATH.
type Tool struct {
	Name      string
	Available bool
	Version   string
}

// Status is the result of CheckInstallation.
type Status struct {
	EngineFound bool
	EnginePath  string
	ModelFound  bool
	ModelPath   string
	Rustc       Tool
	Cargo       Tool
	Errors      []string
}

// OK reports whether scoring can run: both engine and model were found.
func (s Status) OK() bool {
	return s.EngineFound && s.ModelFound
}

// CheckInstallation locates the engine and model and probes for the Rust
// toolchain used to build the engine from source.
func CheckInstallation(ctx context.Context, loc Locator) Status {
	var st Status

	exe, err := loc.LocateExecutable()
	if err != nil {
		st.Errors = append(st.Errors, err.Error())
	} else {
		st.EngineFound = true
		st.EnginePath = exe

		model, err := loc.LocateModel(exe)
		if err != nil {
			st.Errors = append(st.Errors, err.Error())
		} else {
			st.ModelFound = true
			st.ModelPath = model
		}
	}

	st.Rustc = probeTool(ctx, "rustc")
	if !st.Rustc.Available {
		st.Errors = append(st.Errors, "rust compiler (rustc) not found")
	}
	st.Cargo = probeTool(ctx, "cargo")
	if !st.Cargo.Available {
		st.Errors = append(st.Errors, "cargo not found")
	}

	return st
}

// probeTool runs name --version and keeps the first output line.
func probeTool(ctx context.Context, name string) Tool {
	t := Tool{Name: name}

	path, err := exec.LookPath(name)
	if err != nil {
		return t
	}

	ctx, cancel := context.WithTimeout(ctx, toolProbeTimeout)
	defer cancel()

	res := run(ctx, path, "--version")
	if res.err != nil {
		return t
	}

	t.Available = true
	t.Version, _, _ = strings.Cut(strings.TrimSpace(res.stdout), "\n")
	return t
}

func (t Tool) String() string {
	if !t.Available {
		return fmt.Sprintf("%s: not installed", t.Name)
	}
	return fmt.Sprintf("%s: %s", t.Name, t.Version)
}
