// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
)

// Locator finds the engine executable and its model. Explicit paths are used
// as given and must exist; empty fields fall back to the candidate lists.
type Locator struct {
	Executable string
	Model      string
	// SelfDir anchors bundled candidates. Empty means SelfDir().
	SelfDir string
}

func (l Locator) selfDir() string {
	if l.SelfDir != "" {
		return l.SelfDir
	}
	return SelfDir()
}

// LocateExecutable returns the absolute engine path.
func (l Locator) LocateExecutable() (string, error) {
	if l.Executable != "" {
		path, ok := ExecutableAt(l.Executable)()
		if !ok {
			return "", fmt.Errorf("%w: executable %s not found or not executable", ErrEngineUnavailable, l.Executable)
		}
		return path, nil
	}

	path, ok := Resolve(ExecutableCandidates(l.selfDir()))
	if !ok {
		return "", fmt.Errorf("%w: %s not found in bundled paths or PATH", ErrEngineUnavailable, executableName)
	}
	return path, nil
}

// LocateModel returns the absolute model path for the given executable.
func (l Locator) LocateModel(executable string) (string, error) {
	if l.Model != "" {
		path, ok := FileAt(l.Model)()
		if !ok {
			return "", fmt.Errorf("%w: model %s not found", ErrEngineUnavailable, l.Model)
		}
		return path, nil
	}

	path, ok := Resolve(ModelCandidates(l.selfDir(), executable))
	if !ok {
		return "", fmt.Errorf("%w: %s not found", ErrEngineUnavailable, modelName)
	}
	return path, nil
}

// Locate resolves both the executable and the model.
func (l Locator) Locate() (executable, model string, err error) {
	executable, err = l.LocateExecutable()
	if err != nil {
		return "", "", err
	}

	model, err = l.LocateModel(executable)
	if err != nil {
		return "", "", err
	}

	return executable, model, nil
}
