// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var allVars = []string{
	"VISQOL_PATH", "VISQOL_MODEL", "VISQOL_WORKERS", "VISQOL_TIMEOUT",
	"VISQOL_TARGET_RATE", "VISQOL_TEMP_DIR", "VISQOL_RESAMPLER",
	"VISQOL_STRICT_PAIRS", "VISQOL_DECODE_COMPRESSED",
}

// clearEnv unsets every variable for the test and restores it afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.VisqolPath != "" || cfg.ModelPath != "" {
		t.Errorf("engine paths = %q, %q, want empty", cfg.VisqolPath, cfg.ModelPath)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.TargetRate != 48000 {
		t.Errorf("TargetRate = %d, want 48000", cfg.TargetRate)
	}
	if cfg.Resampler != "linear" {
		t.Errorf("Resampler = %q, want linear", cfg.Resampler)
	}
	if cfg.StrictPairs || cfg.DecodeCompressed {
		t.Error("boolean options should default to false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("VISQOL_PATH", "/opt/visqol/bin/visqol")
	t.Setenv("VISQOL_MODEL", "/opt/visqol/model.txt")
	t.Setenv("VISQOL_WORKERS", "12")
	t.Setenv("VISQOL_TIMEOUT", "90s")
	t.Setenv("VISQOL_TARGET_RATE", "16000")
	t.Setenv("VISQOL_TEMP_DIR", "/scratch")
	t.Setenv("VISQOL_RESAMPLER", "cubic")
	t.Setenv("VISQOL_STRICT_PAIRS", "true")
	t.Setenv("VISQOL_DECODE_COMPRESSED", "1")

	cfg := Load()

	if cfg.VisqolPath != "/opt/visqol/bin/visqol" {
		t.Errorf("VisqolPath = %q", cfg.VisqolPath)
	}
	if cfg.ModelPath != "/opt/visqol/model.txt" {
		t.Errorf("ModelPath = %q", cfg.ModelPath)
	}
	if cfg.Workers != 12 {
		t.Errorf("Workers = %d, want 12", cfg.Workers)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
	}
	if cfg.TargetRate != 16000 {
		t.Errorf("TargetRate = %d, want 16000", cfg.TargetRate)
	}
	if cfg.TempDir != "/scratch" {
		t.Errorf("TempDir = %q", cfg.TempDir)
	}
	if cfg.Resampler != "cubic" {
		t.Errorf("Resampler = %q", cfg.Resampler)
	}
	if !cfg.StrictPairs || !cfg.DecodeCompressed {
		t.Error("boolean options not read")
	}
}

func TestLoadInvalidFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("VISQOL_WORKERS", "many")
	t.Setenv("VISQOL_TIMEOUT", "soon")
	t.Setenv("VISQOL_STRICT_PAIRS", "perhaps")

	cfg := Load()

	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want fallback 4", cfg.Workers)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want fallback 60s", cfg.Timeout)
	}
	if cfg.StrictPairs {
		t.Error("StrictPairs should fall back to false")
	}
}

func TestTimeoutSeconds(t *testing.T) {
	clearEnv(t)
	t.Setenv("VISQOL_TIMEOUT", "45")

	if got := Load().Timeout; got != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", got)
	}
}

func TestVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("VISQOL_WORKERS", "8")

	vars := Load().Vars()

	want := map[string]string{
		"workers":           "8",
		"timeout":           "1m0s",
		"target_rate":       "48000",
		"resampler":         "linear",
		"strict_pairs":      "false",
		"decode_compressed": "false",
		"visqol_path":       "",
	}
	for k, v := range want {
		got, ok := vars[k]
		if !ok {
			t.Errorf("missing var %q", k)
			continue
		}
		if got != v {
			t.Errorf("vars[%q] = %q, want %q", k, got, v)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("VISQOL_RESAMPLER", "linear")

	dir := t.TempDir()
	file := filepath.Join(dir, "visqol.env")
	content := "VISQOL_WORKERS=6\nVISQOL_RESAMPLER=cubic\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(file); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}

	cfg := Load()
	if cfg.Workers != 6 {
		t.Errorf("Workers = %d, want 6 from file", cfg.Workers)
	}
	if cfg.Resampler != "linear" {
		t.Errorf("Resampler = %q, environment should win over the file", cfg.Resampler)
	}
}

func TestLoadDotEnvMissing(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing file: %v", err)
	}
}
