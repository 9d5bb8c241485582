// SPDX-License-Identifier: EPL-2.0

// Package config reads visqol-batch defaults from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// Config holds the runtime defaults. Command line flags override every field.
type Config struct {
	// Engine
	VisqolPath string
	ModelPath  string
	Timeout    time.Duration

	// Batch
	Workers     int
	StrictPairs bool

	// Normalization
	TargetRate       int
	TempDir          string
	Resampler        string
	DecodeCompressed bool
}

// LoadDotEnv loads variables from the given files, ".env" when none are
// given. Variables already set in the environment win. Missing files are not
// an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	present := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		present = append(present, f)
	}
	if len(present) == 0 {
		return nil
	}

	return godotenv.Load(present...)
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		VisqolPath: envStr("VISQOL_PATH", ""),
		ModelPath:  envStr("VISQOL_MODEL", ""),
		Timeout:    envDuration("VISQOL_TIMEOUT", 60*time.Second),

		Workers:     envInt("VISQOL_WORKERS", 4),
		StrictPairs: envBool("VISQOL_STRICT_PAIRS", false),

		TargetRate:       envInt("VISQOL_TARGET_RATE", 48000),
		TempDir:          envStr("VISQOL_TEMP_DIR", ""),
		Resampler:        envStr("VISQOL_RESAMPLER", "linear"),
		DecodeCompressed: envBool("VISQOL_DECODE_COMPRESSED", false),
	}
}

// Vars exposes the configuration as kong interpolation variables, so flag
// tags can use defaults such as `default:"${workers}"`.
func (c Config) Vars() kong.Vars {
	return kong.Vars{
		"visqol_path":       c.VisqolPath,
		"model_path":        c.ModelPath,
		"timeout":           c.Timeout.String(),
		"workers":           strconv.Itoa(c.Workers),
		"strict_pairs":      strconv.FormatBool(c.StrictPairs),
		"target_rate":       strconv.Itoa(c.TargetRate),
		"temp_dir":          c.TempDir,
		"resampler":         c.Resampler,
		"decode_compressed": strconv.FormatBool(c.DecodeCompressed),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// envDuration accepts a Go duration ("90s", "2m") or a bare number of seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
