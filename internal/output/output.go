// SPDX-License-Identifier: EPL-2.0

// Package output writes batch reports as JSON documents.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ik5/visqolbatch/batch"
)

// Result is one scored pair.
type Result struct {
	PairingKey    string   `json:"pairing_key"`
	ReferenceFile string   `json:"reference_file"`
	DegradedFile  string   `json:"degraded_file"`
	Success       bool     `json:"success"`
	MOSLQO        *float64 `json:"mos_lqo,omitempty"`
	Error         string   `json:"error,omitempty"`
	ErrorKind     string   `json:"error_kind,omitempty"`
	// ProcessingTime is in seconds.
	ProcessingTime float64 `json:"processing_time"`
}

// Statistics mirrors stats.Statistics with durations in seconds. The score
// fields are omitted when nothing succeeded.
type Statistics struct {
	TotalFiles            int      `json:"total_files"`
	Successful            int      `json:"successful"`
	Failed                int      `json:"failed"`
	SuccessRate           float64  `json:"success_rate"`
	TotalProcessingTime   float64  `json:"total_processing_time"`
	AverageProcessingTime float64  `json:"average_processing_time"`
	MOSLQOMean            *float64 `json:"mos_lqo_mean,omitempty"`
	MOSLQOMin             *float64 `json:"mos_lqo_min,omitempty"`
	MOSLQOMax             *float64 `json:"mos_lqo_max,omitempty"`
	MOSLQOStd             *float64 `json:"mos_lqo_std,omitempty"`
}

type Metadata struct {
	RunID            string    `json:"run_id"`
	StartedAt        time.Time `json:"started_at"`
	ReferenceDir     string    `json:"reference_dir,omitempty"`
	DegradedDir      string    `json:"degraded_dir,omitempty"`
	TotalPairs       int       `json:"total_pairs"`
	MaxWorkers       int       `json:"max_workers"`
	VisqolExecutable string    `json:"visqol_executable"`
	ModelFile        string    `json:"model_file"`
	// Timeout is the per-pair engine timeout in seconds.
	Timeout     float64  `json:"timeout"`
	Profile     string   `json:"profile"`
	Interrupted bool     `json:"interrupted"`
	Unmatched   []string `json:"unmatched,omitempty"`
	Duplicates  []string `json:"duplicates,omitempty"`
}

// Document is the JSON shape of a report.
type Document struct {
	Results    []Result   `json:"results"`
	Statistics Statistics `json:"statistics"`
	Metadata   Metadata   `json:"metadata"`
}

// FromReport converts a report into its JSON document.
func FromReport(r *batch.Report) Document {
	results := make([]Result, len(r.Entries))
	for i, e := range r.Entries {
		res := Result{
			PairingKey:     e.Pair.Key,
			ReferenceFile:  e.Pair.Reference.String(),
			DegradedFile:   e.Pair.Degraded.String(),
			Success:        e.Outcome.Success(),
			ProcessingTime: e.Outcome.Elapsed.Seconds(),
		}
		if res.Success {
			res.MOSLQO = ptr(e.Outcome.Score)
		} else {
			res.Error = e.Outcome.Message
			res.ErrorKind = string(e.Outcome.Kind)
		}
		results[i] = res
	}

	st := r.Statistics
	stats := Statistics{
		TotalFiles:            st.Total,
		Successful:            st.Successful,
		Failed:                st.Failed,
		SuccessRate:           st.SuccessRate,
		TotalProcessingTime:   st.TotalElapsed.Seconds(),
		AverageProcessingTime: st.MeanElapsed.Seconds(),
	}
	if st.Scores != nil {
		stats.MOSLQOMean = ptr(st.Scores.Mean)
		stats.MOSLQOMin = ptr(st.Scores.Min)
		stats.MOSLQOMax = ptr(st.Scores.Max)
		stats.MOSLQOStd = ptr(st.Scores.Std)
	}

	md := r.Metadata
	return Document{
		Results:    results,
		Statistics: stats,
		Metadata: Metadata{
			RunID:            md.RunID,
			StartedAt:        md.StartedAt,
			ReferenceDir:     md.ReferenceDir,
			DegradedDir:      md.DegradedDir,
			TotalPairs:       md.TotalPairs,
			MaxWorkers:       md.MaxWorkers,
			VisqolExecutable: md.Executable,
			ModelFile:        md.Model,
			Timeout:          md.Timeout.Seconds(),
			Profile:          md.Profile,
			Interrupted:      r.Interrupted,
			Unmatched:        md.Unmatched,
			Duplicates:       md.Duplicates,
		},
	}
}

// Write encodes r as indented JSON.
func Write(w io.Writer, r *batch.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(FromReport(r)); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// Save writes r to path, creating missing parent directories.
func Save(r *batch.Report, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := Write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ptr[T any](v T) *T { return &v }
