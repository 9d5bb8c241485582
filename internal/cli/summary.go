// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ik5/visqolbatch/batch"
	"github.com/ik5/visqolbatch/engine"
)

// row is one label/value line of an aligned table.
type row struct {
	label string
	value string
}

// renderRows pads labels to a common width so values line up.
func renderRows(rows []row) string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.label))
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString("  ")
		sb.WriteString(KeyStyle.Render(fmt.Sprintf("%-*s", width, r.label)))
		sb.WriteString("  ")
		sb.WriteString(ValueStyle.Render(r.value))
		sb.WriteString("\n")
	}
	return sb.String()
}

// PrintSummary writes the end-of-run summary. savedTo is the JSON path, empty
// when results were not saved.
func PrintSummary(w io.Writer, report *batch.Report, savedTo string) {
	st := report.Statistics

	title := "Batch complete"
	if report.Interrupted {
		title = "Batch interrupted"
	}
	fmt.Fprintln(w, TitleStyle.Render(title))

	rate := fmt.Sprintf("%.1f%%", st.SuccessRate*100)
	switch {
	case st.Total > 0 && st.Successful == st.Total:
		rate = OKStyle.Render(rate)
	case st.Successful == 0:
		rate = FailStyle.Render(rate)
	default:
		rate = WarningStyle.Render(rate)
	}

	rows := []row{
		{"Scored", fmt.Sprintf("%d / %d", st.Successful, st.Total)},
		{"Success rate", rate},
	}
	if s := st.Scores; s != nil {
		rows = append(rows,
			row{"Mean MOS-LQO", fmt.Sprintf("%.3f", s.Mean)},
			row{"MOS-LQO range", fmt.Sprintf("%.3f - %.3f", s.Min, s.Max)},
			row{"MOS-LQO std", fmt.Sprintf("%.3f", s.Std)},
		)
	}
	rows = append(rows,
		row{"Total time", st.TotalElapsed.Round(time.Millisecond).String()},
		row{"Mean per pair", st.MeanElapsed.Round(time.Millisecond).String()},
	)
	fmt.Fprint(w, renderRows(rows))

	if failures := failureRows(report); len(failures) > 0 {
		fmt.Fprintln(w, SectionStyle.Render("Failures:"))
		fmt.Fprint(w, renderRows(failures))
	}

	if n := len(report.Metadata.Unmatched); n > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %d reference file(s) had no degraded partner\n", WarningStyle.Render("Note:"), n)
	}

	if savedTo != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Results saved to:"), ValueStyle.Render(savedTo))
	}
}

// failureRows counts failed entries per kind, in Kinds order.
func failureRows(report *batch.Report) []row {
	counts := make(map[engine.Kind]int)
	for _, e := range report.Entries {
		if !e.Outcome.Success() {
			counts[e.Outcome.Kind]++
		}
	}

	var rows []row
	for _, k := range engine.Kinds() {
		if n := counts[k]; n > 0 {
			rows = append(rows, row{k.String(), fmt.Sprint(n)})
		}
	}
	return rows
}
