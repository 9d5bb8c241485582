// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/ik5/visqolbatch/engine"
)

// PrintStatus renders an installation check and reports whether scoring can
// run.
func PrintStatus(w io.Writer, st engine.Status) bool {
	fmt.Fprintln(w, TitleStyle.Render("visqol-batch installation check"))

	fmt.Fprintln(w, SectionStyle.Render("System:"))
	fmt.Fprint(w, renderRows([]row{
		{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
		{"Go", runtime.Version()},
	}))

	fmt.Fprintln(w, SectionStyle.Render("Engine:"))
	fmt.Fprint(w, renderRows([]row{
		{"Executable", found(st.EngineFound, st.EnginePath)},
		{"Model", found(st.ModelFound, st.ModelPath)},
	}))

	fmt.Fprintln(w, SectionStyle.Render("Build tools:"))
	fmt.Fprint(w, renderRows([]row{
		{st.Rustc.Name, toolLine(st.Rustc)},
		{st.Cargo.Name, toolLine(st.Cargo)},
	}))

	if len(st.Errors) > 0 {
		fmt.Fprintln(w, SectionStyle.Render("Problems:"))
		for _, e := range st.Errors {
			fmt.Fprintf(w, "  %s %s\n", mark(false), e)
		}
	}

	fmt.Fprintln(w)
	if st.OK() {
		fmt.Fprintln(w, OKStyle.Render("Ready to score."))
		return true
	}
	fmt.Fprintln(w, FailStyle.Render("Not ready: set --visqol-path and --model-path, or install visqol-rs."))
	return false
}

func found(ok bool, path string) string {
	if !ok {
		return mark(false) + " not found"
	}
	return mark(true) + " " + path
}

func toolLine(t engine.Tool) string {
	if !t.Available {
		return mark(false) + " not installed"
	}
	return mark(true) + " " + t.Version
}
