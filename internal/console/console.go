// Package console renders the post-run summary for humans.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/reqtrace/reqtrace/internal/pipeline"
)

type styles struct {
	header  lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
	skip    lipgloss.Style
	unknown lipgloss.Style
	faint   lipgloss.Style
}

func colorStyles() styles {
	return styles{
		header:  lipgloss.NewStyle().Bold(true),
		pass:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		skip:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		unknown: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		faint:   lipgloss.NewStyle().Faint(true),
	}
}

func plainStyles() styles {
	plain := lipgloss.NewStyle()
	return styles{header: plain, pass: plain, fail: plain, skip: plain, unknown: plain, faint: plain}
}

// Summarize writes the run summary to w. color selects styled output;
// callers disable it for piped output and NO_COLOR.
func Summarize(w io.Writer, info *pipeline.RunInfo, color bool) {
	st := plainStyles()
	if color {
		st = colorStyles()
	}
	s := info.Stats

	fmt.Fprintln(w, st.header.Render(
		fmt.Sprintf("Requirements: %d, Covered: %d (%.0f%%)", s.Requirements, s.Covered, s.CoveragePct)))
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		st.pass.Render(fmt.Sprintf("passed %d", s.Passed)),
		st.fail.Render(fmt.Sprintf("failed %d", s.Failed)),
		st.skip.Render(fmt.Sprintf("skipped %d", s.Skipped)),
		st.unknown.Render(fmt.Sprintf("unknown %d", s.Unknown)))
	fmt.Fprintln(w, st.faint.Render(
		fmt.Sprintf("artifacts: %s, %s", info.MatrixPath, info.ReportPath)))
}
