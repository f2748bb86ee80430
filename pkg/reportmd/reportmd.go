// Package reportmd renders the aggregated traceability data as markdown.
// Both emitters are pure functions from the summary to text.
package reportmd

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/reqtrace/reqtrace/pkg/result"
	"github.com/reqtrace/reqtrace/pkg/trace"
)

// placeholder fills cells for requirements with no coverage entries.
const placeholder = "–"

// Matrix renders the traceability matrix: one row per coverage entry,
// sorted by requirement, with a placeholder row for uncovered requirements.
func Matrix(s *trace.Summary) string {
	header := []string{"Requirement", "Ecosystem", "Test", "Outcome"}
	var rows [][]string
	for _, req := range s.Requirements {
		if !req.Covered() {
			rows = append(rows, []string{string(req.ID), placeholder, placeholder, placeholder})
			continue
		}
		for _, e := range req.Entries {
			rows = append(rows, []string{string(e.Requirement), e.Ecosystem.Label(), e.Test, outcomeCell(e.Outcome, e.Reason)})
		}
	}
	if len(rows) == 0 {
		rows = append(rows, []string{placeholder, placeholder, placeholder, placeholder})
	}
	return table(header, rows)
}

// Report renders the validation report: header counts, failing and
// uncovered sections (only when non-empty), and the per-requirement rollup.
func Report(s *trace.Summary) string {
	st := trace.ComputeStats(s)

	var b strings.Builder
	b.WriteString("# Validation Report\n\n")
	fmt.Fprintf(&b, "- **Requirements**: %d\n", st.Requirements)
	fmt.Fprintf(&b, "- **Covered**: %d (%.0f%%)\n", st.Covered, st.CoveragePct)
	fmt.Fprintf(&b, "- **Passed**: %d (%.0f%%)\n", st.Passed, st.PassPct)
	fmt.Fprintf(&b, "- **Failed**: %d\n", st.Failed)
	fmt.Fprintf(&b, "- **Skipped**: %d\n", st.Skipped)
	fmt.Fprintf(&b, "- **Unknown**: %d\n", st.Unknown)
	b.WriteString("\n")

	if failing := s.Failing(); len(failing) > 0 {
		b.WriteString("## Failing Requirements\n")
		for _, req := range failing {
			parts := make([]string, 0, len(req.Entries))
			for _, e := range req.Entries {
				parts = append(parts, fmt.Sprintf("%s:%s (%s)", e.Ecosystem.Label(), e.Test, e.Outcome))
			}
			fmt.Fprintf(&b, "- %s: %s\n", req.ID, strings.Join(parts, "; "))
		}
		b.WriteString("\n")
	}

	if uncovered := s.Uncovered(); len(uncovered) > 0 {
		b.WriteString("## Uncovered Requirements\n")
		for _, id := range uncovered {
			fmt.Fprintf(&b, "- %s\n", id)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Per-Requirement Status\n")
	rows := make([][]string, 0, len(s.Requirements))
	for _, req := range s.Requirements {
		rows = append(rows, []string{string(req.ID), string(req.Overall), testsCell(req)})
	}
	b.WriteString(table([]string{"Requirement", "Overall", "Tests"}, rows))
	return b.String()
}

func testsCell(req trace.Requirement) string {
	if !req.Covered() {
		return "<none>"
	}
	parts := make([]string, 0, len(req.Entries))
	for _, e := range req.Entries {
		parts = append(parts, fmt.Sprintf("%s:%s — %s", e.Ecosystem.Label(), e.Test, outcomeCell(e.Outcome, e.Reason)))
	}
	return strings.Join(parts, "<br/>")
}

func outcomeCell(o result.Outcome, reason result.Reason) string {
	if o == result.Unknown && reason != result.ReasonNone {
		return fmt.Sprintf("%s (%s)", o, reason)
	}
	return string(o)
}

// table renders a markdown table with columns padded to equal display
// width, so the raw document stays readable too.
func table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for i, cell := range cells {
			b.WriteString(" ")
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(header)
	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("|")
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}
