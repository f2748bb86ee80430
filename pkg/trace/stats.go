package trace

import "github.com/reqtrace/reqtrace/pkg/result"

// Stats holds the per-run rollup counts. Percentages are computed over the
// full requirement universe: an uncovered requirement still counts in the
// denominator.
type Stats struct {
	Requirements int
	Covered      int
	Passed       int
	Failed       int
	Skipped      int
	Unknown      int
	CoveragePct  float64
	PassPct      float64
}

// ComputeStats aggregates counts from a summary.
func ComputeStats(s *Summary) Stats {
	var st Stats
	st.Requirements = len(s.Requirements)
	for _, r := range s.Requirements {
		if r.Covered() {
			st.Covered++
		}
		switch r.Overall {
		case result.Passed:
			st.Passed++
		case result.Failed:
			st.Failed++
		case result.Skipped:
			st.Skipped++
		default:
			st.Unknown++
		}
	}
	if st.Requirements > 0 {
		st.CoveragePct = float64(st.Covered) / float64(st.Requirements) * 100
		st.PassPct = float64(st.Passed) / float64(st.Requirements) * 100
	}
	return st
}
