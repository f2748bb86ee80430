// Package result defines the uniform test-result model both artifact parsers
// produce and the aggregator consumes.
package result

import "strings"

// Outcome classifies a single test execution.
type Outcome string

const (
	Passed  Outcome = "Passed"
	Failed  Outcome = "Failed"
	Skipped Outcome = "Skipped"
	Unknown Outcome = "Unknown"
)

// severity ranks outcomes for aggregation. Higher is worse: Failed dominates
// everything, Unknown sits between Skipped and Failed, Passed is best.
func (o Outcome) severity() int {
	switch o {
	case Failed:
		return 3
	case Unknown:
		return 2
	case Skipped:
		return 1
	case Passed:
		return 0
	}
	// Anything off-enum aggregates like Unknown.
	return 2
}

// Worst returns the more severe of a and b.
func Worst(a, b Outcome) Outcome {
	if b.severity() > a.severity() {
		return b
	}
	return a
}

// WorstOf folds outcomes to the single most severe value.
// An empty input yields Unknown.
func WorstOf(outcomes []Outcome) Outcome {
	if len(outcomes) == 0 {
		return Unknown
	}
	worst := outcomes[0]
	for _, o := range outcomes[1:] {
		worst = Worst(worst, o)
	}
	return worst
}

// NormalizeOutcome maps an artifact outcome string onto the Outcome enum.
// Unrecognized strings map to Unknown.
func NormalizeOutcome(s string) Outcome {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "passed", "pass", "success", "ok":
		return Passed
	case "failed", "fail", "error":
		return Failed
	case "skipped", "skip", "notexecuted", "inconclusive":
		return Skipped
	default:
		return Unknown
	}
}

// Reason qualifies an Unknown outcome so that "declared but never executed"
// stays distinguishable from "executed but outcome unreadable".
type Reason string

const (
	// ReasonNone means the outcome came straight from a result artifact.
	ReasonNone Reason = ""
	// ReasonNoResult means a mapped test matched no result record.
	ReasonNoResult Reason = "no result"
	// ReasonUnclassified means a result record existed but its outcome
	// string could not be classified.
	ReasonUnclassified Reason = "outcome unreadable"
)

// Record is one parsed {name, outcome} row from a result artifact.
type Record struct {
	Name    string
	Outcome Outcome
	Reason  Reason
}
