// Package trace joins per-ecosystem test-requirement maps with parsed
// result records and aggregates one overall status per requirement.
package trace

import (
	"regexp"
	"strings"

	"github.com/reqtrace/reqtrace/pkg/requirement"
	"github.com/reqtrace/reqtrace/pkg/result"
	"github.com/reqtrace/reqtrace/pkg/scan"
)

// Ecosystem identifies which test suite produced a coverage entry.
type Ecosystem string

const (
	// EcosystemInterpreted is the decorator/marker-driven suite whose
	// results arrive as JUnit-shaped XML.
	EcosystemInterpreted Ecosystem = "interpreted"
	// EcosystemCompiled is the attribute/category-driven suite whose
	// results arrive as TRX-shaped XML.
	EcosystemCompiled Ecosystem = "compiled"
)

// Label is the short display form used in report tables.
func (e Ecosystem) Label() string {
	switch e {
	case EcosystemCompiled:
		return "C#"
	case EcosystemInterpreted:
		return "Py"
	}
	return string(e)
}

// Entry is one observed (requirement, test, outcome) association.
type Entry struct {
	Requirement requirement.ID
	Ecosystem   Ecosystem
	Test        string
	Outcome     result.Outcome
	Reason      result.Reason
}

// Join resolves every mapped test name against the result records and emits
// one Entry per (test, requirement) pair. A test whose name matches no
// record is not an error: it joins with Unknown and a no-result reason, so
// "mapped but never executed" stays visible in the report.
func Join(m scan.Map, records []result.Record, eco Ecosystem) []Entry {
	exact := make(map[string]result.Record, len(records))
	for _, r := range records {
		if _, ok := exact[r.Name]; !ok {
			exact[r.Name] = r
		}
	}

	var entries []Entry
	for _, test := range m.Tests() {
		rec := resolve(test, exact, records)
		for _, id := range m[test].Sorted() {
			entries = append(entries, Entry{
				Requirement: id,
				Ecosystem:   eco,
				Test:        test,
				Outcome:     rec.Outcome,
				Reason:      rec.Reason,
			})
		}
	}
	return entries
}

// resolve looks a discovered test name up among result records: exact name
// first, then a qualified-name suffix (".name" or "::name"), then a regex
// tolerating parameterized qualified names ("Namespace.Class.name(...)").
func resolve(name string, exact map[string]result.Record, records []result.Record) result.Record {
	if r, ok := exact[name]; ok {
		return r
	}

	dotSuffix, colonSuffix := "."+name, "::"+name
	for _, r := range records {
		if strings.HasSuffix(r.Name, dotSuffix) || strings.HasSuffix(r.Name, colonSuffix) {
			return r
		}
	}

	re := regexp.MustCompile(`(^|[.:])` + regexp.QuoteMeta(name) + `\s*\(`)
	for _, r := range records {
		if re.MatchString(r.Name) {
			return r
		}
	}

	return result.Record{Name: name, Outcome: result.Unknown, Reason: result.ReasonNoResult}
}

// Requirement summarizes one requirement's coverage.
type Requirement struct {
	ID      requirement.ID
	Overall result.Outcome
	Entries []Entry
}

// Covered reports whether at least one coverage entry exists.
func (r *Requirement) Covered() bool { return len(r.Entries) > 0 }

// Summary is the aggregated traceability data for one run, sorted by
// requirement ID.
type Summary struct {
	Requirements []Requirement
}

// Aggregate groups entries by requirement over the full reporting universe.
// Every universe ID appears exactly once; IDs with no entries surface as
// Unknown and uncovered. The overall status is the worst-case entry outcome
// under the severity order Failed > Unknown > Skipped > Passed.
func Aggregate(universe requirement.Set, entries []Entry) *Summary {
	byID := make(map[requirement.ID][]Entry)
	all := requirement.NewSet()
	all.Union(universe)
	for _, e := range entries {
		byID[e.Requirement] = append(byID[e.Requirement], e)
		all.Add(e.Requirement)
	}

	s := &Summary{Requirements: make([]Requirement, 0, all.Len())}
	for _, id := range all.Sorted() {
		es := byID[id]
		overall := result.Unknown
		if len(es) > 0 {
			outcomes := make([]result.Outcome, len(es))
			for i, e := range es {
				outcomes[i] = e.Outcome
			}
			overall = result.WorstOf(outcomes)
		}
		s.Requirements = append(s.Requirements, Requirement{ID: id, Overall: overall, Entries: es})
	}
	return s
}

// Failing returns the requirements whose overall status is Failed.
func (s *Summary) Failing() []Requirement {
	var out []Requirement
	for _, r := range s.Requirements {
		if r.Overall == result.Failed {
			out = append(out, r)
		}
	}
	return out
}

// Uncovered returns the IDs with zero coverage entries.
func (s *Summary) Uncovered() []requirement.ID {
	var out []requirement.ID
	for _, r := range s.Requirements {
		if !r.Covered() {
			out = append(out, r.ID)
		}
	}
	return out
}
