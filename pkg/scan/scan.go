// Package scan recovers test-to-requirement associations by statically
// scanning test source text.
//
// Result artifacts do not reliably carry requirement metadata, so each
// ecosystem's sources are scanned with layered heuristics: explicit
// categorization markers, identifiers embedded in test names, identifiers in
// documentation blocks, and a low-confidence proximity fallback. Heuristics
// are independent producers whose outputs are unioned per test; a weaker
// heuristic never overrides a stronger one.
package scan

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/reqtrace/reqtrace/pkg/requirement"
)

// Map associates discovered test names with requirement IDs for one
// ecosystem.
type Map map[string]requirement.Set

// Add unions ids into the entry for test. No-op when ids is empty, so a
// heuristic that found nothing does not invent an empty mapping.
func (m Map) Add(test string, ids ...requirement.ID) {
	if len(ids) == 0 {
		return
	}
	s, ok := m[test]
	if !ok {
		s = requirement.NewSet()
		m[test] = s
	}
	s.Add(ids...)
}

// Merge unions every entry of other into m.
func (m Map) Merge(other Map) {
	for test, ids := range other {
		m.Add(test, ids.Sorted()...)
	}
}

// Requirements returns the union of all mapped IDs.
func (m Map) Requirements() requirement.Set {
	all := requirement.NewSet()
	for _, ids := range m {
		all.Union(ids)
	}
	return all
}

// Tests returns the mapped test names in ascending order.
func (m Map) Tests() []string {
	tests := make([]string, 0, len(m))
	for t := range m {
		tests = append(tests, t)
	}
	sort.Strings(tests)
	return tests
}

// Files walks root and returns every file whose slash-separated relative
// path matches any of the doublestar patterns, sorted for deterministic
// scan order. A missing or unreadable root yields an empty list, not an
// error; absence of sources is surfaced by the caller as a warning.
func Files(root string, patterns []string) []string {
	var out []string
	seen := make(map[string]struct{})

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		for _, pat := range patterns {
			ok, matchErr := doublestar.Match(pat, rel)
			if matchErr != nil || !ok {
				continue
			}
			if _, dup := seen[path]; !dup {
				seen[path] = struct{}{}
				out = append(out, path)
			}
			break
		}
		return nil
	})

	sort.Strings(out)
	return out
}
