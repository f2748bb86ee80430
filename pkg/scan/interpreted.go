package scan

import (
	"os"
	"regexp"
	"strings"

	"github.com/reqtrace/reqtrace/pkg/requirement"
)

var (
	// A test definition line: "def test_xxx(".
	pyDefRe = regexp.MustCompile(`^\s*def\s+(test_[A-Za-z0-9_]+)\s*\(`)
	// A marker decorator carrying a string literal: "@pytest.mark.req("...".
	pyMarkerRe = regexp.MustCompile(`(?i)^\s*@\w+\.mark\.[A-Za-z_]\w*\s*\(\s*["']`)
	// A docstring opening immediately after the signature.
	pyDocRe = regexp.MustCompile(`(?s)def\s+(test_[A-Za-z0-9_]+)\s*\([^)]*\)\s*:\s*\n\s*[rRuU]?"""(.*?)"""`)
)

// ScanInterpreted builds the interpreted-suite map by scanning every matched
// file under root. Unreadable files are skipped.
func ScanInterpreted(root string, patterns []string, pat *requirement.Pattern) Map {
	m := Map{}
	for _, path := range Files(root, patterns) {
		raw, err := os.ReadFile(path) // #nosec G304 - paths come from configured globs
		if err != nil {
			continue
		}
		scanInterpretedText(m, DecodeText(raw), pat)
	}
	return m
}

func scanInterpretedText(m Map, text string, pat *requirement.Pattern) {
	lines := strings.Split(text, "\n")

	// Heuristics 1 and 2: marker decorators immediately above a definition,
	// and identifiers embedded in the test name itself.
	for i, line := range lines {
		def := pyDefRe.FindStringSubmatch(line)
		if def == nil {
			continue
		}
		name := def[1]
		m.Add(name, pat.FindAll(name)...)
		for j := i - 1; j >= 0; j-- {
			if !strings.HasPrefix(strings.TrimSpace(lines[j]), "@") {
				break
			}
			if pyMarkerRe.MatchString(lines[j]) {
				m.Add(name, pat.FindAll(lines[j])...)
			}
		}
	}

	// Heuristic 3: docstring immediately following the signature.
	for _, doc := range pyDocRe.FindAllStringSubmatch(text, -1) {
		m.Add(doc[1], pat.FindAll(doc[2])...)
	}

	// Heuristic 4: proximity fallback. An explicit fold over lines with the
	// most recently seen definition as accumulator; identifiers on any line
	// before the next definition attach to it. Union-only, lowest
	// confidence, so it can add but never displace heuristics 1-3.
	current := ""
	for _, line := range lines {
		if def := pyDefRe.FindStringSubmatch(line); def != nil {
			current = def[1]
		}
		if current != "" {
			m.Add(current, pat.FindAll(line)...)
		}
	}
}
