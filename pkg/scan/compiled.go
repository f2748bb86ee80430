package scan

import (
	"os"
	"regexp"
	"strings"

	"github.com/reqtrace/reqtrace/pkg/requirement"
)

var (
	// A method with its preceding attribute block, any attribute order.
	csMethodRe = regexp.MustCompile(
		`(?s)((?:\s*\[[^\]]+\]\s*)*)\s*` +
			`(?:public|private|internal|protected)\s+(?:static\s+)?(?:async\s+)?` +
			`(?:void|Task(?:<[^>]+>)?)\s+([A-Za-z0-9_]+)\s*\(`)
	// Attributes that designate a method as a test.
	csTestAttrRe = regexp.MustCompile(`(?i)\[\s*(Test|TestMethod|Theory|TestCase|TestCaseSource|TestOf)\b`)
	// A categorization attribute call; the argument is scanned for IDs.
	csCategoryRe = regexp.MustCompile(`(?i)(?:Test)?Category\s*\(([^)]*)\)`)
	// A class with its attribute block and body.
	csClassRe = regexp.MustCompile(
		`(?s)((?:\s*\[[^\]]+\]\s*)*)\s*` +
			`(?:public|internal)\s+(?:sealed\s+|static\s+|abstract\s+|partial\s+)*class\s+[A-Za-z0-9_]+[^{]*\{(.*)\}`)
	// A signature line whose method name carries the test prefix.
	csTestMethodLineRe = regexp.MustCompile(
		`(?i)^\s*(?:public|private|internal|protected)\s+(?:static\s+)?(?:async\s+)?` +
			`(?:void|Task(?:<[^>]+>)?)\s+(test[A-Za-z0-9_]*)\s*\(`)
)

// ScanCompiled builds the compiled-suite map by scanning every matched file
// under root. Unreadable files are skipped.
func ScanCompiled(root string, patterns []string, pat *requirement.Pattern) Map {
	m := Map{}
	for _, path := range Files(root, patterns) {
		raw, err := os.ReadFile(path) // #nosec G304 - paths come from configured globs
		if err != nil {
			continue
		}
		scanCompiledText(m, DecodeText(raw), pat)
	}
	return m
}

func scanCompiledText(m Map, text string, pat *requirement.Pattern) {
	// Container-level categories propagate to every test method defined in
	// the container body. Method-level metadata is unioned in below, never
	// overridden.
	for _, cm := range csClassRe.FindAllStringSubmatch(text, -1) {
		classIDs := categoryIDs(cm[1], pat)
		if len(classIDs) == 0 {
			continue
		}
		for _, mm := range csMethodRe.FindAllStringSubmatch(cm[2], -1) {
			if csTestAttrRe.MatchString(mm[1]) {
				m.Add(mm[2], classIDs...)
			}
		}
	}

	// Method-level categories. A method only counts as a test here when its
	// attribute block carries a test-designator attribute.
	for _, mm := range csMethodRe.FindAllStringSubmatch(text, -1) {
		attrs, name := mm[1], mm[2]
		if !csTestAttrRe.MatchString(attrs) {
			continue
		}
		m.Add(name, categoryIDs(attrs, pat)...)
	}

	// Name, doc-comment and proximity heuristics apply to any method whose
	// name carries the test prefix, attributes or not.
	lines := strings.Split(text, "\n")
	current := ""
	for i, line := range lines {
		if mm := csTestMethodLineRe.FindStringSubmatch(line); mm != nil {
			current = mm[1]
			m.Add(current, pat.FindAll(current)...)
			m.Add(current, docCommentIDs(lines, i, pat)...)
		}
		if current != "" {
			m.Add(current, pat.FindAll(line)...)
		}
	}
}

// categoryIDs extracts requirement IDs from categorization attribute calls
// inside an attribute block.
func categoryIDs(attrs string, pat *requirement.Pattern) []requirement.ID {
	var ids []requirement.ID
	for _, cm := range csCategoryRe.FindAllStringSubmatch(attrs, -1) {
		ids = append(ids, pat.FindAll(cm[1])...)
	}
	return ids
}

// docCommentIDs collects IDs from the contiguous doc-comment block above
// lines[sig], skipping over attribute lines between the block and the
// signature.
func docCommentIDs(lines []string, sig int, pat *requirement.Pattern) []requirement.ID {
	var ids []requirement.ID
	for j := sig - 1; j >= 0; j-- {
		trimmed := strings.TrimSpace(lines[j])
		switch {
		case strings.HasPrefix(trimmed, "///"):
			ids = append(ids, pat.FindAll(trimmed)...)
		case strings.HasPrefix(trimmed, "[") || trimmed == "":
			// attribute or blank line between doc block and signature
		default:
			return ids
		}
	}
	return ids
}
