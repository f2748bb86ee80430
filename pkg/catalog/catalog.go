// Package catalog loads the external requirements catalog that seeds the
// reporting universe, and provides the salvage scan used when nothing else
// declares any requirement.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reqtrace/reqtrace/pkg/requirement"
	"github.com/reqtrace/reqtrace/pkg/scan"
)

// Entry is one declared requirement. Only the ID feeds the pipeline; the
// rest is carried for tooling that reads the catalog directly.
type Entry struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// File is the on-disk catalog document.
type File struct {
	Requirements []Entry `yaml:"requirements"`
}

// Load reads a catalog and returns the declared requirement IDs,
// normalized. Entries whose ID does not match the pattern are dropped.
// A configured catalog that cannot be read or parsed is a hard error.
func Load(path string, pat *requirement.Pattern) (requirement.Set, error) {
	data, err := os.ReadFile(path) // #nosec G304 - catalog path comes from config
	if err != nil {
		return nil, fmt.Errorf("read requirements catalog %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		// Also accept a bare top-level list of entries.
		var list []Entry
		if listErr := yaml.Unmarshal(data, &list); listErr != nil {
			return nil, fmt.Errorf("parse requirements catalog %s: %w", path, err)
		}
		f.Requirements = list
	}

	ids := requirement.NewSet()
	for _, e := range f.Requirements {
		if id, ok := pat.Normalize(e.ID); ok {
			ids.Add(id)
		}
	}
	return ids, nil
}

// salvageExts are the file types worth scanning for stray identifiers.
var salvageExts = map[string]struct{}{
	".cs": {}, ".py": {}, ".md": {}, ".yml": {}, ".yaml": {}, ".txt": {},
}

// Salvage scans the roots for requirement-identifier-shaped text in source
// and documentation files. It is the last-resort universe seed when neither
// scanner nor catalog produced a single ID; every salvaged requirement
// reports as Unknown and uncovered.
func Salvage(roots []string, pat *requirement.Pattern) requirement.Set {
	ids := requirement.NewSet()
	for _, root := range roots {
		for _, path := range scan.Files(root, []string{"**/*"}) {
			if _, ok := salvageExts[strings.ToLower(filepath.Ext(path))]; !ok {
				continue
			}
			raw, err := os.ReadFile(path) // #nosec G304 - paths come from configured roots
			if err != nil {
				continue
			}
			ids.Add(pat.FindAll(scan.DecodeText(raw))...)
		}
	}
	return ids
}
