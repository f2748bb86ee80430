// Package requirement defines the requirement-identifier model shared by the
// scanners, the joiner and the report emitters.
package requirement

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ID is a normalized requirement identifier, e.g. "REQ-001".
type ID string

// Pattern matches requirement identifiers carrying a fixed prefix.
// Matching is case-insensitive; normalized IDs are uppercase with the number
// zero-padded to three digits.
type Pattern struct {
	prefix string
	re     *regexp.Regexp
}

// NewPattern compiles the identifier matcher for prefix (e.g. "REQ").
func NewPattern(prefix string) *Pattern {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	return &Pattern{
		prefix: prefix,
		re:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(prefix) + `-(\d{3})\b`),
	}
}

// Prefix returns the uppercase prefix this pattern matches.
func (p *Pattern) Prefix() string { return p.prefix }

// FindAll returns every identifier in text, normalized, in order of
// appearance. Duplicates are preserved; callers collect into a Set.
func (p *Pattern) FindAll(text string) []ID {
	matches := p.re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	ids := make([]ID, 0, len(matches))
	for _, m := range matches {
		n, _ := strconv.Atoi(m[1])
		ids = append(ids, p.format(n))
	}
	return ids
}

// Normalize returns the canonical form of the first identifier in raw,
// or false if raw contains none.
func (p *Pattern) Normalize(raw string) (ID, bool) {
	m := p.re.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	n, _ := strconv.Atoi(m[1])
	return p.format(n), true
}

func (p *Pattern) format(n int) ID {
	return ID(fmt.Sprintf("%s-%03d", p.prefix, n))
}

// Set is a de-duplicated collection of requirement IDs.
type Set map[ID]struct{}

// NewSet returns a Set seeded with ids.
func NewSet(ids ...ID) Set {
	s := make(Set, len(ids))
	s.Add(ids...)
	return s
}

// Add inserts ids into the set.
func (s Set) Add(ids ...ID) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Union inserts every ID from other.
func (s Set) Union(other Set) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Contains reports whether id is in the set.
func (s Set) Contains(id ID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of IDs in the set.
func (s Set) Len() int { return len(s) }

// Sorted returns the IDs in ascending order.
func (s Set) Sorted() []ID {
	ids := make([]ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
