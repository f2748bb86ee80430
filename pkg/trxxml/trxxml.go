// Package trxxml parses TRX-shaped (Visual Studio test) result artifacts.
//
// A TRX document carries two linked node sets: UnitTest definitions (one per
// unique test, keyed by an opaque id, optionally tagged with categories) and
// UnitTestResult nodes (one per execution, referencing the definition id).
// Upstream runners disagree on the namespace they declare and on how
// categories are nested, so traversal matches local element names only and
// both category conventions are accepted.
package trxxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reqtrace/reqtrace/internal/xmlenc"
	"github.com/reqtrace/reqtrace/pkg/result"
)

// Document is a parsed TRX artifact.
type Document struct {
	records    []result.Record
	categories map[string][]string // test name -> raw category values
}

// Records returns the parsed result rows.
func (d *Document) Records() []result.Record { return d.records }

// Categories returns category tags per test name, joined across the
// definition and result node sets. Tests without categories are absent.
func (d *Document) Categories() map[string][]string { return d.categories }

// ParseFile parses one artifact best-effort: any read or parse failure
// yields an empty slice. A corrupt file must not abort the run.
func ParseFile(path string) []result.Record {
	doc, err := ReadFile(path)
	if err != nil {
		return nil
	}
	return doc.Records()
}

// ReadFile parses a TRX document from disk.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path) // #nosec G304 - artifact paths come from configured globs
	if err != nil {
		return nil, fmt.Errorf("open trx file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a TRX document from an io.Reader.
func Read(r io.Reader) (*Document, error) {
	root, err := parseTree(r)
	if err != nil {
		return nil, err
	}

	// Definition set: test id -> categories.
	byID := make(map[string][]string)
	for _, ut := range root.findAll("UnitTest") {
		id := ut.attr("id")
		if id == "" {
			continue
		}
		for _, item := range ut.findAll("TestCategoryItem") {
			// Category value as a named attribute or as element text.
			v := item.attr("TestCategory", "name", "value")
			if v == "" {
				v = strings.TrimSpace(item.text)
			}
			if v != "" {
				byID[id] = append(byID[id], v)
			}
		}
	}

	doc := &Document{categories: make(map[string][]string)}
	for _, res := range root.findAll("UnitTestResult") {
		rec := parseResult(res)
		if rec.Name == "" {
			continue
		}
		doc.records = append(doc.records, rec)
		if cats := byID[res.attr("testId")]; len(cats) > 0 {
			doc.categories[rec.Name] = append(doc.categories[rec.Name], cats...)
		}
	}
	return doc, nil
}

// parseResult classifies one UnitTestResult node.
func parseResult(res *node) result.Record {
	name := res.attr("testName", "testname")
	if name == "" {
		// Last-resort identity so the row is not lost entirely.
		name = res.attr("executionId", "testId")
	}

	rec := result.Record{Name: strings.TrimSpace(name)}
	switch outcome := res.attr("outcome", "result"); {
	case outcome != "":
		rec.Outcome = result.NormalizeOutcome(outcome)
		if rec.Outcome == result.Unknown {
			rec.Reason = result.ReasonUnclassified
		}
	case hasErrorEvidence(res):
		rec.Outcome = result.Failed
	default:
		rec.Outcome = result.Unknown
		rec.Reason = result.ReasonUnclassified
	}
	return rec
}

// hasErrorEvidence reports whether a result node carries a nested
// ErrorInfo/Message block.
func hasErrorEvidence(res *node) bool {
	for _, ei := range res.findAll("ErrorInfo") {
		if len(ei.findAll("Message")) > 0 {
			return true
		}
	}
	return false
}

// node is a namespace-free XML element tree.
type node struct {
	name     string
	attrs    []xml.Attr
	text     string
	children []*node
}

// parseTree builds the element tree, keeping local names only.
func parseTree(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = xmlenc.CharsetReader

	root := &node{}
	stack := []*node{root}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode trx xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local, attrs: append([]xml.Attr(nil), t.Attr...)}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			stack[len(stack)-1].text += string(t)
		}
	}
	if len(root.children) == 0 {
		return nil, fmt.Errorf("decode trx xml: no elements")
	}
	return root, nil
}

// findAll returns every descendant element with the given local name.
func (n *node) findAll(local string) []*node {
	var out []*node
	for _, c := range n.children {
		if strings.EqualFold(c.name, local) {
			out = append(out, c)
		}
		out = append(out, c.findAll(local)...)
	}
	return out
}

// attr returns the first attribute value among names, matched
// case-insensitively by local name.
func (n *node) attr(names ...string) string {
	for _, want := range names {
		for _, a := range n.attrs {
			if strings.EqualFold(a.Name.Local, want) {
				return a.Value
			}
		}
	}
	return ""
}
