// Package junitxml parses JUnit-shaped XML result artifacts into the uniform
// result model.
//
// Interpreted-suite runners emit one <testcase> element per executed test.
// The outcome is carried by child marker elements, not attributes: a
// <skipped> child means Skipped, a <failure> or <error> child means Failed,
// no marker means Passed.
package junitxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reqtrace/reqtrace/internal/xmlenc"
	"github.com/reqtrace/reqtrace/pkg/result"
)

// ParseFile parses one artifact best-effort: any read or parse failure
// yields an empty slice. A corrupt file must not abort the run.
func ParseFile(path string) []result.Record {
	f, err := os.Open(path) // #nosec G304 - artifact paths come from configured globs
	if err != nil {
		return nil
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil
	}
	return records
}

// Parse walks every <testcase> element at any depth, ignoring namespaces.
func Parse(r io.Reader) ([]result.Record, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = xmlenc.CharsetReader

	var records []result.Record
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode junit xml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "testcase" {
			continue
		}
		rec, err := parseCase(dec, se)
		if err != nil {
			return nil, fmt.Errorf("decode junit testcase: %w", err)
		}
		if rec.Name == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseCase consumes one testcase element, se included, through its end tag.
func parseCase(dec *xml.Decoder, se xml.StartElement) (result.Record, error) {
	name := CanonicalName(attrValue(se, "name"))
	outcome := result.Passed

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return result.Record{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "failure", "error":
				outcome = result.Failed
			case "skipped":
				// Failure evidence wins over a skip marker.
				if outcome != result.Failed {
					outcome = result.Skipped
				}
			}
		case xml.EndElement:
			depth--
		}
	}
	return result.Record{Name: name, Outcome: outcome}, nil
}

// CanonicalName strips parameterization suffixes: runners encode parameters
// as "test_foo[param]" or "test_foo(param)"; everything from the first '['
// or '(' onward is dropped.
func CanonicalName(name string) string {
	if i := strings.IndexAny(name, "[("); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

func attrValue(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if strings.EqualFold(a.Name.Local, local) {
			return a.Value
		}
	}
	return ""
}
