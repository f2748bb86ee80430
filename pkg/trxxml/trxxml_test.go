package trxxml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reqtrace/reqtrace/pkg/result"
)

// sampleTRX uses the canonical TeamTest namespace, the nested category
// convention for one test and the flat convention for another.
const sampleTRX = `<?xml version="1.0" encoding="utf-8"?>
<TestRun xmlns="http://microsoft.com/schemas/VisualStudio/TeamTest/2010">
  <TestDefinitions>
    <UnitTest id="aaa-111" name="test_subcool_trip">
      <TestCategory>
        <TestCategoryItem TestCategory="REQ-001"/>
      </TestCategory>
    </UnitTest>
    <UnitTest id="bbb-222" name="test_overpressure_trip">
      <TestCategoryItem>REQ-004</TestCategoryItem>
    </UnitTest>
  </TestDefinitions>
  <Results>
    <UnitTestResult testId="aaa-111" testName="Controller.Tests.SafetyTests.test_subcool_trip" outcome="Passed"/>
    <UnitTestResult testId="bbb-222" testName="Controller.Tests.SafetyTests.test_overpressure_trip" outcome="Failed"/>
  </Results>
</TestRun>`

func TestRead_ResultsAndCategories(t *testing.T) {
	doc, err := Read(strings.NewReader(sampleTRX))
	if err != nil {
		t.Fatal(err)
	}

	records := doc.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Outcome != result.Passed || records[1].Outcome != result.Failed {
		t.Errorf("unexpected outcomes: %+v", records)
	}

	cats := doc.Categories()
	if got := cats["Controller.Tests.SafetyTests.test_subcool_trip"]; len(got) != 1 || got[0] != "REQ-001" {
		t.Errorf("expected nested-convention category REQ-001, got %v", got)
	}
	if got := cats["Controller.Tests.SafetyTests.test_overpressure_trip"]; len(got) != 1 || got[0] != "REQ-004" {
		t.Errorf("expected text-convention category REQ-004, got %v", got)
	}
}

func TestRead_NamespacePrefixTolerated(t *testing.T) {
	input := `<t:TestRun xmlns:t="urn:whatever">
  <t:Results>
    <t:UnitTestResult testName="test_a" outcome="Passed"/>
  </t:Results>
</t:TestRun>`
	doc, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Records()) != 1 {
		t.Fatalf("expected 1 record under a prefixed namespace, got %d", len(doc.Records()))
	}
}

func TestRead_MissingOutcomeWithErrorInfo(t *testing.T) {
	input := `<TestRun><Results>
  <UnitTestResult testName="test_broken">
    <Output><ErrorInfo><Message>NullReferenceException</Message></ErrorInfo></Output>
  </UnitTestResult>
</Results></TestRun>`
	doc, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Records()[0].Outcome != result.Failed {
		t.Errorf("expected Failed from error evidence, got %s", doc.Records()[0].Outcome)
	}
}

func TestRead_MissingOutcomeNoEvidence(t *testing.T) {
	input := `<TestRun><Results><UnitTestResult testName="test_silent"/></Results></TestRun>`
	doc, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	rec := doc.Records()[0]
	if rec.Outcome != result.Unknown {
		t.Errorf("expected Unknown, got %s", rec.Outcome)
	}
	if rec.Reason != result.ReasonUnclassified {
		t.Errorf("expected unclassified reason, got %q", rec.Reason)
	}
}

func TestRead_UnrecognizedOutcomeString(t *testing.T) {
	input := `<TestRun><Results><UnitTestResult testName="test_odd" outcome="Exploded"/></Results></TestRun>`
	doc, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	rec := doc.Records()[0]
	if rec.Outcome != result.Unknown || rec.Reason != result.ReasonUnclassified {
		t.Errorf("expected Unknown with unclassified reason, got %+v", rec)
	}
}

func TestRead_NamelessResultFallsBackToID(t *testing.T) {
	input := `<TestRun><Results><UnitTestResult executionId="exec-9" outcome="Passed"/></Results></TestRun>`
	doc, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Records()[0].Name != "exec-9" {
		t.Errorf("expected executionId fallback name, got %q", doc.Records()[0].Name)
	}
}

func TestRead_LowercaseAttributeConvention(t *testing.T) {
	input := `<TestRun><Results><UnitTestResult testname="test_lc" result="Passed"/></Results></TestRun>`
	doc, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	rec := doc.Records()[0]
	if rec.Name != "test_lc" || rec.Outcome != result.Passed {
		t.Errorf("expected lowercase attribute conventions accepted, got %+v", rec)
	}
}

func TestParseFile_MalformedYieldsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.trx")
	if err := os.WriteFile(path, []byte("not xml at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if records := ParseFile(path); len(records) != 0 {
		t.Errorf("expected no records from a malformed file, got %d", len(records))
	}
}
