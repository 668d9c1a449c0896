package junit

import (
	"os"
	"path/filepath"
	"testing"
)

const suitesXML = `<?xml version="1.0" encoding="UTF-8"?>
<testsuites>
  <testsuite name="auth" tests="3" failures="1" time="4.5">
    <testcase classname="auth.LoginTest" name="testValid" time="1.2"/>
    <testcase classname="auth.LoginTest" name="testInvalid" time="2.0">
      <failure message="expected 401, got 500" type="AssertionError">stack trace here</failure>
    </testcase>
    <testcase classname="auth.LoginTest" name="testLocked" time="1.3">
      <skipped message="flag disabled"/>
    </testcase>
  </testsuite>
  <testsuite name="cart" tests="1" time="0.4">
    <testcase name="testAdd" time="0.4">
      <error>boom from chardata</error>
    </testcase>
  </testsuite>
</testsuites>`

func TestParseSuites(t *testing.T) {
	got, err := Parse([]byte(suitesXML), "suites.xml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []TestOutcome{
		{Name: "auth.LoginTest.testValid", Status: StatusPass, Duration: 1.2},
		{Name: "auth.LoginTest.testInvalid", Status: StatusFail, Message: "expected 401, got 500", Duration: 2.0},
		{Name: "auth.LoginTest.testLocked", Status: StatusSkip, Duration: 1.3},
		{Name: "testAdd", Status: StatusFail, Message: "boom from chardata", Duration: 0.4},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d outcomes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("outcome[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseBareSuite(t *testing.T) {
	xml := `<testsuite name="solo" tests="1">
  <testcase classname="pkg.T" name="testOne" time="0.1"/>
</testsuite>`
	got, err := Parse([]byte(xml), "bare.xml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 1 || got[0].Name != "pkg.T.testOne" || got[0].Status != StatusPass {
		t.Fatalf("unexpected outcomes: %+v", got)
	}
}

func TestParseNestedSuites(t *testing.T) {
	xml := `<testsuites>
  <testsuite name="outer">
    <testcase name="first" time="0.1"/>
    <testsuite name="inner">
      <testcase name="second" time="0.2">
        <failure message="nested fail"/>
      </testcase>
    </testsuite>
  </testsuite>
</testsuites>`
	got, err := Parse([]byte(xml), "nested.xml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(got))
	}
	if got[0].Name != "first" {
		t.Errorf("outcome[0].Name = %q, want %q", got[0].Name, "first")
	}
	if got[1].Name != "second" || got[1].Status != StatusFail || got[1].Message != "nested fail" {
		t.Errorf("outcome[1] = %+v, want nested failure", got[1])
	}
}

func TestParseMessageFallbacks(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{
			name: "failure attribute wins",
			xml:  `<testsuite><testcase name="t"><failure message="attr msg">body</failure></testcase></testsuite>`,
			want: "attr msg",
		},
		{
			name: "failure falls back to body",
			xml:  `<testsuite><testcase name="t"><failure>body only</failure></testcase></testsuite>`,
			want: "body only",
		},
		{
			name: "empty failure gets placeholder",
			xml:  `<testsuite><testcase name="t"><failure/></testcase></testsuite>`,
			want: "Unknown failure",
		},
		{
			name: "empty error gets placeholder",
			xml:  `<testsuite><testcase name="t"><error/></testcase></testsuite>`,
			want: "Unknown error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.xml), "msg.xml")
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("got %d outcomes, want 1", len(got))
			}
			if got[0].Message != tt.want {
				t.Errorf("Message = %q, want %q", got[0].Message, tt.want)
			}
		})
	}
}

func TestParseNegativeDurationClamped(t *testing.T) {
	xml := `<testsuite><testcase name="t" time="-3.5"/></testsuite>`
	got, err := Parse([]byte(xml), "neg.xml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got[0].Duration != 0 {
		t.Errorf("Duration = %v, want 0", got[0].Duration)
	}
}

func TestParseFailureBeatsSkip(t *testing.T) {
	xml := `<testsuite><testcase name="t"><failure message="f"/><skipped/></testcase></testsuite>`
	got, err := Parse([]byte(xml), "both.xml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got[0].Status != StatusFail {
		t.Errorf("Status = %q, want FAIL", got[0].Status)
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("<testsuites><testsuite"), "bad.xml"); err == nil {
		t.Fatal("expected error for malformed XML")
	}
	if _, err := Parse(nil, "empty.xml"); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseRejectsNonJUnitRoot(t *testing.T) {
	// Well-formed XML that is not a JUnit report must surface an error,
	// not decode into an empty suite.
	xml := `<coverage version="1"><file name="a.go"/></coverage>`
	if _, err := Parse([]byte(xml), "coverage.xml"); err == nil {
		t.Fatal("expected error for a non-JUnit root element")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.xml")
	if err := os.WriteFile(path, []byte(suitesXML), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d outcomes, want 4", len(got))
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.xml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
