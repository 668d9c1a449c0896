package junit

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// Status is the outcome of a single test execution.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusSkip Status = "SKIP"
)

// TestOutcome is one test execution extracted from a report file.
type TestOutcome struct {
	// Name is the fully qualified test name: "<classname>.<name>" when the
	// testcase carries a classname attribute, otherwise just "<name>".
	Name string

	// Status is the resolved outcome. A testcase with both a failure child
	// and a skipped child counts as FAIL.
	Status Status

	// Message is the raw failure or error message. Empty for PASS and SKIP.
	Message string

	// Duration is the testcase wall time in seconds, never negative.
	Duration float64
}

// testSuites is the <testsuites> root element of JUnit XML.
type testSuites struct {
	XMLName xml.Name    `xml:"testsuites"`
	Suites  []testSuite `xml:"testsuite"`
}

// testSuite is one <testsuite>. Suites may nest, so each suite carries its
// own children. The XMLName pin makes the bare-root fallback in Parse
// reject well-formed XML that is not a JUnit report.
type testSuite struct {
	XMLName xml.Name    `xml:"testsuite"`
	Name    string      `xml:"name,attr"`
	Time    float64     `xml:"time,attr"`
	Suites  []testSuite `xml:"testsuite"`
	Cases   []testCase  `xml:"testcase"`
}

type testCase struct {
	Name      string       `xml:"name,attr"`
	Classname string       `xml:"classname,attr"`
	Time      float64      `xml:"time,attr"`
	Failure   *failureNode `xml:"failure"`
	Error     *failureNode `xml:"error"`
	Skipped   *skippedNode `xml:"skipped"`
}

type failureNode struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

type skippedNode struct {
	Message string `xml:"message,attr"`
}

// ParseFile reads one JUnit XML report and returns its test outcomes in
// document order. The root element may be <testsuites> or a bare
// <testsuite>; nested suites are flattened.
func ParseFile(path string) ([]TestOutcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("junit: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse extracts test outcomes from raw JUnit XML. The name argument is
// only used in error messages.
func Parse(data []byte, name string) ([]TestOutcome, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("junit: %s is empty", name)
	}

	var root testSuites
	if err := xml.Unmarshal(data, &root); err == nil {
		var out []TestOutcome
		for _, s := range root.Suites {
			out = collectSuite(out, s)
		}
		return out, nil
	}

	// Some reporters emit a bare <testsuite> root.
	var single testSuite
	if err := xml.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("junit: parse %s: %w", name, err)
	}
	return collectSuite(nil, single), nil
}

// collectSuite appends the suite's testcases, then recurses into nested
// suites, preserving document order.
func collectSuite(out []TestOutcome, s testSuite) []TestOutcome {
	for _, tc := range s.Cases {
		out = append(out, resolveCase(tc))
	}
	for _, child := range s.Suites {
		out = collectSuite(out, child)
	}
	return out
}

func resolveCase(tc testCase) TestOutcome {
	o := TestOutcome{
		Name:     testName(tc.Classname, tc.Name),
		Status:   StatusPass,
		Duration: tc.Time,
	}
	if o.Duration < 0 {
		o.Duration = 0
	}

	switch {
	case tc.Failure != nil:
		o.Status = StatusFail
		o.Message = failureMessage(tc.Failure, "Unknown failure")
	case tc.Error != nil:
		o.Status = StatusFail
		o.Message = failureMessage(tc.Error, "Unknown error")
	case tc.Skipped != nil:
		o.Status = StatusSkip
	}
	return o
}

// testName joins classname and name the way most JUnit consumers render
// test identifiers.
func testName(classname, name string) string {
	if classname == "" {
		return name
	}
	return classname + "." + name
}

// failureMessage prefers the message attribute, then the element body,
// then a fixed placeholder so a failure never surfaces with no text.
func failureMessage(n *failureNode, placeholder string) string {
	if msg := strings.TrimSpace(n.Message); msg != "" {
		return msg
	}
	if body := strings.TrimSpace(n.Content); body != "" {
		return body
	}
	return placeholder
}
