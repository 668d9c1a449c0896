// Package junit parses JUnit-style XML test reports into normalized test
// outcomes. It accepts both <testsuites> and bare <testsuite> roots,
// flattens nested suites, and resolves each testcase to PASS, FAIL or SKIP.
package junit
