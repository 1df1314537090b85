// Package harness provides the assertion primitives and result accounting
// shared by every check suite.
//
// A TestContext records every check outcome without ever aborting: the goal
// of a run is to surface the complete set of violations, not to stop at the
// first one. Counters live on the context rather than in package globals so
// each suite gets fresh, isolated accounting.
package harness

import (
	"io"

	"plugcheck/internal/types"
)

// Result is the record of a single evaluated check.
type Result struct {
	Name    string        `json:"name" yaml:"name"`
	Outcome types.Outcome `json:"outcome" yaml:"outcome"`
	Detail  string        `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Summary holds aggregate counts for a completed run.
type Summary struct {
	Passed  int `json:"passed" yaml:"passed"`
	Failed  int `json:"failed" yaml:"failed"`
	Skipped int `json:"skipped" yaml:"skipped"`
}

// Total returns the number of evaluated checks, skips included.
func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// Add returns the elementwise sum of two summaries.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Passed:  s.Passed + other.Passed,
		Failed:  s.Failed + other.Failed,
		Skipped: s.Skipped + other.Skipped,
	}
}

// TestContext accumulates check results for one suite run.
type TestContext struct {
	reporter *Reporter
	results  []Result
	summary  Summary
}

// NewContext creates a context that renders each result to the reporter
// as it is recorded.
func NewContext(reporter *Reporter) *TestContext {
	return &TestContext{reporter: reporter}
}

// NewQuietContext creates a context that records results without rendering.
func NewQuietContext() *TestContext {
	return NewContext(NewReporter(io.Discard, false))
}

// Group renders a section header. Purely cosmetic; grouping has no effect
// on accounting.
func (c *TestContext) Group(name string) {
	c.reporter.Group(name)
}

func (c *TestContext) record(r Result) {
	c.results = append(c.results, r)
	switch r.Outcome {
	case types.OutcomePass:
		c.summary.Passed++
	case types.OutcomeFail:
		c.summary.Failed++
	case types.OutcomeSkip:
		c.summary.Skipped++
	}
	c.reporter.Result(r)
}

// Results returns all recorded results in order.
func (c *TestContext) Results() []Result {
	return c.results
}

// Summary returns the aggregate counts recorded so far.
func (c *TestContext) Summary() Summary {
	return c.summary
}

// Failed reports whether any check has failed.
func (c *TestContext) Failed() bool {
	return c.summary.Failed > 0
}
