// Package runner executes check suites in order and aggregates their
// structured results. Suites hand back Summary values directly; nothing is
// scraped out of printed text.
package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"plugcheck/internal/harness"
	"plugcheck/internal/suites"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// SuiteReport is the structured result of one suite.
type SuiteReport struct {
	Name string `json:"name" yaml:"name"`
	// Missing marks a requested suite name that does not exist. Distinct
	// from a suite that ran and recorded failures.
	Missing bool             `json:"missing,omitempty" yaml:"missing,omitempty"`
	Summary harness.Summary  `json:"summary" yaml:"summary"`
	Results []harness.Result `json:"results,omitempty" yaml:"results,omitempty"`
}

// Failed reports whether this suite should fail the run.
func (r SuiteReport) Failed() bool {
	return r.Missing || r.Summary.Failed > 0
}

// Report is the aggregate of a full run.
type Report struct {
	Suites []SuiteReport   `json:"suites" yaml:"suites"`
	Totals harness.Summary `json:"totals" yaml:"totals"`
}

// Failed reports whether any suite failed or was missing.
func (r Report) Failed() bool {
	for _, s := range r.Suites {
		if s.Failed() {
			return true
		}
	}
	return false
}

// Runner drives suite execution.
type Runner struct {
	Out   io.Writer
	Color bool
	// Quiet suppresses per-check output; the final table still prints.
	Quiet bool
}

func (r *Runner) style(s lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	return s.Render(text)
}

// Run executes the named suites in the order given, or every suite in the
// default order when names is empty. Failures never stop the run: every
// requested suite executes so one run surfaces every result.
func (r *Runner) Run(names []string, env suites.Env) Report {
	if len(names) == 0 {
		names = suites.Names()
	}

	var report Report
	for _, name := range names {
		report.Suites = append(report.Suites, r.runOne(name, env))
	}
	for _, s := range report.Suites {
		report.Totals = report.Totals.Add(s.Summary)
	}

	r.printTable(report)
	return report
}

func (r *Runner) runOne(name string, env suites.Env) SuiteReport {
	r.printHeader(name)

	suite, ok := suites.Lookup(name)
	if !ok {
		fmt.Fprintf(r.Out, "  %s unknown suite %q\n", r.style(failStyle, "ERROR"), name)
		return SuiteReport{Name: name, Missing: true}
	}

	checkOut := r.Out
	if r.Quiet {
		checkOut = io.Discard
	}
	reporter := harness.NewReporter(checkOut, r.Color)
	ctx := harness.NewContext(reporter)

	suite.Run(ctx, env)

	summary := ctx.Summary()
	reporter.Summary(summary)
	return SuiteReport{
		Name:    name,
		Summary: summary,
		Results: ctx.Results(),
	}
}

func (r *Runner) printHeader(name string) {
	border := strings.Repeat("=", len(name)+8)
	fmt.Fprintf(r.Out, "\n%s\n", r.style(headerStyle, border))
	fmt.Fprintf(r.Out, "%s\n", r.style(headerStyle, "  suite "+name))
	fmt.Fprintf(r.Out, "%s\n", r.style(headerStyle, border))
}

func (r *Runner) printTable(report Report) {
	fmt.Fprintln(r.Out)
	for _, s := range report.Suites {
		if s.Failed() {
			fmt.Fprintf(r.Out, "%s %s\n", r.style(failStyle, "FAIL"), s.Name)
		} else {
			fmt.Fprintf(r.Out, "%s %s\n", r.style(passStyle, "PASS"), s.Name)
		}
	}

	t := report.Totals
	line := fmt.Sprintf("%d passed, %d failed, %d skipped (%d tests)",
		t.Passed, t.Failed, t.Skipped, t.Total())
	if report.Failed() {
		line = r.style(failStyle, line)
	} else {
		line = r.style(passStyle, line)
	}
	fmt.Fprintf(r.Out, "\n%s\n", line)
}
