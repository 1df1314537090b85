package harness

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"plugcheck/internal/types"
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	skipStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	groupStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// Reporter renders check results as they are recorded.
type Reporter struct {
	w     io.Writer
	color bool
}

// NewReporter creates a reporter writing to w. When color is false all
// styling is suppressed, for pipes and CI logs.
func NewReporter(w io.Writer, color bool) *Reporter {
	return &Reporter{w: w, color: color}
}

func (r *Reporter) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Group renders a section header.
func (r *Reporter) Group(name string) {
	fmt.Fprintf(r.w, "\n%s\n", r.style(groupStyle, name))
}

// Result renders one check outcome line, with a detail block on failure.
func (r *Reporter) Result(res Result) {
	switch res.Outcome {
	case types.OutcomePass:
		fmt.Fprintf(r.w, "  %s %s\n", r.style(passStyle, "PASS"), res.Name)
	case types.OutcomeFail:
		fmt.Fprintf(r.w, "  %s %s\n", r.style(failStyle, "FAIL"), res.Name)
		if res.Detail != "" {
			fmt.Fprintf(r.w, "       %s\n", r.style(dimStyle, res.Detail))
		}
	case types.OutcomeSkip:
		fmt.Fprintf(r.w, "  %s %s\n", r.style(skipStyle, "SKIP"), res.Name)
		if res.Detail != "" {
			fmt.Fprintf(r.w, "       %s\n", r.style(dimStyle, res.Detail))
		}
	}
}

// Summary renders the aggregate line for a completed suite or run.
func (r *Reporter) Summary(s Summary) {
	line := fmt.Sprintf("%d passed, %d failed, %d skipped (%d tests)",
		s.Passed, s.Failed, s.Skipped, s.Total())
	if s.Failed > 0 {
		line = r.style(failStyle, line)
	} else {
		line = r.style(passStyle, line)
	}
	fmt.Fprintf(r.w, "\n%s\n", line)
}
