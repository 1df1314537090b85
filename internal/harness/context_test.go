package harness

import (
	"bytes"
	"strings"
	"testing"
)

// Running the same checklist twice against unchanged inputs must produce
// identical counts.
func TestCountingIdempotence(t *testing.T) {
	run := func() Summary {
		ctx := NewQuietContext()
		ctx.Equals("a", "a", "pass check")
		ctx.Equals("a", "b", "fail check")
		ctx.Skip("skipped check", "no tool")
		ctx.Greater(2, 1, "another pass")
		return ctx.Summary()
	}

	first := run()
	second := run()
	if first != second {
		t.Errorf("summaries differ across identical runs: %+v vs %+v", first, second)
	}
	if first.Passed != 2 || first.Failed != 1 || first.Skipped != 1 {
		t.Errorf("summary = %+v, want 2/1/1", first)
	}
}

func TestSummaryAdd(t *testing.T) {
	a := Summary{Passed: 3, Failed: 1, Skipped: 2}
	b := Summary{Passed: 5, Failed: 0, Skipped: 1}

	got := a.Add(b)
	want := Summary{Passed: 8, Failed: 1, Skipped: 3}
	if got != want {
		t.Errorf("Add() = %+v, want %+v", got, want)
	}
	if got.Total() != 12 {
		t.Errorf("Total() = %d, want 12", got.Total())
	}
}

func TestReporterPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(NewReporter(&buf, false))

	ctx.Group("manifest checks")
	ctx.Equals("a", "a", "name matches")
	ctx.Equals("a", "b", "version matches")
	ctx.Skip("optional check", "not available")

	out := buf.String()
	for _, want := range []string{
		"manifest checks",
		"PASS name matches",
		"FAIL version matches",
		`expected "a", got "b"`,
		"SKIP optional check",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReporterSummaryLine(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.Summary(Summary{Passed: 4, Failed: 1, Skipped: 2})

	if !strings.Contains(buf.String(), "4 passed, 1 failed, 2 skipped (7 tests)") {
		t.Errorf("unexpected summary line: %s", buf.String())
	}
}
