package runner

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plugcheck/internal/config"
	"plugcheck/internal/harness"
	"plugcheck/internal/plugin"
	"plugcheck/internal/suites"
)

func fixtureEnv(t *testing.T) suites.Env {
	t.Helper()
	root := t.TempDir()

	writeFile := func(rel, content string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	writeFile("package.json", `{"name":"bundle","version":"2.0.0"}`)
	writeFile("plugins/demo/.claude-plugin/plugin.json",
		`{"name":"demo","version":"1.0.0","description":"Demo plugin"}`)

	servers := `{"mcpServers":{`
	for i := 0; i < 10; i++ {
		if i > 0 {
			servers += ","
		}
		servers += fmt.Sprintf(`"s%d":{"type":"http","url":"https://example.com/%d"}`, i, i)
	}
	servers += `}}`
	writeFile(".mcp.json", servers)

	return suites.Env{
		Bundle: plugin.Bundle{Root: root},
		Config: config.Default(root),
	}
}

func TestRunDefaultOrder(t *testing.T) {
	var buf bytes.Buffer
	r := &Runner{Out: &buf}

	report := r.Run(nil, fixtureEnv(t))
	if len(report.Suites) != 9 {
		t.Fatalf("ran %d suites, want 9", len(report.Suites))
	}
	for i, name := range suites.Names() {
		if report.Suites[i].Name != name {
			t.Errorf("suite %d = %q, want %q", i, report.Suites[i].Name, name)
		}
	}
}

// Grand totals must equal the elementwise sum of the per-suite summaries.
func TestRunAggregation(t *testing.T) {
	var buf bytes.Buffer
	r := &Runner{Out: &buf}

	report := r.Run([]string{"permissions-sync", "knowledge-sync", "notifications"}, fixtureEnv(t))

	var want harness.Summary
	for _, s := range report.Suites {
		want = want.Add(s.Summary)
	}
	if report.Totals != want {
		t.Errorf("Totals = %+v, want %+v", report.Totals, want)
	}
	if report.Totals.Total() == 0 {
		t.Error("Totals.Total() = 0, suites recorded nothing")
	}
}

// An unknown suite name is a failure for that name, but the remaining
// suites still run.
func TestRunUnknownSuite(t *testing.T) {
	var buf bytes.Buffer
	r := &Runner{Out: &buf}

	report := r.Run([]string{"no-such-suite", "permissions-sync"}, fixtureEnv(t))
	if len(report.Suites) != 2 {
		t.Fatalf("ran %d suites, want 2", len(report.Suites))
	}
	if !report.Suites[0].Missing {
		t.Error("unknown suite not marked missing")
	}
	if !report.Suites[0].Failed() {
		t.Error("missing suite not counted as failed")
	}
	if report.Suites[1].Summary.Total() == 0 {
		t.Error("suite after the unknown one did not run")
	}
	if !report.Failed() {
		t.Error("report with missing suite not failed")
	}
}

func TestRunOutputTable(t *testing.T) {
	var buf bytes.Buffer
	r := &Runner{Out: &buf}

	r.Run([]string{"permissions-sync"}, fixtureEnv(t))
	out := buf.String()

	for _, want := range []string{
		"suite permissions-sync",
		"PASS permissions-sync",
		"passed,",
		"skipped (",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunQuietSuppressesChecks(t *testing.T) {
	var buf bytes.Buffer
	r := &Runner{Out: &buf, Quiet: true}

	report := r.Run([]string{"permissions-sync"}, fixtureEnv(t))
	if report.Totals.Total() == 0 {
		t.Fatal("quiet run recorded nothing")
	}
	if strings.Contains(buf.String(), "  PASS ") {
		t.Error("quiet run printed per-check lines")
	}
	if !strings.Contains(buf.String(), "PASS permissions-sync") {
		t.Error("quiet run omitted the final table")
	}
}

// Two runs against an unchanged tree must produce identical totals.
func TestRunIdempotent(t *testing.T) {
	env := fixtureEnv(t)

	var buf bytes.Buffer
	r := &Runner{Out: &buf}

	first := r.Run([]string{"structure", "mcp-servers"}, env)
	second := r.Run([]string{"structure", "mcp-servers"}, env)
	if first.Totals != second.Totals {
		t.Errorf("totals differ across runs: %+v vs %+v", first.Totals, second.Totals)
	}
}
