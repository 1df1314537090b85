package suites

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plugcheck/internal/config"
	"plugcheck/internal/harness"
	"plugcheck/internal/plugin"
	"plugcheck/internal/types"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeExec(t *testing.T, path, content string) {
	t.Helper()
	write(t, path, content)
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

// buildValidBundle creates a bundle that every suite accepts.
func buildValidBundle(t *testing.T) Env {
	t.Helper()
	root := t.TempDir()

	write(t, filepath.Join(root, "package.json"), `{"name":"plugin-bundle","version":"2.0.0"}`)
	write(t, filepath.Join(root, "base-permissions.json"),
		`{"permissions":{"allow":["Bash(ls:*)","Read"],"ask":[],"deny":["Bash(rm:*)"]}}`)

	servers := `{"mcpServers":{`
	for i := 0; i < 10; i++ {
		if i > 0 {
			servers += ","
		}
		servers += fmt.Sprintf(`"server-%d":{"type":"http","url":"https://example.com/%d"}`, i, i)
	}
	servers += `}}`
	write(t, filepath.Join(root, ".mcp.json"), servers)

	// task-master plugin with its full artifact set.
	tm := filepath.Join(root, "plugins", "task-master")
	write(t, filepath.Join(tm, ".claude-plugin", "plugin.json"),
		`{"name":"task-master","version":"1.0.0","description":"Task tracking"}`)
	write(t, filepath.Join(tm, "commands", "resume.md"),
		"---\ndescription: Resume in-progress work\n---\nResume.\n")
	write(t, filepath.Join(tm, "commands", "status.md"),
		"---\ndescription: Show task status\n---\nStatus.\n")
	write(t, filepath.Join(tm, "agents", "task-executor.md"),
		"---\nname: task-executor\ndescription: Executes tasks\n---\n")
	write(t, filepath.Join(tm, "skills", "epic-planning", "SKILL.md"),
		"---\nname: epic-planning\ndescription: Plan epics\n---\n")
	write(t, filepath.Join(tm, "skills", "task-breakdown", "SKILL.md"),
		"---\nname: task-breakdown\ndescription: Break down tasks\n---\n")
	write(t, filepath.Join(tm, "templates", "epic.schema.json"),
		`{"$schema":"http://json-schema.org/draft-07/schema#","type":"object"}`)
	write(t, filepath.Join(tm, "templates", "task.schema.json"),
		`{"type":"object","properties":{}}`)

	// notifications plugin with a hook wired to a real script.
	nt := filepath.Join(root, "plugins", "notifications")
	write(t, filepath.Join(nt, ".claude-plugin", "plugin.json"),
		`{"name":"notifications","version":"1.0.0","description":"Desktop notifications"}`)
	writeExec(t, filepath.Join(nt, "scripts", "notify.sh"), "#!/bin/sh\nexit 0\n")
	write(t, filepath.Join(nt, "hooks", "hooks.json"), `{
		"description": "Desktop notification hooks",
		"hooks": {
			"Notification": [
				{"hooks": [{"type": "command", "command": "${CLAUDE_PLUGIN_ROOT}/scripts/notify.sh", "timeout": 10}]}
			]
		}
	}`)

	return Env{
		Bundle: plugin.Bundle{Root: root},
		Config: config.Default(root),
	}
}

func runSuite(t *testing.T, env Env, name string) *harness.TestContext {
	t.Helper()
	suite, ok := Lookup(name)
	if !ok {
		t.Fatalf("suite %q not registered", name)
	}
	ctx := harness.NewQuietContext()
	suite.Run(ctx, env)
	return ctx
}

func failedChecks(ctx *harness.TestContext) []string {
	var names []string
	for _, r := range ctx.Results() {
		if r.Outcome == types.OutcomeFail {
			names = append(names, r.Name+": "+r.Detail)
		}
	}
	return names
}

func TestAllRegistersNineSuites(t *testing.T) {
	want := []string{
		"structure", "hooks", "permissions-sync", "knowledge-sync",
		"session-tools", "notifications", "task-master", "mcp-servers",
		"claude-initializer",
	}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %d suites", got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStructureSuiteValidBundle(t *testing.T) {
	env := buildValidBundle(t)
	ctx := runSuite(t, env, "structure")
	if ctx.Failed() {
		t.Errorf("structure failed on valid bundle:\n%v", failedChecks(ctx))
	}
}

// A manifest whose name does not match its directory must fail.
func TestStructureSuiteNameMismatch(t *testing.T) {
	env := buildValidBundle(t)
	write(t, filepath.Join(env.Bundle.Root, "plugins", "bar", ".claude-plugin", "plugin.json"),
		`{"name":"foo","version":"1.0.0","description":"x"}`)

	ctx := runSuite(t, env, "structure")
	if !ctx.Failed() {
		t.Error("structure passed with manifest name mismatch")
	}
}

// An unsorted allow list must fail; normalizing it must pass.
func TestStructureSuitePermissionOrder(t *testing.T) {
	env := buildValidBundle(t)
	write(t, filepath.Join(env.Bundle.Root, "base-permissions.json"),
		`{"permissions":{"allow":["b","a"],"ask":[],"deny":[]}}`)

	ctx := runSuite(t, env, "structure")
	if !ctx.Failed() {
		t.Error("structure passed with unsorted allow list")
	}

	write(t, filepath.Join(env.Bundle.Root, "base-permissions.json"),
		`{"permissions":{"allow":["a","b"],"ask":[],"deny":[]}}`)
	ctx = runSuite(t, env, "structure")
	if ctx.Failed() {
		t.Errorf("structure failed after normalizing:\n%v", failedChecks(ctx))
	}
}

func TestStructureSuiteDeletedPathReferences(t *testing.T) {
	env := buildValidBundle(t)
	env.Config.DeletedPaths = []string{"plugins/legacy-helper"}
	write(t, filepath.Join(env.Bundle.Root, "plugins", "task-master", "commands", "old-note.md"),
		"---\ndescription: Old note\n---\nSee plugins/legacy-helper for details.\n")

	ctx := runSuite(t, env, "structure")
	if !ctx.Failed() {
		t.Error("structure passed with stale deleted-path reference")
	}
}

func TestHooksSuiteValidBundle(t *testing.T) {
	env := buildValidBundle(t)
	ctx := runSuite(t, env, "hooks")
	if ctx.Failed() {
		t.Errorf("hooks failed on valid bundle:\n%v", failedChecks(ctx))
	}
}

// A config declaring an unknown lifecycle event must fail.
func TestHooksSuiteBadEvent(t *testing.T) {
	env := buildValidBundle(t)
	write(t, filepath.Join(env.Bundle.Root, "plugins", "notifications", "hooks", "hooks.json"), `{
		"description": "x",
		"hooks": {"BadEvent": [{"hooks": [{"type": "command", "command": "echo hi"}]}]}
	}`)

	ctx := runSuite(t, env, "hooks")
	if !ctx.Failed() {
		t.Error("hooks passed with BadEvent")
	}
}

// An absolute command path that does not exist must fail, same as a
// broken plugin-root target. The suite defers to HooksFile.Validate so
// the two paths share one rule.
func TestHooksSuiteAbsoluteCommandMissing(t *testing.T) {
	env := buildValidBundle(t)
	write(t, filepath.Join(env.Bundle.Root, "plugins", "notifications", "hooks", "hooks.json"), `{
		"description": "x",
		"hooks": {"Stop": [{"hooks": [{"type": "command", "command": "/nonexistent/dir/notify.sh"}]}]}
	}`)

	ctx := runSuite(t, env, "hooks")
	if !ctx.Failed() {
		t.Error("hooks passed with a nonexistent absolute command target")
	}
	found := false
	for _, f := range failedChecks(ctx) {
		if strings.Contains(f, "/nonexistent/dir/notify.sh") {
			found = true
		}
	}
	if !found {
		t.Errorf("failure detail does not name the missing target:\n%v", failedChecks(ctx))
	}
}

func TestPermissionsSyncSuite(t *testing.T) {
	env := buildValidBundle(t)
	ctx := runSuite(t, env, "permissions-sync")
	if ctx.Failed() {
		t.Errorf("permissions-sync failed:\n%v", failedChecks(ctx))
	}
}

func TestKnowledgeSyncSuite(t *testing.T) {
	env := buildValidBundle(t)
	ctx := runSuite(t, env, "knowledge-sync")
	if ctx.Failed() {
		t.Errorf("knowledge-sync failed:\n%v", failedChecks(ctx))
	}
}

func TestNotificationsSuite(t *testing.T) {
	env := buildValidBundle(t)
	ctx := runSuite(t, env, "notifications")
	if ctx.Failed() {
		t.Errorf("notifications failed:\n%v", failedChecks(ctx))
	}
}

func TestTaskMasterSuite(t *testing.T) {
	env := buildValidBundle(t)
	ctx := runSuite(t, env, "task-master")
	if ctx.Failed() {
		t.Errorf("task-master failed on valid bundle:\n%v", failedChecks(ctx))
	}
}

func TestMCPServersSuiteCount(t *testing.T) {
	env := buildValidBundle(t)

	ctx := runSuite(t, env, "mcp-servers")
	if ctx.Failed() {
		t.Errorf("mcp-servers failed with 10 servers:\n%v", failedChecks(ctx))
	}

	// Nine servers must fail the minimum-count check.
	servers := `{"mcpServers":{`
	for i := 0; i < 9; i++ {
		if i > 0 {
			servers += ","
		}
		servers += fmt.Sprintf(`"server-%d":{"type":"http","url":"https://example.com/%d"}`, i, i)
	}
	servers += `}}`
	write(t, filepath.Join(env.Bundle.Root, ".mcp.json"), servers)

	ctx = runSuite(t, env, "mcp-servers")
	if !ctx.Failed() {
		t.Error("mcp-servers passed with only 9 servers")
	}
}

func TestMCPServersSuiteEntryShape(t *testing.T) {
	env := buildValidBundle(t)
	write(t, filepath.Join(env.Bundle.Root, ".mcp.json"),
		`{"mcpServers":{
			"a":{"type":"http","url":"https://x"}, "b":{"type":"http","url":"https://x"},
			"c":{"type":"http","url":"https://x"}, "d":{"type":"http","url":"https://x"},
			"e":{"type":"http","url":"https://x"}, "f":{"type":"http","url":"https://x"},
			"g":{"type":"http","url":"https://x"}, "h":{"type":"http","url":"https://x"},
			"i":{"type":"http","url":"https://x"},
			"broken":{"command":"npx"}
		}}`)

	ctx := runSuite(t, env, "mcp-servers")
	if !ctx.Failed() {
		t.Error("mcp-servers passed with a command entry lacking args")
	}
}

func TestSessionToolsSuiteSkipsWithoutPlugin(t *testing.T) {
	env := buildValidBundle(t)
	ctx := runSuite(t, env, "session-tools")

	s := ctx.Summary()
	if s.Failed != 0 {
		t.Errorf("session-tools failed without the plugin:\n%v", failedChecks(ctx))
	}
	if s.Skipped == 0 {
		t.Error("session-tools did not record a skip without the plugin")
	}
}

func TestSessionToolsSuiteRunsScripts(t *testing.T) {
	env := buildValidBundle(t)
	scripts := filepath.Join(env.Bundle.Root, "plugins", "session-tools", "scripts")
	write(t, filepath.Join(env.Bundle.Root, "plugins", "session-tools", ".claude-plugin", "plugin.json"),
		`{"name":"session-tools","version":"1.0.0","description":"Session helpers"}`)
	writeExec(t, filepath.Join(scripts, "session-info.sh"),
		"#!/bin/sh\necho \"Session overview\"\n")
	writeExec(t, filepath.Join(scripts, "context-usage.sh"),
		"#!/bin/sh\necho \"Context usage: low\"\n")
	writeExec(t, filepath.Join(scripts, "watchdog.sh"),
		"#!/bin/sh\n[ -d \"$HOME/.service\" ] || exit 0\necho restart\n")

	ctx := runSuite(t, env, "session-tools")
	if ctx.Failed() {
		t.Errorf("session-tools failed:\n%v", failedChecks(ctx))
	}
}

func TestInitializerSuite(t *testing.T) {
	env := buildValidBundle(t)

	// Without the plugin the suite skips.
	ctx := runSuite(t, env, "claude-initializer")
	if ctx.Summary().Skipped == 0 || ctx.Failed() {
		t.Errorf("claude-initializer without plugin: %+v", ctx.Summary())
	}

	ci := filepath.Join(env.Bundle.Root, "plugins", "claude-initializer")
	write(t, filepath.Join(ci, ".claude-plugin", "plugin.json"),
		`{"name":"claude-initializer","version":"1.0.0","description":"Project init"}`)
	write(t, filepath.Join(ci, "templates", "settings.template.json"),
		`{"permissions":{"allow":[],"ask":[],"deny":[]}}`)
	write(t, filepath.Join(ci, "templates", "brand-config.template.json"),
		`{"brand":{"name":"","tone":""}}`)
	write(t, filepath.Join(ci, "commands", "init-project.md"),
		"---\ndescription: Initialize a project\n---\n")
	write(t, filepath.Join(ci, "commands", "init-brand.md"),
		"---\ndescription: Initialize brand config\n---\n")

	ctx = runSuite(t, env, "claude-initializer")
	if ctx.Failed() {
		t.Errorf("claude-initializer failed:\n%v", failedChecks(ctx))
	}
}
