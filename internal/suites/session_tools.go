package suites

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"plugcheck/internal/harness"
)

// scriptTimeout bounds each helper-script invocation.
const scriptTimeout = 10 * time.Second

// runSessionTools runs the session helper scripts and checks their output
// and exit behavior. Scripts are invoked against an isolated HOME so they
// never touch the real user environment.
func runSessionTools(ctx *harness.TestContext, env Env) {
	scriptsDir := filepath.Join(env.Bundle.PluginsDir(), "session-tools", "scripts")
	if _, err := os.Stat(scriptsDir); err != nil {
		ctx.Skip("session tool scripts", "no session-tools plugin in bundle")
		return
	}

	isolated, err := os.MkdirTemp("", "plugcheck-session-")
	if !ctx.Check(err == nil, "fixture directory created", fmt.Sprintf("%v", err)) {
		return
	}
	defer os.RemoveAll(isolated)

	ctx.Group("session-info output")
	out, code, err := runScript(filepath.Join(scriptsDir, "session-info.sh"), isolated)
	if ctx.Check(err == nil, "session-info.sh runs", fmt.Sprintf("%v", err)) {
		ctx.Equals("0", fmt.Sprintf("%d", code), "session-info.sh exits zero")
		ctx.Contains(out, "Session", "session-info.sh mentions the session")
	}

	ctx.Group("context-usage output")
	out, code, err = runScript(filepath.Join(scriptsDir, "context-usage.sh"), isolated)
	if ctx.Check(err == nil, "context-usage.sh runs", fmt.Sprintf("%v", err)) {
		ctx.Equals("0", fmt.Sprintf("%d", code), "context-usage.sh exits zero")
		ctx.Contains(out, "Context", "context-usage.sh mentions context")
	}

	ctx.Group("watchdog behavior")
	// With the service installation directory absent the watchdog must be
	// a clean no-op.
	out, code, err = runScript(filepath.Join(scriptsDir, "watchdog.sh"), isolated)
	if ctx.Check(err == nil, "watchdog.sh runs", fmt.Sprintf("%v", err)) {
		ctx.Equals("0", fmt.Sprintf("%d", code), "watchdog exits zero when service dir absent")
		ctx.NotContains(out, "restart", "watchdog takes no action when service dir absent")
	}
}

// runScript executes a script with HOME and the Claude environment pointed
// at an isolated directory. Returns combined output and the exit code. A
// missing script is an error; a non-zero exit is not.
func runScript(path, isolatedHome string, args ...string) (string, int, error) {
	if _, err := os.Stat(path); err != nil {
		return "", -1, fmt.Errorf("script not found: %s", path)
	}

	runCtx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, path, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+isolatedHome,
		"CLAUDE_PROJECT_DIR="+isolatedHome,
		"CLAUDE_MEM_DATA_DIR="+filepath.Join(isolatedHome, "claude-mem"),
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode(), nil
		}
		return string(out), -1, err
	}
	return string(out), 0, nil
}
