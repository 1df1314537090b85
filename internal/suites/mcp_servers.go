package suites

import (
	"fmt"
	"os"
	"path/filepath"

	"plugcheck/internal/harness"
	"plugcheck/internal/plugin"
)

// Servers that require nothing beyond the bundle itself and must always be
// reported as available by the dependency-check script.
var alwaysAvailableServers = []string{"context7", "sequential-thinking"}

// runMCPServers validates the bundle's .mcp.json manifest and the
// dependency-check script's report.
func runMCPServers(ctx *harness.TestContext, env Env) {
	path := filepath.Join(env.Bundle.Root, ".mcp.json")

	ctx.Group("server manifest")
	if !ctx.FileExists(path, ".mcp.json present") {
		return
	}
	cfg, err := plugin.LoadMCPConfig(path)
	if !ctx.Check(err == nil, ".mcp.json valid JSON", fmt.Sprintf("%v", err)) {
		return
	}

	ctx.Greater(len(cfg.Servers), env.Config.MinMCPServers-1,
		fmt.Sprintf("at least %d servers configured", env.Config.MinMCPServers))

	for name, server := range cfg.Servers {
		errs := server.Validate(name)
		ctx.Check(len(errs) == 0, "server entry shape: "+name, joinErrors(errs))
	}

	ctx.Group("dependency check script")
	script := filepath.Join(env.Bundle.Root, "scripts", "check-mcp-deps.sh")
	if _, err := os.Stat(script); err != nil {
		ctx.Skip("dependency check output", "no check-mcp-deps.sh in bundle")
		return
	}

	isolated, err := os.MkdirTemp("", "plugcheck-mcp-")
	if !ctx.Check(err == nil, "fixture directory created", fmt.Sprintf("%v", err)) {
		return
	}
	defer os.RemoveAll(isolated)

	out, _, err := runScript(script, isolated)
	if !ctx.Check(err == nil, "check-mcp-deps.sh runs", fmt.Sprintf("%v", err)) {
		return
	}
	ctx.Contains(out, "MCP Server Dependencies", "report has section header")
	for _, name := range alwaysAvailableServers {
		ctx.Contains(out, name, "report lists "+name)
	}
}
