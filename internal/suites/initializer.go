package suites

import (
	"fmt"
	"os"
	"path/filepath"

	"plugcheck/internal/harness"
	"plugcheck/internal/jsonutil"
	"plugcheck/internal/plugin"
)

// Command files the claude-initializer plugin must ship.
var initializerCommands = []string{"init-project.md", "init-brand.md"}

// runInitializer validates the claude-initializer plugin's templates and
// command files.
func runInitializer(ctx *harness.TestContext, env Env) {
	root := filepath.Join(env.Bundle.PluginsDir(), "claude-initializer")
	if _, err := os.Stat(root); err != nil {
		ctx.Skip("claude-initializer artifacts", "no claude-initializer plugin in bundle")
		return
	}

	ctx.Group("templates")
	settings := filepath.Join(root, "templates", "settings.template.json")
	if ctx.FileExists(settings, "settings template present") {
		if ctx.JSONValid(settings, "settings template valid JSON") {
			ctx.JSONHasKey(settings, ".permissions", "settings template has permissions")
		}
	}

	brand := filepath.Join(root, "templates", "brand-config.template.json")
	if ctx.FileExists(brand, "brand config template present") {
		if ctx.JSONValid(brand, "brand config template valid JSON") {
			doc, err := jsonutil.ParseFile(brand)
			ctx.Check(err == nil && jsonutil.HasKey(doc, ".brand"),
				"brand config template has brand key", "brand key missing or null")
		}
	}

	ctx.Group("commands")
	for _, cmd := range initializerCommands {
		path := filepath.Join(root, "commands", cmd)
		if !ctx.FileExists(path, "command present: "+cmd) {
			continue
		}
		fm, err := plugin.ParseFrontmatterFile(path)
		if !ctx.Check(err == nil, "command frontmatter parses: "+cmd, fmt.Sprintf("%v", err)) {
			continue
		}
		ctx.Check(fm.HasFrontmatter, "command has frontmatter: "+cmd, "missing --- delimited header")
		ctx.Check(fm.HasField("description"), "command has description: "+cmd, "description missing")
	}
}
