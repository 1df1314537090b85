package suites

import (
	"fmt"
	"path/filepath"

	"plugcheck/internal/harness"
	"plugcheck/internal/plugin"
)

// runHooks validates every hooks.json in the bundle: top-level shape, the
// lifecycle event enum, and that each declared command resolves to a real
// executable inside its plugin. All entry rules live in
// HooksFile.Validate; the suite only renders its errors.
func runHooks(ctx *harness.TestContext, env Env) {
	files := env.Bundle.HooksFiles()
	if len(files) == 0 {
		ctx.Skip("hooks configs", "no hooks.json files in bundle")
		return
	}

	for _, path := range files {
		name := relPath(env.Bundle.Root, path)
		ctx.Group(name)

		h, err := plugin.LoadHooksFile(path)
		if !ctx.Check(err == nil, "valid JSON: "+name, fmt.Sprintf("%v", err)) {
			continue
		}

		errs := h.Validate(pluginRootFor(path))
		ctx.Check(len(errs) == 0, "hooks config valid: "+name, joinErrors(errs))
	}
}

// pluginRootFor maps a hooks.json path to its plugin directory. Hook
// configs live either at <plugin>/hooks/hooks.json or <plugin>/hooks.json.
func pluginRootFor(hooksPath string) string {
	dir := filepath.Dir(hooksPath)
	if filepath.Base(dir) == "hooks" {
		return filepath.Dir(dir)
	}
	return dir
}
