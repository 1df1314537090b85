package suites

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"plugcheck/internal/harness"
	"plugcheck/internal/jsonutil"
	"plugcheck/internal/plugin"
)

// runStructure validates the static shape of the whole bundle tree:
// manifests, script permissions, frontmatter, naming, permission lists,
// schema files, deleted-path references, and the root package.json.
func runStructure(ctx *harness.TestContext, env Env) {
	b := env.Bundle

	ctx.Group("plugin manifests")
	plugins, err := b.Plugins()
	if !ctx.Check(err == nil, "plugins directory readable", fmt.Sprintf("%v", err)) {
		return
	}
	ctx.Greater(len(plugins), 0, "at least one plugin present")

	for _, p := range plugins {
		checkManifest(ctx, p)
	}

	ctx.Group("script permissions")
	for _, script := range b.ShellScripts() {
		ctx.Executable(script, "executable: "+relPath(b.Root, script))
	}

	ctx.Group("markdown frontmatter")
	for _, p := range plugins {
		checkPluginMarkdown(ctx, p)
	}

	ctx.Group("naming conventions")
	for _, p := range plugins {
		ctx.Check(plugin.IsKebabCase(p.Name), "kebab-case plugin name: "+p.Name,
			fmt.Sprintf("'%s' is not kebab-case", p.Name))
	}

	ctx.Group("deleted path references")
	if len(env.Config.DeletedPaths) == 0 {
		ctx.Skip("no stale references to deleted paths", "no deleted paths configured")
	} else {
		matches := b.GrepTree(env.Config.DeletedPaths, env.Config.Allowlist)
		ctx.Check(len(matches) == 0, "no stale references to deleted paths",
			strings.Join(matches, "; "))
	}

	ctx.Group("base permissions")
	checkBasePermissions(ctx, b.Root)

	ctx.Group("schema files")
	for _, schema := range b.SchemaFiles() {
		err := plugin.ValidateSchemaFile(schema)
		ctx.Check(err == nil, "schema shape: "+relPath(b.Root, schema), fmt.Sprintf("%v", err))
	}

	ctx.Group("root package.json")
	checkRootPackage(ctx, b.Root, env.Config.ExpectedVersion)
}

func checkManifest(ctx *harness.TestContext, p plugin.Dir) {
	path := p.ManifestPath()
	if !ctx.FileExists(path, "plugin.json present: "+p.Name) {
		return
	}
	if !ctx.JSONValid(path, "plugin.json valid JSON: "+p.Name) {
		return
	}

	m, err := plugin.LoadManifest(path)
	if err != nil {
		ctx.Check(false, "plugin.json readable: "+p.Name, err.Error())
		return
	}
	errs := m.Validate(p.Path)
	ctx.Check(len(errs) == 0, "plugin.json fields: "+p.Name, joinErrors(errs))
}

func checkPluginMarkdown(ctx *harness.TestContext, p plugin.Dir) {
	for _, cmd := range plugin.CommandFiles(p) {
		name := p.Name + "/" + filepath.Base(cmd)
		fm, err := plugin.ParseFrontmatterFile(cmd)
		if !ctx.Check(err == nil, "command frontmatter parses: "+name, fmt.Sprintf("%v", err)) {
			continue
		}
		ctx.Check(fm.HasFrontmatter && fm.HasField("description"),
			"command has description: "+name, "missing frontmatter description")
		base := strings.TrimSuffix(filepath.Base(cmd), ".md")
		ctx.Check(plugin.IsKebabCase(base), "kebab-case command name: "+name,
			fmt.Sprintf("'%s' is not kebab-case", base))
	}

	for _, agent := range plugin.AgentFiles(p) {
		name := p.Name + "/" + filepath.Base(agent)
		fm, err := plugin.ParseFrontmatterFile(agent)
		if !ctx.Check(err == nil, "agent frontmatter parses: "+name, fmt.Sprintf("%v", err)) {
			continue
		}
		ctx.Check(fm.HasFrontmatter && fm.HasField("name") && fm.HasField("description"),
			"agent has name and description: "+name, "missing frontmatter fields")
	}

	for _, skill := range plugin.SkillDirs(p) {
		name := p.Name + "/" + skill.Name
		skillFile := filepath.Join(skill.Path, "SKILL.md")
		if !ctx.FileExists(skillFile, "SKILL.md present: "+name) {
			continue
		}
		fm, err := plugin.ParseFrontmatterFile(skillFile)
		if !ctx.Check(err == nil, "skill frontmatter parses: "+name, fmt.Sprintf("%v", err)) {
			continue
		}
		ctx.Check(fm.HasFrontmatter && fm.HasField("name") && fm.HasField("description"),
			"skill has name and description: "+name, "missing frontmatter fields")
		ctx.Check(plugin.IsKebabCase(skill.Name), "kebab-case skill name: "+name,
			fmt.Sprintf("'%s' is not kebab-case", skill.Name))
	}
}

func checkBasePermissions(ctx *harness.TestContext, root string) {
	path := filepath.Join(root, "base-permissions.json")
	if _, err := os.Stat(path); err != nil {
		ctx.Skip("permission lists sorted and unique", "no base-permissions.json in bundle")
		return
	}

	p, err := plugin.LoadPermissionsFile(path)
	if !ctx.Check(err == nil, "base-permissions.json parses", fmt.Sprintf("%v", err)) {
		return
	}
	errs := p.Validate()
	ctx.Check(len(errs) == 0, "permission lists sorted and unique", joinErrors(errs))
}

func checkRootPackage(ctx *harness.TestContext, root, expectedVersion string) {
	path := filepath.Join(root, "package.json")
	if !ctx.FileExists(path, "package.json present") {
		return
	}
	doc, err := jsonutil.ParseFile(path)
	if !ctx.Check(err == nil, "package.json valid JSON", fmt.Sprintf("%v", err)) {
		return
	}
	ctx.Check(jsonutil.HasKey(doc, ".name"), "package.json has name", "name key missing or null")

	version, _ := jsonutil.Lookup(doc, ".version")
	versionStr, _ := version.(string)
	ctx.Equals(expectedVersion, versionStr, "package.json version")
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
