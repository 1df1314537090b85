package suites

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"plugcheck/internal/harness"
	"plugcheck/internal/plugin"
	"plugcheck/internal/taskmaster"
)

// Artifacts the task-master plugin must ship.
var (
	taskMasterSkills    = []string{"epic-planning", "task-breakdown"}
	taskMasterAgents    = []string{"task-executor.md"}
	taskMasterCommands  = []string{"resume.md", "status.md"}
	taskMasterTemplates = []string{"epic.schema.json", "task.schema.json"}
)

// runTaskMaster exercises the session-resume logic against fixtures and
// validates the task-master plugin's shipped artifacts.
func runTaskMaster(ctx *harness.TestContext, env Env) {
	dir, err := os.MkdirTemp("", "plugcheck-taskmaster-")
	if !ctx.Check(err == nil, "fixture directory created", fmt.Sprintf("%v", err)) {
		return
	}
	defer os.RemoveAll(dir)

	ctx.Group("session resume")
	out, err := taskmaster.Resume(filepath.Join(dir, "index.json"))
	ctx.Check(err == nil && out == "", "silent without tracking state",
		fmt.Sprintf("out=%q err=%v", out, err))

	active := filepath.Join(dir, "active.json")
	writeFixture(ctx, active, `{
		"epics": [{"id": "epic-007", "status": "in-progress"}],
		"standalone": {"total": 6, "completed": 4}
	}`)
	out, err = taskmaster.Resume(active)
	ctx.Check(err == nil, "resume reads active index", fmt.Sprintf("%v", err))
	ctx.Contains(out, "Active work detected", "detection banner printed")
	ctx.Contains(out, "epic-007", "active epic id printed")
	ctx.Contains(out, "2 pending", "standalone pending count is total minus completed")

	done := filepath.Join(dir, "done.json")
	writeFixture(ctx, done, `{
		"epics": [{"id": "epic-001", "status": "completed"}],
		"standalone": {"total": 3, "completed": 3}
	}`)
	out, err = taskmaster.Resume(done)
	ctx.Check(err == nil && out == "", "silent when all work completed",
		fmt.Sprintf("out=%q err=%v", out, err))

	ctx.Group("fallback scanner")
	activeData, _ := os.ReadFile(active)
	ctx.Check(taskmaster.ScanFallback(activeData), "fallback detects in-progress marker", "no marker found")
	doneData, _ := os.ReadFile(done)
	ctx.Check(!taskmaster.ScanFallback(doneData), "fallback silent on completed index", "marker found unexpectedly")

	ctx.Group("shipped artifacts")
	checkTaskMasterArtifacts(ctx, env)
}

func checkTaskMasterArtifacts(ctx *harness.TestContext, env Env) {
	root := filepath.Join(env.Bundle.PluginsDir(), "task-master")
	if _, err := os.Stat(root); err != nil {
		ctx.Skip("task-master artifacts", "no task-master plugin in bundle")
		return
	}

	for _, skill := range taskMasterSkills {
		path := filepath.Join(root, "skills", skill, "SKILL.md")
		if !ctx.FileExists(path, "skill present: "+skill) {
			continue
		}
		fm, err := plugin.ParseFrontmatterFile(path)
		ctx.Check(err == nil && fm.HasFrontmatter && fm.HasField("name") && fm.HasField("description"),
			"skill frontmatter complete: "+skill, fmt.Sprintf("%v", err))
	}

	for _, agent := range taskMasterAgents {
		path := filepath.Join(root, "agents", agent)
		if !ctx.FileExists(path, "agent present: "+agent) {
			continue
		}
		fm, err := plugin.ParseFrontmatterFile(path)
		ctx.Check(err == nil && fm.HasFrontmatter && fm.HasField("name") && fm.HasField("description"),
			"agent frontmatter complete: "+agent, fmt.Sprintf("%v", err))
	}

	for _, cmd := range taskMasterCommands {
		path := filepath.Join(root, "commands", cmd)
		if !ctx.FileExists(path, "command present: "+cmd) {
			continue
		}
		fm, err := plugin.ParseFrontmatterFile(path)
		ctx.Check(err == nil && fm.HasFrontmatter && fm.HasField("description"),
			"command frontmatter complete: "+cmd, fmt.Sprintf("%v", err))
	}

	for _, tpl := range taskMasterTemplates {
		path := filepath.Join(root, "templates", tpl)
		if !ctx.FileExists(path, "template present: "+tpl) {
			continue
		}
		err := plugin.ValidateSchemaFile(path)
		ctx.Check(err == nil, "template is a JSON schema: "+tpl,
			strings.TrimSpace(fmt.Sprintf("%v", err)))
	}
}
