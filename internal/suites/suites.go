// Package suites defines the nine check suites run against a plugin
// bundle. Each suite is a flat checklist: checks are order-independent,
// never abort early, and share no state with other suites.
package suites

import (
	"plugcheck/internal/config"
	"plugcheck/internal/harness"
	"plugcheck/internal/plugin"
)

// Env carries everything a suite needs to run.
type Env struct {
	Bundle plugin.Bundle
	Config *config.Config
}

// Suite is one named checklist.
type Suite struct {
	Name        string
	Description string
	Run         func(ctx *harness.TestContext, env Env)
}

// All returns every suite in the fixed default run order.
func All() []Suite {
	return []Suite{
		{Name: "structure", Description: "Manifests, naming, frontmatter, permissions, schemas", Run: runStructure},
		{Name: "hooks", Description: "hooks.json shape, event enum, command wiring", Run: runHooks},
		{Name: "permissions-sync", Description: "Permission merge semantics", Run: runPermissionsSync},
		{Name: "knowledge-sync", Description: "Dependency detection and doc bundle sync", Run: runKnowledgeSync},
		{Name: "session-tools", Description: "Session helper scripts", Run: runSessionTools},
		{Name: "notifications", Description: "OS detection, payload parsing, notification log", Run: runNotifications},
		{Name: "task-master", Description: "Session resume and task-master artifacts", Run: runTaskMaster},
		{Name: "mcp-servers", Description: ".mcp.json server entries", Run: runMCPServers},
		{Name: "claude-initializer", Description: "Initializer templates and commands", Run: runInitializer},
	}
}

// Lookup finds a suite by name.
func Lookup(name string) (Suite, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return Suite{}, false
}

// Names returns the suite names in run order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}
