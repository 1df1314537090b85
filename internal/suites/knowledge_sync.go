package suites

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"plugcheck/internal/harness"
	"plugcheck/internal/knowledge"
)

// runKnowledgeSync exercises dependency detection, copy-if-different sync,
// and registry bookkeeping against throwaway fixtures.
func runKnowledgeSync(ctx *harness.TestContext, env Env) {
	dir, err := os.MkdirTemp("", "plugcheck-knowledge-")
	if !ctx.Check(err == nil, "fixture directory created", fmt.Sprintf("%v", err)) {
		return
	}
	defer os.RemoveAll(dir)

	ctx.Group("dependency detection")
	pkg := filepath.Join(dir, "package.json")
	writeFixture(ctx, pkg, `{
		"dependencies": {"react": "^18.0.0"},
		"devDependencies": {"vitest": "^1.0.0"}
	}`)

	bundles, err := knowledge.DetectBundles(pkg, knowledge.DefaultCatalog)
	ctx.Check(err == nil, "detection runs", fmt.Sprintf("%v", err))
	ctx.Equals("[react testing]", fmt.Sprintf("%v", bundles), "react and testing bundles detected")

	missing, err := knowledge.DetectBundles(filepath.Join(dir, "nope", "package.json"), knowledge.DefaultCatalog)
	ctx.Check(err == nil && missing == nil, "missing package.json detects nothing",
		fmt.Sprintf("bundles=%v err=%v", missing, err))

	ctx.Group("copy-if-different sync")
	src := filepath.Join(dir, "react.md")
	dst := filepath.Join(dir, "project", "docs", "react.md")
	writeFixture(ctx, src, "react guide v1\n")

	copied, err := knowledge.SyncFile(src, dst)
	ctx.Check(err == nil && copied, "initial sync copies", fmt.Sprintf("copied=%v err=%v", copied, err))
	copied, err = knowledge.SyncFile(src, dst)
	ctx.Check(err == nil && !copied, "identical content skips re-sync", fmt.Sprintf("copied=%v err=%v", copied, err))

	writeFixture(ctx, src, "react guide v2\n")
	copied, err = knowledge.SyncFile(src, dst)
	ctx.Check(err == nil && copied, "changed content re-syncs", fmt.Sprintf("copied=%v err=%v", copied, err))

	ctx.Group("registry bookkeeping")
	regPath := filepath.Join(dir, "registry.json")
	reg, err := knowledge.LoadRegistry(regPath)
	ctx.Check(err == nil, "empty registry loads", fmt.Sprintf("%v", err))

	reg.Record("react", "abc1234", time.Now())
	err = reg.Save(regPath)
	ctx.Check(err == nil, "registry saves", fmt.Sprintf("%v", err))

	reloaded, err := knowledge.LoadRegistry(regPath)
	if ctx.Check(err == nil, "registry reloads", fmt.Sprintf("%v", err)) {
		entry, ok := reloaded.Bundles["react"]
		ctx.Check(ok, "synced bundle recorded", "react entry missing")
		ctx.Equals("abc1234", entry.Commit, "commit recorded")
		ctx.Check(entry.SyncedAt != "", "sync timestamp recorded", "syncedAt is empty")
	}
}
