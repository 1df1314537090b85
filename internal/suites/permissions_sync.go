package suites

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"plugcheck/internal/harness"
	"plugcheck/internal/permsync"
)

// runPermissionsSync exercises the real permission-merge logic against
// throwaway fixtures: silent no-ops on absent files, set-difference
// detection, merge idempotence, and flag parsing.
func runPermissionsSync(ctx *harness.TestContext, env Env) {
	dir, err := os.MkdirTemp("", "plugcheck-permsync-")
	if !ctx.Check(err == nil, "fixture directory created", fmt.Sprintf("%v", err)) {
		return
	}
	defer os.RemoveAll(dir)

	base := filepath.Join(dir, "base-permissions.json")
	project := filepath.Join(dir, "settings.local.json")

	ctx.Group("missing file handling")
	res, err := permsync.SyncFile(base, project, permsync.Options{})
	ctx.Check(err == nil && !res.Synced, "no-op when base file absent", fmt.Sprintf("res=%+v err=%v", res, err))

	writeFixture(ctx, base, `{"permissions":{"allow":["Bash(ls:*)","Read"],"ask":[],"deny":[]}}`)
	res, err = permsync.SyncFile(base, project, permsync.Options{})
	ctx.Check(err == nil && !res.Synced, "no-op when project file absent", fmt.Sprintf("res=%+v err=%v", res, err))
	_, statErr := os.Stat(project)
	ctx.Check(os.IsNotExist(statErr), "no-op creates no project file", "project file appeared")

	ctx.Group("set difference")
	newPerms := permsync.Diff(
		[]string{"Bash(ls:*)", "Read"},
		[]string{"Bash(ls:*)", "Bash(rm:*)", "Write", "Write"},
	)
	ctx.Equals("2", fmt.Sprintf("%d", len(newPerms)), "project-only permissions counted once")
	ctx.Contains(fmt.Sprintf("%v", newPerms), regexp.QuoteMeta("Bash(rm:*)"), "new permission detected")

	ctx.Group("merge idempotence")
	writeFixture(ctx, project, `{"permissions":{"allow":["Write"],"ask":[],"deny":[]}}`)

	res, err = permsync.SyncFile(base, project, permsync.Options{})
	ctx.Check(err == nil && res.Synced, "merge applies", fmt.Sprintf("res=%+v err=%v", res, err))
	ctx.Equals("2", fmt.Sprintf("%d", res.Added["allow"]), "merge adds base entries")

	first, _ := os.ReadFile(project)
	res, err = permsync.SyncFile(base, project, permsync.Options{})
	ctx.Check(err == nil && res.Added["allow"] == 0, "second merge adds nothing", fmt.Sprintf("res=%+v err=%v", res, err))
	second, _ := os.ReadFile(project)
	ctx.Equals(string(first), string(second), "second merge leaves file unchanged")

	ctx.Group("flag parsing")
	opts, err := permsync.ParseArgs([]string{"--dry-run"})
	ctx.Check(err == nil && opts.DryRun && !opts.All, "--dry-run parsed", fmt.Sprintf("opts=%+v err=%v", opts, err))
	opts, err = permsync.ParseArgs([]string{"--all", "--dry-run"})
	ctx.Check(err == nil && opts.DryRun && opts.All, "--all --dry-run parsed", fmt.Sprintf("opts=%+v err=%v", opts, err))
	_, err = permsync.ParseArgs([]string{"--bogus"})
	ctx.Check(err != nil, "unknown flag rejected", "no error for --bogus")
}

// writeFixture records a failed check instead of aborting when a fixture
// cannot be written.
func writeFixture(ctx *harness.TestContext, path, content string) {
	err := os.WriteFile(path, []byte(content), 0o644)
	ctx.Check(err == nil, "fixture written: "+filepath.Base(path), fmt.Sprintf("%v", err))
}
