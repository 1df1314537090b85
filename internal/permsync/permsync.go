// Package permsync implements the shared-permissions sync logic: comparing
// a project's local permission lists against the shared base file and
// merging the base into the project. The permissions-sync check suite and
// the tests exercise these functions directly rather than a parallel copy.
package permsync

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Options are the command-line options of the sync tool.
type Options struct {
	// DryRun reports what would change without writing.
	DryRun bool
	// All syncs every known project instead of only the current one.
	All bool
}

// ParseArgs parses the sync tool's flags.
func ParseArgs(args []string) (Options, error) {
	var opts Options
	for _, arg := range args {
		switch arg {
		case "--dry-run":
			opts.DryRun = true
		case "--all":
			opts.All = true
		default:
			return Options{}, fmt.Errorf("unknown flag: %s", arg)
		}
	}
	return opts, nil
}

// Diff returns the entries present in project but absent from base: the
// permissions a project has accumulated locally that the shared base does
// not know about. Set difference, not multiset; the result is sorted and
// duplicate-free.
func Diff(base, project []string) []string {
	inBase := make(map[string]bool, len(base))
	for _, p := range base {
		inBase[p] = true
	}

	seen := make(map[string]bool)
	var out []string
	for _, p := range project {
		if !inBase[p] && !seen[p] {
			out = append(out, p)
			seen[p] = true
		}
	}
	sort.Strings(out)
	return out
}

// Merge returns the sorted, duplicate-free union of base and project.
// Applying Merge to its own output with the same base is a no-op, which
// makes repeated syncs idempotent.
func Merge(base, project []string) []string {
	seen := make(map[string]bool, len(base)+len(project))
	out := make([]string, 0, len(base)+len(project))
	for _, list := range [][]string{base, project} {
		for _, p := range list {
			if !seen[p] {
				out = append(out, p)
				seen[p] = true
			}
		}
	}
	sort.Strings(out)
	return out
}

// permissionLists mirrors the permissions block of a settings file.
type permissionLists struct {
	Allow []string `json:"allow"`
	Ask   []string `json:"ask"`
	Deny  []string `json:"deny"`
}

type settingsFile struct {
	Permissions permissionLists `json:"permissions"`
}

// Result describes what a sync did (or would do, under DryRun).
type Result struct {
	// Synced is false when either input file was absent and the sync was
	// a silent no-op.
	Synced bool
	// Added counts entries merged in from the base, per bucket.
	Added map[string]int
}

// SyncFile merges the base permission lists into the project settings file.
// A missing base file or a missing project file is a silent no-op, never an
// error: projects without local settings simply have nothing to sync.
func SyncFile(basePath, projectPath string, opts Options) (Result, error) {
	base, ok, err := readSettings(basePath)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, nil
	}
	project, ok, err := readSettings(projectPath)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, nil
	}

	merged := settingsFile{Permissions: permissionLists{
		Allow: Merge(base.Permissions.Allow, project.Permissions.Allow),
		Ask:   Merge(base.Permissions.Ask, project.Permissions.Ask),
		Deny:  Merge(base.Permissions.Deny, project.Permissions.Deny),
	}}

	result := Result{
		Synced: true,
		Added: map[string]int{
			"allow": len(merged.Permissions.Allow) - len(uniqueSorted(project.Permissions.Allow)),
			"ask":   len(merged.Permissions.Ask) - len(uniqueSorted(project.Permissions.Ask)),
			"deny":  len(merged.Permissions.Deny) - len(uniqueSorted(project.Permissions.Deny)),
		},
	}

	if opts.DryRun {
		return result, nil
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(projectPath, append(data, '\n'), 0o644); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", projectPath, err)
	}
	return result, nil
}

func readSettings(path string) (settingsFile, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settingsFile{}, false, nil
		}
		return settingsFile{}, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var s settingsFile
	if err := json.Unmarshal(data, &s); err != nil {
		return settingsFile{}, false, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return s, true, nil
}

func uniqueSorted(ss []string) []string {
	return Merge(nil, ss)
}
