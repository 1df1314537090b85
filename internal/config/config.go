// Package config handles Checkfile parsing and location resolution.
//
// The Checkfile tunes what the check suites look for: the bundle root, the
// expected package version, the deleted-path denylist, and thresholds.
// Every field has a sensible default; running without a Checkfile is fully
// supported.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultExpectedVersion is the package.json version the structure suite
// asserts when the Checkfile does not override it.
const DefaultExpectedVersion = "2.0.0"

// DefaultMinMCPServers is the minimum number of configured MCP servers the
// mcp-servers suite requires.
const DefaultMinMCPServers = 10

// Config is the parsed Checkfile.
type Config struct {
	// Root is the bundle repository to validate.
	Root string `yaml:"root" toml:"root" json:"root"`

	// ExpectedVersion is the exact version package.json must declare.
	ExpectedVersion string `yaml:"expected_version" toml:"expected_version" json:"expected_version"`

	// MinMCPServers is the minimum configured server count in .mcp.json.
	MinMCPServers int `yaml:"min_mcp_servers" toml:"min_mcp_servers" json:"min_mcp_servers"`

	// DeletedPaths are references that must not survive anywhere in the
	// bundle tree.
	DeletedPaths []string `yaml:"deleted_paths" toml:"deleted_paths" json:"deleted_paths"`

	// Allowlist excludes files (by path fragment) from the deleted-path
	// scan, e.g. changelogs that legitimately mention removed files.
	Allowlist []string `yaml:"allowlist" toml:"allowlist" json:"allowlist"`
}

// Default returns a Config with all defaults applied for the given root.
func Default(root string) *Config {
	return &Config{
		Root:            root,
		ExpectedVersion: DefaultExpectedVersion,
		MinMCPServers:   DefaultMinMCPServers,
		Allowlist:       []string{"CHANGELOG.md"},
	}
}

// applyDefaults fills zero-valued fields after parsing.
func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if c.ExpectedVersion == "" {
		c.ExpectedVersion = DefaultExpectedVersion
	}
	if c.MinMCPServers == 0 {
		c.MinMCPServers = DefaultMinMCPServers
	}
	if c.Allowlist == nil {
		c.Allowlist = []string{"CHANGELOG.md"}
	}
}

// checkfileNames are the filenames probed by FindCheckfile, in order.
var checkfileNames = []string{
	"Checkfile",
	"checkfile.yaml",
	"checkfile.yml",
	"checkfile.toml",
	"checkfile.json",
}

// FindCheckfile locates the Checkfile. An explicit path wins; otherwise
// the working directory is probed. Returns "" (no error) when nothing is
// found, since the Checkfile is optional.
func FindCheckfile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	for _, name := range checkfileNames {
		candidate := filepath.Join(cwd, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", nil
}
