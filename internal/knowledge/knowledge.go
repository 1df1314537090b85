// Package knowledge implements the knowledge-sync helpers: deciding which
// optional doc bundles are relevant to a project based on its declared
// dependencies, copying bundles only when their content differs, and
// recording sync bookkeeping in a registry file.
package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Detector maps a doc bundle to the dependency keywords that make it
// relevant. A project matches when any keyword appears in a dependency
// name.
type Detector struct {
	Bundle   string
	Keywords []string
}

// DefaultCatalog is the built-in detector catalog.
var DefaultCatalog = []Detector{
	{Bundle: "react", Keywords: []string{"react", "next"}},
	{Bundle: "vue", Keywords: []string{"vue", "nuxt"}},
	{Bundle: "testing", Keywords: []string{"jest", "vitest", "playwright"}},
	{Bundle: "typescript", Keywords: []string{"typescript"}},
	{Bundle: "node-backend", Keywords: []string{"express", "fastify", "koa"}},
}

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// DetectBundles reads a package.json and returns the catalog bundles whose
// keywords match any dependency or devDependency name. The result is
// sorted and duplicate-free. A missing package.json means no bundles are
// relevant, not an error.
func DetectBundles(packageJSONPath string, catalog []Detector) ([]string, error) {
	data, err := os.ReadFile(packageJSONPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", packageJSONPath, err)
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", packageJSONPath, err)
	}

	deps := make([]string, 0, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for name := range pkg.Dependencies {
		deps = append(deps, name)
	}
	for name := range pkg.DevDependencies {
		deps = append(deps, name)
	}

	matched := make(map[string]bool)
	for _, det := range catalog {
		for _, kw := range det.Keywords {
			for _, dep := range deps {
				if strings.Contains(dep, kw) {
					matched[det.Bundle] = true
				}
			}
		}
	}

	out := make([]string, 0, len(matched))
	for b := range matched {
		out = append(out, b)
	}
	sort.Strings(out)
	return out, nil
}

// SyncFile copies src to dst only when dst is missing or its content
// differs. Returns whether a copy happened.
func SyncFile(src, dst string) (bool, error) {
	srcData, err := os.ReadFile(src)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", src, err)
	}

	dstData, err := os.ReadFile(dst)
	if err == nil && bytes.Equal(srcData, dstData) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read %s: %w", dst, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}
	if err := os.WriteFile(dst, srcData, 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return true, nil
}

// Registry records when each bundle was last synced and at which commit.
type Registry struct {
	Bundles map[string]RegistryEntry `json:"bundles"`
}

// RegistryEntry is the bookkeeping for one synced bundle.
type RegistryEntry struct {
	SyncedAt string `json:"syncedAt"`
	Commit   string `json:"commit,omitempty"`
}

// LoadRegistry reads a registry file. A missing file yields an empty
// registry.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Registry{Bundles: make(map[string]RegistryEntry)}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	if r.Bundles == nil {
		r.Bundles = make(map[string]RegistryEntry)
	}
	return &r, nil
}

// Record updates the entry for a bundle.
func (r *Registry) Record(bundle, commit string, now time.Time) {
	r.Bundles[bundle] = RegistryEntry{
		SyncedAt: now.UTC().Format(time.RFC3339),
		Commit:   commit,
	}
}

// Save writes the registry back to disk.
func (r *Registry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
