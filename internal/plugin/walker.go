package plugin

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Bundle is a plugin bundle repository root. All discovery is read-only.
type Bundle struct {
	Root string
}

// Dir is one plugin directory under plugins/.
type Dir struct {
	Name string
	Path string
}

// ManifestPath returns the expected plugin.json location for the plugin.
func (d Dir) ManifestPath() string {
	return filepath.Join(d.Path, ".claude-plugin", "plugin.json")
}

// PluginsDir returns the plugins tree root.
func (b Bundle) PluginsDir() string {
	return filepath.Join(b.Root, "plugins")
}

// Plugins lists the plugin directories, sorted by name.
func (b Bundle) Plugins() ([]Dir, error) {
	entries, err := os.ReadDir(b.PluginsDir())
	if err != nil {
		return nil, err
	}

	var dirs []Dir
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dirs = append(dirs, Dir{
			Name: e.Name(),
			Path: filepath.Join(b.PluginsDir(), e.Name()),
		})
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	return dirs, nil
}

// findFiles walks the plugins tree collecting files the predicate accepts.
func (b Bundle) findFiles(accept func(path string, d fs.DirEntry) bool) []string {
	var found []string
	_ = filepath.WalkDir(b.PluginsDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are simply not discovered
		}
		if d.IsDir() {
			return nil
		}
		if accept(path, d) {
			found = append(found, path)
		}
		return nil
	})
	sort.Strings(found)
	return found
}

// ShellScripts returns every *.sh file under the plugins tree.
func (b Bundle) ShellScripts() []string {
	return b.findFiles(func(path string, d fs.DirEntry) bool {
		return strings.HasSuffix(path, ".sh")
	})
}

// HooksFiles returns every hooks.json under the plugins tree.
func (b Bundle) HooksFiles() []string {
	return b.findFiles(func(path string, d fs.DirEntry) bool {
		return d.Name() == "hooks.json"
	})
}

// SchemaFiles returns every *schema*.json under the plugins tree.
func (b Bundle) SchemaFiles() []string {
	return b.findFiles(func(path string, d fs.DirEntry) bool {
		return strings.Contains(d.Name(), "schema") && strings.HasSuffix(d.Name(), ".json")
	})
}

// CommandFiles returns the markdown command files of one plugin.
func CommandFiles(d Dir) []string {
	return globMarkdown(filepath.Join(d.Path, "commands"))
}

// AgentFiles returns the markdown agent files of one plugin.
func AgentFiles(d Dir) []string {
	return globMarkdown(filepath.Join(d.Path, "agents"))
}

// SkillDirs returns the skill directories of one plugin. Each is expected
// to contain a SKILL.md.
func SkillDirs(d Dir) []Dir {
	entries, err := os.ReadDir(filepath.Join(d.Path, "skills"))
	if err != nil {
		return nil
	}
	var dirs []Dir
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dirs = append(dirs, Dir{
			Name: e.Name(),
			Path: filepath.Join(d.Path, "skills", e.Name()),
		})
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	return dirs
}

func globMarkdown(dir string) []string {
	var found []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			found = append(found, path)
		}
		return nil
	})
	sort.Strings(found)
	return found
}

// GrepTree scans every text file under the plugins tree for the given
// literal references and returns "path: reference" matches. Files whose
// path contains any allowlist entry are excluded.
func (b Bundle) GrepTree(references, allowlist []string) []string {
	var matches []string
	files := b.findFiles(func(path string, d fs.DirEntry) bool {
		switch filepath.Ext(path) {
		case ".md", ".json", ".sh", ".txt", ".yaml", ".yml":
			return true
		}
		return false
	})

	for _, path := range files {
		if pathAllowed(path, allowlist) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		content := string(data)
		for _, ref := range references {
			if strings.Contains(content, ref) {
				matches = append(matches, path+": "+ref)
			}
		}
	}
	return matches
}

func pathAllowed(path string, allowlist []string) bool {
	for _, a := range allowlist {
		if a != "" && strings.Contains(path, a) {
			return true
		}
	}
	return false
}
