// Package plugin models the artifacts of a Claude Code plugin bundle:
// manifests, hook configs, markdown frontmatter, schema files, MCP server
// manifests, and permission files. The package only reads artifacts; it
// never creates or mutates them.
package plugin

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the parsed YAML header of a command, agent, or skill
// markdown file.
type Frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Raw holds every field present, for required-field checks beyond
	// the well-known ones.
	Raw map[string]interface{} `yaml:"-"`

	HasFrontmatter bool `yaml:"-"`
}

// HasField reports whether the frontmatter declared the given field with a
// non-empty value.
func (f Frontmatter) HasField(name string) bool {
	v, ok := f.Raw[name]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return s != ""
	}
	return true
}

// ParseFrontmatter splits a markdown document into its YAML frontmatter and
// body. A document without a leading "---" line returns an empty
// Frontmatter with HasFrontmatter false and no error.
func ParseFrontmatter(content []byte) (Frontmatter, string, error) {
	header, body, ok := splitFrontmatter(content)
	if !ok {
		return Frontmatter{}, string(content), nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return Frontmatter{}, "", fmt.Errorf("parse frontmatter: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal([]byte(header), &raw); err != nil {
		return Frontmatter{}, "", fmt.Errorf("parse frontmatter fields: %w", err)
	}

	fm.Raw = raw
	fm.HasFrontmatter = true
	return fm, body, nil
}

// ParseFrontmatterFile reads path and parses its frontmatter.
func ParseFrontmatterFile(path string) (Frontmatter, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Frontmatter{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	fm, _, err := ParseFrontmatter(content)
	if err != nil {
		return Frontmatter{}, fmt.Errorf("%s: %w", path, err)
	}
	return fm, nil
}

// splitFrontmatter separates the "---" delimited header from the body.
// The first line must be exactly "---"; the header runs until the next
// line that is exactly "---".
func splitFrontmatter(content []byte) (string, string, bool) {
	firstLineEnd := bytes.IndexByte(content, '\n')
	if firstLineEnd == -1 {
		return "", string(content), false
	}
	if !bytes.Equal(bytes.TrimRight(content[:firstLineEnd], "\r"), []byte("---")) {
		return "", string(content), false
	}

	rest := content[firstLineEnd+1:]
	offset := 0
	for offset <= len(rest) {
		lineEnd := bytes.IndexByte(rest[offset:], '\n')
		if lineEnd == -1 {
			lineEnd = len(rest) - offset
		}
		line := bytes.TrimRight(rest[offset:offset+lineEnd], "\r")
		if bytes.Equal(line, []byte("---")) {
			header := string(rest[:offset])
			bodyStart := offset + lineEnd
			if bodyStart < len(rest) && rest[bodyStart] == '\n' {
				bodyStart++
			}
			return header, string(rest[bodyStart:]), true
		}
		offset += lineEnd + 1
	}
	return "", string(content), false
}
