package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// kebabCasePattern validates lowercase hyphen-separated names.
var kebabCasePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// IsKebabCase reports whether name is lowercase kebab-case.
func IsKebabCase(name string) bool {
	return kebabCasePattern.MatchString(name)
}

// ValidationError represents a structural violation in a bundle artifact.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Manifest represents a plugin.json file.
type Manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// LoadManifest reads and parses a plugin.json file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks the manifest's required fields and that its declared name
// matches the plugin directory it lives in. All violations are collected
// rather than stopping at the first.
func (m *Manifest) Validate(pluginDir string) []error {
	var errs []error

	if m.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "is required"})
	}
	if m.Version == "" {
		errs = append(errs, ValidationError{Field: "version", Message: "is required"})
	}
	if m.Description == "" {
		errs = append(errs, ValidationError{Field: "description", Message: "is required"})
	}

	dirName := filepath.Base(pluginDir)
	if m.Name != "" && m.Name != dirName {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("'%s' does not match plugin directory '%s'", m.Name, dirName),
		})
	}
	if m.Name != "" && !IsKebabCase(m.Name) {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("'%s' is not kebab-case", m.Name),
		})
	}

	return errs
}
