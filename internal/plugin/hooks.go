package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"plugcheck/internal/types"
)

// pluginRootPlaceholder is substituted with the real plugin path when
// resolving hook commands.
const pluginRootPlaceholder = "${CLAUDE_PLUGIN_ROOT}"

// maxHookTimeout is the largest allowed hook timeout in seconds.
const maxHookTimeout = 60

// HooksFile represents a hooks.json config.
type HooksFile struct {
	Description string                 `json:"description"`
	Hooks       map[string][]HookGroup `json:"hooks"`

	// raw keeps the top-level keys for presence checks.
	raw map[string]json.RawMessage
}

// HookGroup is one matcher block under a lifecycle event.
type HookGroup struct {
	Matcher string      `json:"matcher,omitempty"`
	Hooks   []HookEntry `json:"hooks"`
}

// HookEntry is a single hook command declaration.
type HookEntry struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout,omitempty"`
}

// LoadHooksFile reads and parses a hooks.json file.
func LoadHooksFile(path string) (*HooksFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var h HooksFile
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &h.raw); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return &h, nil
}

// HasKey reports whether the file declared the given top-level key.
func (h *HooksFile) HasKey(key string) bool {
	_, ok := h.raw[key]
	return ok
}

// ExpandCommand substitutes the plugin root placeholder and returns the
// path portion of the command (arguments stripped).
func ExpandCommand(command, pluginRoot string) string {
	expanded := strings.ReplaceAll(command, pluginRootPlaceholder, pluginRoot)
	if fields := strings.Fields(expanded); len(fields) > 0 {
		return fields[0]
	}
	return expanded
}

// Validate checks the hooks config against the event enum and entry shape
// rules. pluginRoot is the directory the placeholder resolves to; script
// existence checks are relative to it.
func (h *HooksFile) Validate(pluginRoot string) []error {
	var errs []error

	if !h.HasKey("hooks") {
		errs = append(errs, ValidationError{Field: "hooks", Message: "is required"})
	}
	if !h.HasKey("description") {
		errs = append(errs, ValidationError{Field: "description", Message: "is required"})
	}

	for event, groups := range h.Hooks {
		if err := types.HookEvent(event).Validate(); err != nil {
			errs = append(errs, ValidationError{Field: event, Message: err.Error()})
		}
		for i, group := range groups {
			for j, entry := range group.Hooks {
				field := fmt.Sprintf("%s[%d].hooks[%d]", event, i, j)
				errs = append(errs, validateHookEntry(field, entry, pluginRoot)...)
			}
		}
	}

	return errs
}

func validateHookEntry(field string, entry HookEntry, pluginRoot string) []error {
	var errs []error

	if entry.Type != "command" {
		errs = append(errs, ValidationError{
			Field:   field + ".type",
			Message: fmt.Sprintf("'%s' is not 'command'", entry.Type),
		})
	}
	if strings.TrimSpace(entry.Command) == "" {
		errs = append(errs, ValidationError{Field: field + ".command", Message: "is empty"})
		return errs
	}

	target := ExpandCommand(entry.Command, pluginRoot)
	if filepath.IsAbs(target) || strings.Contains(entry.Command, pluginRootPlaceholder) {
		info, err := os.Stat(target)
		switch {
		case err != nil:
			errs = append(errs, ValidationError{
				Field:   field + ".command",
				Message: fmt.Sprintf("target %s does not exist", target),
			})
		case !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0:
			errs = append(errs, ValidationError{
				Field:   field + ".command",
				Message: fmt.Sprintf("target %s is not executable", target),
			})
		}
	}

	if entry.Timeout != 0 && (entry.Timeout < 1 || entry.Timeout > maxHookTimeout) {
		errs = append(errs, ValidationError{
			Field:   field + ".timeout",
			Message: fmt.Sprintf("%d is outside 1..%d", entry.Timeout, maxHookTimeout),
		})
	}

	return errs
}
