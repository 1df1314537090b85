package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"plugcheck/internal/types"
)

// MCPConfig represents a .mcp.json manifest of configured MCP servers.
type MCPConfig struct {
	Servers map[string]MCPServer `json:"mcpServers"`
}

// MCPServer is one server entry. Entries with Type "http" are addressed by
// URL; everything else is a spawned command.
type MCPServer struct {
	Type    string            `json:"type,omitempty"`
	URL     string            `json:"url,omitempty"`
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Kind classifies the entry by transport.
func (s MCPServer) Kind() types.ServerType {
	if s.Type == "http" {
		return types.ServerTypeHTTP
	}
	return types.ServerTypeCommand
}

// Validate checks the shape rules for one server entry.
func (s MCPServer) Validate(name string) []error {
	var errs []error

	switch s.Kind() {
	case types.ServerTypeHTTP:
		if s.URL == "" {
			errs = append(errs, ValidationError{
				Field:   name + ".url",
				Message: "http server requires a url",
			})
		}
	case types.ServerTypeCommand:
		if strings.TrimSpace(s.Command) == "" {
			errs = append(errs, ValidationError{
				Field:   name + ".command",
				Message: "command server requires a non-empty command",
			})
		}
		if len(s.Args) == 0 {
			errs = append(errs, ValidationError{
				Field:   name + ".args",
				Message: "command server requires a non-empty args array",
			})
		}
	}

	return errs
}

// LoadMCPConfig reads and parses a .mcp.json file.
func LoadMCPConfig(path string) (*MCPConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var c MCPConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return &c, nil
}
