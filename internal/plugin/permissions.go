package plugin

import (
	"encoding/json"
	"fmt"
	"os"

	"plugcheck/internal/jsonutil"
)

// PermissionsFile represents a base-permissions settings file with
// allow/ask/deny lists.
type PermissionsFile struct {
	Permissions PermissionLists `json:"permissions"`
}

// PermissionLists holds the three permission buckets.
type PermissionLists struct {
	Allow []string `json:"allow"`
	Ask   []string `json:"ask"`
	Deny  []string `json:"deny"`
}

// LoadPermissionsFile reads and parses a permissions settings file.
func LoadPermissionsFile(path string) (*PermissionsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var p PermissionsFile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return &p, nil
}

// Validate checks that each permission list is sorted and duplicate-free.
func (p *PermissionsFile) Validate() []error {
	var errs []error

	buckets := []struct {
		name string
		list []string
	}{
		{"permissions.allow", p.Permissions.Allow},
		{"permissions.ask", p.Permissions.Ask},
		{"permissions.deny", p.Permissions.Deny},
	}

	for _, b := range buckets {
		if !jsonutil.IsSorted(b.list) {
			errs = append(errs, ValidationError{Field: b.name, Message: "is not sorted"})
		}
		if jsonutil.HasDuplicates(b.list) {
			errs = append(errs, ValidationError{Field: b.name, Message: "contains duplicates"})
		}
	}

	return errs
}
