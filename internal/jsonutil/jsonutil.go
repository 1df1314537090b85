// Package jsonutil provides small JSON helpers shared by the check suites:
// file parsing, dotted key-path lookup, and list invariants.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ParseFile reads and parses a JSON file into a generic document.
func ParseFile(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return doc, nil
}

// Lookup resolves a dotted key path (e.g. ".permissions.allow" or
// "permissions.allow") against a parsed JSON document. Numeric segments
// index into arrays. The second return value reports whether the path
// resolved at all; a path that resolves to an explicit null returns
// (nil, true).
func Lookup(doc interface{}, keyPath string) (interface{}, bool) {
	path := strings.TrimPrefix(keyPath, ".")
	if path == "" {
		return doc, true
	}

	current := doc
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []interface{}:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// HasKey reports whether keyPath resolves to a defined, non-null value.
// A value of false or 0 counts as defined; only a missing path or an
// explicit null does not.
func HasKey(doc interface{}, keyPath string) bool {
	v, ok := Lookup(doc, keyPath)
	return ok && v != nil
}

// StringSlice converts a JSON array value into a []string.
// Returns an error if the value is not an array of strings.
func StringSlice(v interface{}) ([]string, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("value is not an array")
	}
	out := make([]string, 0, len(arr))
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("element %d is not a string", i)
		}
		out = append(out, s)
	}
	return out, nil
}

// IsSorted reports whether the slice is in ascending lexical order.
func IsSorted(ss []string) bool {
	return sort.StringsAreSorted(ss)
}

// HasDuplicates reports whether the slice contains any repeated value.
func HasDuplicates(ss []string) bool {
	seen := make(map[string]bool, len(ss))
	for _, s := range ss {
		if seen[s] {
			return true
		}
		seen[s] = true
	}
	return false
}
