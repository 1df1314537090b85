package harness

import (
	"fmt"
	"os"
	"regexp"

	"plugcheck/internal/jsonutil"
	"plugcheck/internal/types"
)

// Check records a pass or a fail depending on ok. It is the primitive the
// named assertions build on; suites may call it directly for one-off
// predicates.
func (c *TestContext) Check(ok bool, name, detail string) bool {
	outcome := types.OutcomePass
	if !ok {
		outcome = types.OutcomeFail
	} else {
		detail = ""
	}
	c.record(Result{Name: name, Outcome: outcome, Detail: detail})
	return ok
}

// Skip records a skipped check without evaluating anything. Used when a
// prerequisite (an optional binary, a platform feature) is unavailable.
func (c *TestContext) Skip(name, reason string) {
	c.record(Result{Name: name, Outcome: types.OutcomeSkip, Detail: reason})
}

// Equals asserts string equality.
func (c *TestContext) Equals(expected, actual, name string) bool {
	return c.Check(expected == actual, name,
		fmt.Sprintf("expected %q, got %q", expected, actual))
}

// NotEquals asserts string inequality.
func (c *TestContext) NotEquals(unexpected, actual, name string) bool {
	return c.Check(unexpected != actual, name,
		fmt.Sprintf("got %q, expected anything else", actual))
}

// Contains asserts that haystack matches the pattern. The pattern is a
// regular expression, not a literal substring: callers passing strings with
// regex metacharacters (e.g. permission entries like "Bash(rm:*)") must
// escape them with regexp.QuoteMeta. An invalid pattern is recorded as a
// failure rather than a panic.
func (c *TestContext) Contains(haystack, pattern, name string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return c.Check(false, name, fmt.Sprintf("invalid pattern %q: %v", pattern, err))
	}
	return c.Check(re.MatchString(haystack), name,
		fmt.Sprintf("pattern %q not found in output", pattern))
}

// NotContains asserts that haystack does not match the pattern.
// Same regex semantics as Contains.
func (c *TestContext) NotContains(haystack, pattern, name string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return c.Check(false, name, fmt.Sprintf("invalid pattern %q: %v", pattern, err))
	}
	return c.Check(!re.MatchString(haystack), name,
		fmt.Sprintf("pattern %q unexpectedly found", pattern))
}

// FileExists asserts that path is an existing regular file.
func (c *TestContext) FileExists(path, name string) bool {
	info, err := os.Stat(path)
	ok := err == nil && info.Mode().IsRegular()
	return c.Check(ok, name, fmt.Sprintf("file not found: %s", path))
}

// DirExists asserts that path is an existing directory.
func (c *TestContext) DirExists(path, name string) bool {
	info, err := os.Stat(path)
	ok := err == nil && info.IsDir()
	return c.Check(ok, name, fmt.Sprintf("directory not found: %s", path))
}

// Executable asserts that path is a regular file with any execute bit set.
func (c *TestContext) Executable(path, name string) bool {
	info, err := os.Stat(path)
	ok := err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
	return c.Check(ok, name, fmt.Sprintf("not an executable file: %s", path))
}

// JSONValid asserts that the file at path parses as JSON.
func (c *TestContext) JSONValid(path, name string) bool {
	_, err := jsonutil.ParseFile(path)
	return c.Check(err == nil, name, fmt.Sprintf("%v", err))
}

// JSONHasKey asserts that keyPath resolves to a defined, non-null value in
// the JSON file at path. A value of false or 0 passes; null or a missing
// path fails.
func (c *TestContext) JSONHasKey(path, keyPath, name string) bool {
	doc, err := jsonutil.ParseFile(path)
	if err != nil {
		return c.Check(false, name, fmt.Sprintf("%v", err))
	}
	return c.Check(jsonutil.HasKey(doc, keyPath), name,
		fmt.Sprintf("key %s missing or null in %s", keyPath, path))
}

// Greater asserts actual > threshold.
func (c *TestContext) Greater(actual, threshold int, name string) bool {
	return c.Check(actual > threshold, name,
		fmt.Sprintf("expected > %d, got %d", threshold, actual))
}
