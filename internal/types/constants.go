// Package types provides type-safe constants for the plugcheck validation system.
//
// This package centralizes all enumerated types used throughout the codebase,
// replacing magic strings with typed constants that provide compile-time safety
// and validation methods.
package types

import (
	"fmt"
	"strings"
)

// Outcome represents the result of a single check.
type Outcome string

const (
	// OutcomePass indicates the check succeeded.
	OutcomePass Outcome = "pass"
	// OutcomeFail indicates the check found a violation.
	OutcomeFail Outcome = "fail"
	// OutcomeSkip indicates the check was deliberately not evaluated.
	OutcomeSkip Outcome = "skip"
)

// AllOutcomes returns all valid outcomes.
func AllOutcomes() []Outcome {
	return []Outcome{OutcomePass, OutcomeFail, OutcomeSkip}
}

// String returns the string representation of the Outcome.
func (o Outcome) String() string {
	return string(o)
}

// HookEvent represents a Claude Code hook lifecycle event.
type HookEvent string

const (
	// HookPreToolUse fires before a tool call is executed.
	HookPreToolUse HookEvent = "PreToolUse"
	// HookPostToolUse fires after a tool call completes.
	HookPostToolUse HookEvent = "PostToolUse"
	// HookNotification fires when the assistant raises a notification.
	HookNotification HookEvent = "Notification"
	// HookStop fires when the main agent stops.
	HookStop HookEvent = "Stop"
	// HookSubagentStop fires when a subagent stops.
	HookSubagentStop HookEvent = "SubagentStop"
	// HookSessionStart fires at the beginning of a session.
	HookSessionStart HookEvent = "SessionStart"
	// HookPreCompact fires before conversation compaction.
	HookPreCompact HookEvent = "PreCompact"
)

// AllHookEvents returns all valid hook events.
func AllHookEvents() []HookEvent {
	return []HookEvent{
		HookPreToolUse,
		HookPostToolUse,
		HookNotification,
		HookStop,
		HookSubagentStop,
		HookSessionStart,
		HookPreCompact,
	}
}

// Validate checks if the HookEvent is a valid value.
func (e HookEvent) Validate() error {
	for _, v := range AllHookEvents() {
		if e == v {
			return nil
		}
	}
	if e == "" {
		return fmt.Errorf("hook event is required")
	}
	return fmt.Errorf("invalid hook event '%s' (must be one of %s)", e, joinHookEvents())
}

// String returns the string representation of the HookEvent.
func (e HookEvent) String() string {
	return string(e)
}

func joinHookEvents() string {
	events := AllHookEvents()
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}

// OSKind represents the operating system family detected by the
// notification helpers.
type OSKind string

const (
	// OSLinux is a native Linux host.
	OSLinux OSKind = "linux"
	// OSMacOS is a macOS host.
	OSMacOS OSKind = "macos"
	// OSWSL is Linux running under Windows Subsystem for Linux.
	OSWSL OSKind = "wsl"
	// OSUnknown is any host the detector cannot classify.
	OSUnknown OSKind = "unknown"
)

// AllOSKinds returns all valid OS kinds.
func AllOSKinds() []OSKind {
	return []OSKind{OSLinux, OSMacOS, OSWSL, OSUnknown}
}

// Validate checks if the OSKind is a valid value.
func (k OSKind) Validate() error {
	switch k {
	case OSLinux, OSMacOS, OSWSL, OSUnknown:
		return nil
	default:
		return fmt.Errorf("invalid OS kind '%s' (must be linux, macos, wsl, or unknown)", k)
	}
}

// String returns the string representation of the OSKind.
func (k OSKind) String() string {
	return string(k)
}

// ServerType represents how an MCP server entry is reached.
type ServerType string

const (
	// ServerTypeHTTP is a remote server addressed by URL.
	ServerTypeHTTP ServerType = "http"
	// ServerTypeCommand is a local server spawned as a subprocess.
	ServerTypeCommand ServerType = "command"
)

// String returns the string representation of the ServerType.
func (t ServerType) String() string {
	return string(t)
}

// TaskStatus represents the state of a tracked epic or task.
type TaskStatus string

const (
	// TaskPending is work that has not started.
	TaskPending TaskStatus = "pending"
	// TaskInProgress is work currently underway.
	TaskInProgress TaskStatus = "in-progress"
	// TaskCompleted is finished work.
	TaskCompleted TaskStatus = "completed"
)

// String returns the string representation of the TaskStatus.
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus parses a string into a TaskStatus.
// Returns an error if the string is not a valid status.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(strings.ToLower(s)) {
	case TaskPending:
		return TaskPending, nil
	case TaskInProgress:
		return TaskInProgress, nil
	case TaskCompleted:
		return TaskCompleted, nil
	default:
		return "", fmt.Errorf("invalid task status '%s' (must be pending, in-progress, or completed)", s)
	}
}
