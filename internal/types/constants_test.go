package types

import (
	"strings"
	"testing"
)

func TestHookEventValidate(t *testing.T) {
	tests := []struct {
		name        string
		event       HookEvent
		wantErr     bool
		errContains string
	}{
		{name: "pre tool use", event: HookPreToolUse, wantErr: false},
		{name: "post tool use", event: HookPostToolUse, wantErr: false},
		{name: "notification", event: HookNotification, wantErr: false},
		{name: "stop", event: HookStop, wantErr: false},
		{name: "subagent stop", event: HookSubagentStop, wantErr: false},
		{name: "session start", event: HookSessionStart, wantErr: false},
		{name: "pre compact", event: HookPreCompact, wantErr: false},
		{name: "unknown event", event: "BadEvent", wantErr: true, errContains: "invalid hook event"},
		{name: "empty event", event: "", wantErr: true, errContains: "required"},
		{name: "wrong case", event: "pretooluse", wantErr: true, errContains: "invalid hook event"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Validate() = nil, want error")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Validate() error = %q, want substring %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestAllHookEventsCount(t *testing.T) {
	if got := len(AllHookEvents()); got != 7 {
		t.Errorf("AllHookEvents() has %d entries, want 7", got)
	}
}

func TestOSKindValidate(t *testing.T) {
	for _, k := range AllOSKinds() {
		if err := k.Validate(); err != nil {
			t.Errorf("Validate(%s) unexpected error: %v", k, err)
		}
	}
	if err := OSKind("windows").Validate(); err == nil {
		t.Error("Validate(windows) = nil, want error")
	}
}

func TestParseTaskStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TaskStatus
		wantErr bool
	}{
		{name: "pending", input: "pending", want: TaskPending},
		{name: "in progress", input: "in-progress", want: TaskInProgress},
		{name: "completed", input: "completed", want: TaskCompleted},
		{name: "uppercase normalized", input: "COMPLETED", want: TaskCompleted},
		{name: "invalid", input: "done", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskStatus(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTaskStatus(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTaskStatus(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTaskStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
