// Package taskmaster implements the session-resume logic for the
// task-master plugin: reading the task index and deciding whether (and
// what) to print when a session starts.
package taskmaster

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"plugcheck/internal/types"
)

// Index is the task-tracking state file.
type Index struct {
	Epics      []Epic     `json:"epics"`
	Standalone Standalone `json:"standalone"`
}

// Epic is one tracked epic.
type Epic struct {
	ID     string           `json:"id"`
	Name   string           `json:"name,omitempty"`
	Status types.TaskStatus `json:"status"`
}

// Standalone is the bucket of tasks not attached to any epic.
type Standalone struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Pending returns the number of unfinished standalone tasks.
func (s Standalone) Pending() int {
	return s.Total - s.Completed
}

// LoadIndex reads the index file. A missing file returns (nil, false, nil):
// no tracking state is a normal condition, not an error.
func LoadIndex(path string) (*Index, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, false, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return &idx, true, nil
}

// InProgressEpics returns the ids of epics currently underway.
func (i *Index) InProgressEpics() []string {
	var ids []string
	for _, e := range i.Epics {
		if e.Status == types.TaskInProgress {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Resume produces the session-start banner for the given index file.
// The returned string is empty (fully silent) when there is no state file
// or when every tracked epic is completed and no standalone task is
// pending.
func Resume(indexPath string) (string, error) {
	idx, ok, err := LoadIndex(indexPath)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	active := idx.InProgressEpics()
	pending := idx.Standalone.Pending()
	if len(active) == 0 && pending <= 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("Active work detected\n")
	for _, id := range active {
		fmt.Fprintf(&b, "  epic %s: in-progress\n", id)
	}
	if pending > 0 {
		fmt.Fprintf(&b, "  standalone tasks: %d pending\n", pending)
	}
	return b.String(), nil
}

// ScanFallback detects active work with plain text matching, for hosts
// where JSON tooling is unavailable. It errs on the side of reporting
// activity: any in-progress status marker counts.
func ScanFallback(data []byte) bool {
	content := string(data)
	for _, marker := range []string{
		`"status": "in-progress"`,
		`"status":"in-progress"`,
	} {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}
