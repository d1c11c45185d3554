package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TaskStatus is the lifecycle state of a data-collection task.
//
// The backend owns transitions:
//
//	pending -> in_progress -> {completed, failed}
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the backend will no longer change the status.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// Label is the human form of the status ("in_progress" -> "in progress").
func (s TaskStatus) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// BadgeColor maps a status to the bootstrap badge palette used by the dashboard.
func (s TaskStatus) BadgeColor() string {
	switch s {
	case TaskPending:
		return "secondary"
	case TaskInProgress:
		return "warning"
	case TaskCompleted:
		return "success"
	case TaskFailed:
		return "danger"
	default:
		return "primary"
	}
}

// TaskFilters are the criteria a task collects records with.
//
// Example JSON:
//
//	{"sources":["source_a"],"year_from":2020,"year_to":2023,"companies":["Acme"]}
type TaskFilters struct {
	Sources   []string `json:"sources" example:"source_a,source_b"`
	YearFrom  int      `json:"year_from" example:"2020"`
	YearTo    int      `json:"year_to" example:"2023"`
	Companies []string `json:"companies" example:"Toyota,Ford"`
}

// Validate checks the filters before they are submitted to the task API.
func (f TaskFilters) Validate() error {
	if len(f.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	if f.YearFrom <= 0 || f.YearTo <= 0 {
		return fmt.Errorf("year_from and year_to are required")
	}
	if f.YearFrom > f.YearTo {
		return fmt.Errorf("year_from (%d) must not be after year_to (%d)", f.YearFrom, f.YearTo)
	}
	return nil
}

// Task is a server-side unit of work as seen by the dashboard.
type Task struct {
	ID          int          `json:"id" example:"42"`
	Status      TaskStatus   `json:"status" example:"completed"`
	CreatedAt   Timestamp    `json:"created_at"`
	CompletedAt *Timestamp   `json:"completed_at,omitempty"`
	Filters     *TaskFilters `json:"filters,omitempty"`
}

// timestampLayouts covers ISO-8601 with and without zone, as emitted by the task API.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Timestamp decodes ISO-8601 instants that may lack a zone; zone-less values are UTC.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses s with the accepted layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t.UTC()}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}
