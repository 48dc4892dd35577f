//nolint:testpackage // Tests require internal access for thorough testing
package output

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abatilo/todo/internal/task"
)

func sampleEntries() []task.Entry {
	due := "2025-07-01"
	return []task.Entry{
		{Index: 1, Task: task.Task{Description: "Buy milk", DueDate: &due, Priority: task.PriorityHigh}},
		{Index: 2, Task: task.Task{Description: "Write report", Priority: task.PriorityLow, Done: true}},
	}
}

func TestHumanFormatTaskList(t *testing.T) {
	got := NewHumanFormatter().FormatTaskList(sampleEntries())
	want := "1. [ ] P1 Buy milk (due: 2025-07-01)\n" +
		"2. [X] P3 Write report\n"
	if got != want {
		t.Errorf("FormatTaskList() =\n%s\nwant\n%s", got, want)
	}
}

func TestHumanFormatEmptyList(t *testing.T) {
	if got := NewHumanFormatter().FormatTaskList(nil); got != "No tasks found.\n" {
		t.Errorf("FormatTaskList(nil) = %q", got)
	}
}

func TestHumanFormatTask(t *testing.T) {
	got := NewHumanFormatter().FormatTask(sampleEntries()[0].Task)
	for _, want := range []string{"Buy milk\n", "Status:   not done", "Priority: high", "Due:      2025-07-01"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatTask() missing %q:\n%s", want, got)
		}
	}

	got = NewHumanFormatter().FormatTask(sampleEntries()[1].Task)
	if strings.Contains(got, "Due:") {
		t.Errorf("FormatTask() should omit absent due date:\n%s", got)
	}
}

func TestHumanFormatError(t *testing.T) {
	if got := NewHumanFormatter().FormatError(errors.New("boom")); got != "Error: boom\n" {
		t.Errorf("FormatError() = %q", got)
	}
}

func TestJSONFormatTaskList(t *testing.T) {
	out := NewJSONFormatter().FormatTaskList(sampleEntries())

	var decoded []map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d items, want 2", len(decoded))
	}
	if decoded[0]["task"] != "Buy milk" || decoded[0]["index"] != float64(1) || decoded[0]["status"] != "not done" {
		t.Errorf("first item = %v", decoded[0])
	}
	if decoded[1]["due_date"] != nil {
		t.Errorf("absent due_date = %v, want null", decoded[1]["due_date"])
	}
}

func TestJSONFormatEmptyListIsArray(t *testing.T) {
	if got := NewJSONFormatter().FormatTaskList(nil); got != "[]\n" {
		t.Errorf("FormatTaskList(nil) = %q, want %q", got, "[]\n")
	}
}

func TestJSONFormatMessageAndError(t *testing.T) {
	f := NewJSONFormatter()
	if got, want := f.FormatMessage("saved"), "{\n  \"message\": \"saved\"\n}\n"; got != want {
		t.Errorf("FormatMessage() = %q, want %q", got, want)
	}
	if got, want := f.FormatError(errors.New("boom")), "{\n  \"error\": \"boom\"\n}\n"; got != want {
		t.Errorf("FormatError() = %q, want %q", got, want)
	}
}
