package output

import (
	"fmt"
	"strings"

	"github.com/abatilo/todo/internal/task"
)

// EmptyListMessage is shown instead of a list when there are no tasks.
const EmptyListMessage = "No tasks found."

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(t task.Task) string {
	var sb strings.Builder

	sb.WriteString(t.Description + "\n")
	sb.WriteString(fmt.Sprintf("  Status:   %s\n", t.Status()))
	sb.WriteString(fmt.Sprintf("  Priority: %s\n", t.Priority))
	if t.DueDate != nil && *t.DueDate != "" {
		sb.WriteString(fmt.Sprintf("  Due:      %s\n", *t.DueDate))
	}

	return sb.String()
}

// FormatTaskList formats tasks in display order, one per line.
func (f *HumanFormatter) FormatTaskList(entries []task.Entry) string {
	if len(entries) == 0 {
		return EmptyListMessage + "\n"
	}

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(f.formatTaskLine(e))
	}
	return sb.String()
}

// formatTaskLine formats a single task as a compact one-liner.
func (f *HumanFormatter) formatTaskLine(e task.Entry) string {
	due := ""
	if e.Task.DueDate != nil && *e.Task.DueDate != "" {
		due = fmt.Sprintf(" (due: %s)", *e.Task.DueDate)
	}
	return fmt.Sprintf("%d. %s %s %s%s\n",
		e.Index, f.statusIcon(e.Task.Done), f.priorityMark(e.Task.Priority), e.Task.Description, due)
}

func (f *HumanFormatter) statusIcon(done bool) string {
	if done {
		return "[X]"
	}
	return "[ ]"
}

func (f *HumanFormatter) priorityMark(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "P1"
	case task.PriorityMedium:
		return "P2"
	case task.PriorityLow:
		return "P3"
	default:
		return "P?"
	}
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}
