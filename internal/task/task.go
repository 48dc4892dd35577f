package task

import "strings"

// Priority represents the importance level of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityOrder returns the sort rank for a priority (lower = higher priority).
// Unrecognized values rank with medium, which is what they normalize to.
func PriorityOrder(p Priority) int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// IsValidPriority checks if a priority string is valid.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// NormalizePriority maps free-form input onto one of the three priorities.
// Matching is case-insensitive; anything else becomes medium.
func NormalizePriority(s string) Priority {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if IsValidPriority(p) {
		return p
	}
	return PriorityMedium
}

// Task represents a single to-do item.
type Task struct {
	Description string
	DueDate     *string // nil means no due date, distinct from ""
	Priority    Priority
	Done        bool
}

// Status renders the completion flag the way exports spell it.
func (t Task) Status() string {
	if t.Done {
		return "done"
	}
	return "not done"
}

// Due returns the due date or "" when there is none.
func (t Task) Due() string {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

// Entry pairs a task with its 1-based position in display order.
type Entry struct {
	Index int
	Task  Task
}

// Less reports whether a sorts before b in display order: priority first,
// then incomplete before done.
func Less(a, b *Task) bool {
	pa, pb := PriorityOrder(a.Priority), PriorityOrder(b.Priority)
	if pa != pb {
		return pa < pb
	}
	return !a.Done && b.Done
}

// Compare is Less in the form slices.SortStableFunc expects.
func Compare(a, b *Task) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	default:
		return 0
	}
}
