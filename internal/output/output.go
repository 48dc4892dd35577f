package output

import "github.com/abatilo/todo/internal/task"

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTask(t task.Task) string
	FormatTaskList(entries []task.Entry) string
	FormatError(err error) string
	FormatMessage(msg string) string
}
