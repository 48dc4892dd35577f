package output

import (
	"encoding/json"

	"github.com/abatilo/todo/internal/task"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// taskJSON is the JSON representation of a task.
type taskJSON struct {
	Index    int     `json:"index,omitempty"`
	Task     string  `json:"task"`
	DueDate  *string `json:"due_date"`
	Priority string  `json:"priority"`
	Done     bool    `json:"done"`
	Status   string  `json:"status"`
}

func toTaskJSON(index int, t task.Task) taskJSON {
	return taskJSON{
		Index:    index,
		Task:     t.Description,
		DueDate:  t.DueDate,
		Priority: string(t.Priority),
		Done:     t.Done,
		Status:   t.Status(),
	}
}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(t task.Task) string {
	return marshalJSON(toTaskJSON(0, t))
}

// FormatTaskList formats tasks in display order as a JSON array.
func (f *JSONFormatter) FormatTaskList(entries []task.Entry) string {
	jsonTasks := make([]taskJSON, len(entries))
	for i, e := range entries {
		jsonTasks[i] = toTaskJSON(e.Index, e.Task)
	}
	return marshalJSON(jsonTasks)
}

// errorJSON is the JSON representation of an error.
type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

// messageJSON is the JSON representation of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}
