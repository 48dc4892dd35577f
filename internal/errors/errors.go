//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import "fmt"

// ValidationError indicates caller-supplied data failed a precondition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// OutOfRangeError indicates a display index that references no task.
type OutOfRangeError struct {
	Index int
	Count int
}

func (e OutOfRangeError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("task %d does not exist: no tasks", e.Index)
	}
	return fmt.Sprintf("task %d does not exist (valid: 1-%d)", e.Index, e.Count)
}

// NotFoundError indicates the tasks file does not exist yet.
type NotFoundError struct {
	Path string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("tasks file not found: %s", e.Path)
}

// CorruptDataError indicates the tasks file exists but could not be parsed.
type CorruptDataError struct {
	Path string
	Err  error
}

func (e CorruptDataError) Error() string {
	return fmt.Sprintf("tasks file %s is corrupt: %v", e.Path, e.Err)
}

func (e CorruptDataError) Unwrap() error {
	return e.Err
}

// IOError wraps a filesystem failure with the operation that hit it.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e IOError) Unwrap() error {
	return e.Err
}

// InvalidFormatError indicates an unsupported data or export format.
type InvalidFormatError struct {
	Value string
	Valid string
}

func (e InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format: %s (valid: %s)", e.Value, e.Valid)
}
