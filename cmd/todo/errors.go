package main

import "fmt"

// InvalidIndexError indicates a task index argument that is not a number.
type InvalidIndexError struct {
	Value string
}

func (e InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid task number: %q (expected a number from 'todo list')", e.Value)
}
