package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	todoerrors "github.com/abatilo/todo/internal/errors"
	"github.com/abatilo/todo/internal/task"
)

// Format identifies the on-disk encoding of the tasks file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

const validFormats = "json, yaml, toml"

// ParseFormat validates a user-supplied format name. Empty input returns ""
// so callers can fall back to FormatForPath.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", todoerrors.InvalidFormatError{Value: s, Valid: validFormats}
	}
}

// FormatForPath infers the format from the file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// record is the serializable form of a task. Field names match the
// historical tasks.json layout.
type record struct {
	Task     string  `json:"task"     toml:"task"     yaml:"task"`
	DueDate  *string `json:"due_date" toml:"due_date" yaml:"due_date,omitempty"`
	Priority string  `json:"priority" toml:"priority" yaml:"priority"`
	Done     bool    `json:"done"     toml:"done"     yaml:"done"`
}

// tomlDocument wraps the records because TOML has no top-level arrays.
type tomlDocument struct {
	Tasks []record `toml:"tasks"`
}

// Decode parses a tasks file. Empty input is an empty collection; any other
// document must hold a list of tasks.
func Decode(format Format, data []byte) ([]*task.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []record
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, &parseError{"invalid JSON: " + err.Error()}
		}
		if records == nil {
			return nil, &parseError{"invalid JSON: top level is not a list of tasks"}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, &parseError{"invalid YAML: " + err.Error()}
		}
		if records == nil {
			return nil, &parseError{"invalid YAML: top level is not a list of tasks"}
		}
	case FormatTOML:
		var doc tomlDocument
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, &parseError{"invalid TOML: " + err.Error()}
		}
		if !md.IsDefined("tasks") {
			return nil, &parseError{"invalid TOML: missing tasks array"}
		}
		records = doc.Tasks
	default:
		return nil, todoerrors.InvalidFormatError{Value: string(format), Valid: validFormats}
	}

	tasks := make([]*task.Task, 0, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.Task) == "" {
			return nil, &parseError{fmt.Sprintf("record %d: empty task description", i+1)}
		}
		tasks = append(tasks, &task.Task{
			Description: r.Task,
			DueDate:     r.DueDate,
			Priority:    task.NormalizePriority(r.Priority),
			Done:        r.Done,
		})
	}
	return tasks, nil
}

// Encode serializes tasks in storage order.
func Encode(format Format, tasks []*task.Task) ([]byte, error) {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, record{
			Task:     t.Description,
			DueDate:  t.DueDate,
			Priority: string(t.Priority),
			Done:     t.Done,
		})
	}

	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, err
		}
		buf.Write(data)
		buf.WriteString("\n")
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(tomlDocument{Tasks: records}); err != nil {
			return nil, err
		}
	default:
		return nil, todoerrors.InvalidFormatError{Value: string(format), Valid: validFormats}
	}
	return buf.Bytes(), nil
}

// parseError represents a parsing error.
type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}
