// Package store owns the in-memory task collection and mediates every read,
// mutation and persistence operation on it.
package store

import (
	"errors"
	"iter"
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	todoerrors "github.com/abatilo/todo/internal/errors"
	"github.com/abatilo/todo/internal/export"
	"github.com/abatilo/todo/internal/task"
)

// Event outcomes recorded on every logged operation.
const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
	outcomeNotFound = "not_found"
	outcomeCorrupt  = "corrupt"
)

// Backend persists the whole collection. Read must return
// errors.NotFoundError when nothing has been saved yet and
// errors.CorruptDataError when the stored content cannot be parsed.
type Backend interface {
	Read() ([]*task.Task, error)
	Write(tasks []*task.Task) error
}

// Store holds the task collection in storage (insertion) order. It is not
// safe for concurrent use.
type Store struct {
	backend Backend
	logger  *zap.Logger
	tasks   []*task.Task
	dirty   bool
}

// New creates an empty, unloaded Store. A nil logger discards events.
func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger}
}

// Open creates a Store and loads it from backend.
func Open(backend Backend, logger *zap.Logger) (*Store, error) {
	s := New(backend, logger)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory collection with the backend's content.
//
// A missing file and a corrupt file both leave the store empty without
// returning an error. Corrupt content is discarded whole, never partially
// recovered. Any other failure is returned and the collection is untouched.
func (s *Store) Load() error {
	tasks, err := s.backend.Read()

	var notFound todoerrors.NotFoundError
	var corrupt todoerrors.CorruptDataError
	switch {
	case err == nil:
		s.log(zapcore.InfoLevel, "load", outcomeOK, zap.Int("count", len(tasks)))
	case errors.As(err, &notFound):
		s.log(zapcore.WarnLevel, "load", outcomeNotFound, zap.String("path", notFound.Path))
		tasks = nil
	case errors.As(err, &corrupt):
		s.log(zapcore.ErrorLevel, "load", outcomeCorrupt, zap.String("path", corrupt.Path), zap.Error(corrupt.Err))
		tasks = nil
	default:
		s.log(zapcore.ErrorLevel, "load", outcomeFailed, zap.Error(err))
		return err
	}

	s.tasks = tasks
	s.dirty = false
	return nil
}

// Save writes the full collection to the backend. On failure the in-memory
// state is kept and the store stays dirty.
func (s *Store) Save() error {
	if err := s.backend.Write(s.tasks); err != nil {
		s.log(zapcore.ErrorLevel, "save", outcomeFailed, zap.Error(err))
		return err
	}
	s.dirty = false
	s.log(zapcore.InfoLevel, "save", outcomeOK, zap.Int("count", len(s.tasks)))
	return nil
}

// Add appends a new incomplete task. The description is trimmed and must not
// be empty; unrecognized priorities become medium.
func (s *Store) Add(description string, dueDate *string, priority string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		s.log(zapcore.WarnLevel, "add", outcomeRejected)
		return todoerrors.ValidationError{Field: "description", Reason: "empty description"}
	}

	t := task.Task{
		Description: description,
		DueDate:     dueDate,
		Priority:    task.NormalizePriority(priority),
	}.Clone()
	s.tasks = append(s.tasks, &t)
	s.dirty = true

	s.log(zapcore.InfoLevel, "add", outcomeOK,
		zap.String("description", t.Description),
		zap.String("due_date", t.Due()),
		zap.String("priority", string(t.Priority)),
	)
	return nil
}

// List returns the tasks in display order paired with their 1-based display
// index. The sequence recomputes the order each time it is ranged over. The
// boolean is a snapshot taken when List is called: false when there were no
// tasks at that moment, even if tasks are added before the sequence is
// ranged over.
func (s *Store) List() (iter.Seq2[int, task.Task], bool) {
	seq := func(yield func(int, task.Task) bool) {
		for i, t := range s.displayOrder() {
			if !yield(i+1, t.Clone()) {
				return
			}
		}
	}
	return seq, len(s.tasks) > 0
}

// Entries collects List into a slice, nil when there are no tasks.
func (s *Store) Entries() []task.Entry {
	seq, ok := s.List()
	if !ok {
		return nil
	}
	entries := make([]task.Entry, 0, len(s.tasks))
	for i, t := range seq {
		entries = append(entries, task.Entry{Index: i, Task: t})
	}
	return entries
}

// MarkDone completes the task at the given display index. Completed tasks sort
// after incomplete ones of the same priority, so indexes from an earlier List
// may not be valid afterwards.
func (s *Store) MarkDone(index int) error {
	pos, err := s.resolve(index)
	if err != nil {
		s.log(zapcore.WarnLevel, "mark_done", outcomeRejected, zap.Int("index", index))
		return err
	}

	t := s.tasks[pos]
	t.Done = true
	s.dirty = true
	s.log(zapcore.InfoLevel, "mark_done", outcomeOK, zap.Int("index", index), zap.String("description", t.Description))
	return nil
}

// Delete removes the task at the given display index and returns it.
func (s *Store) Delete(index int) (task.Task, error) {
	pos, err := s.resolve(index)
	if err != nil {
		s.log(zapcore.WarnLevel, "delete", outcomeRejected, zap.Int("index", index))
		return task.Task{}, err
	}

	removed := *s.tasks[pos]
	s.tasks = slices.Delete(s.tasks, pos, pos+1)
	s.dirty = true
	s.log(zapcore.InfoLevel, "delete", outcomeOK, zap.Int("index", index), zap.String("description", removed.Description))
	return removed, nil
}

// Export writes a tabular snapshot in storage order to destination. An empty
// format is inferred from the destination's extension.
func (s *Store) Export(destination string, format export.Format) error {
	if format == "" {
		format = export.FormatForPath(destination)
	}
	w, err := export.New(format)
	if err != nil {
		s.log(zapcore.WarnLevel, "export", outcomeRejected, zap.String("format", string(format)))
		return err
	}

	if err = export.ToFile(destination, w, s.Tasks()); err != nil {
		s.log(zapcore.ErrorLevel, "export", outcomeFailed, zap.String("path", destination), zap.Error(err))
		return todoerrors.IOError{Op: "export", Path: destination, Err: err}
	}
	s.log(zapcore.InfoLevel, "export", outcomeOK,
		zap.String("path", destination),
		zap.String("format", string(format)),
		zap.Int("count", len(s.tasks)),
	)
	return nil
}

// Tasks returns copies of all tasks in storage order.
func (s *Store) Tasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Dirty reports whether there are changes not yet saved.
func (s *Store) Dirty() bool {
	return s.dirty
}

func (s *Store) displayOrder() []*task.Task {
	sorted := slices.Clone(s.tasks)
	slices.SortStableFunc(sorted, task.Compare)
	return sorted
}

// resolve maps a 1-based display index to a position in s.tasks.
func (s *Store) resolve(index int) (int, error) {
	order := s.displayOrder()
	if index < 1 || index > len(order) {
		return -1, todoerrors.OutOfRangeError{Index: index, Count: len(order)}
	}
	return slices.Index(s.tasks, order[index-1]), nil
}

func (s *Store) log(lvl zapcore.Level, op, outcome string, fields ...zap.Field) {
	if ce := s.logger.Check(lvl, op); ce != nil {
		ce.Write(append([]zap.Field{zap.String("outcome", outcome)}, fields...)...)
	}
}
