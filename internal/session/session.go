// Package session runs the interactive menu on top of a task store.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	todoerrors "github.com/abatilo/todo/internal/errors"
	"github.com/abatilo/todo/internal/output"
	"github.com/abatilo/todo/internal/store"
)

// maxLineSize bounds a single line of menu input.
const maxLineSize = 1 << 20

const menuText = `
To-Do List Menu:
1. List tasks (sorted by priority)
2. Add task
3. Mark task as done
4. Delete task
5. Export tasks
6. Save & Exit
`

// ErrInterrupted is returned by Run when the context is cancelled.
var ErrInterrupted = errors.New("session interrupted")

// Config wires a Session to its input, output and event log.
type Config struct {
	In         io.Reader
	Out        io.Writer
	Formatter  output.Formatter
	Logger     *zap.Logger
	ExportFile string
}

// Session is a single interactive menu loop. Every store call happens on the
// goroutine running Run.
type Session struct {
	store      *store.Store
	in         io.Reader
	out        io.Writer
	formatter  output.Formatter
	logger     *zap.Logger
	exportFile string
	lines      <-chan string
	// readErr is set by the reader goroutine before lines is closed.
	readErr error
}

// New creates a Session. Missing formatter and logger default to the human
// formatter and a no-op logger.
func New(st *store.Store, cfg Config) *Session {
	s := &Session{
		store:      st,
		in:         cfg.In,
		out:        cfg.Out,
		formatter:  cfg.Formatter,
		logger:     cfg.Logger,
		exportFile: cfg.ExportFile,
	}
	if s.formatter == nil {
		s.formatter = output.NewHumanFormatter()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Run shows the menu until the user saves and exits, input ends, or ctx is
// cancelled. Ending input or cancellation triggers one best-effort save.
func (s *Session) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	s.lines = s.readLines(done)

	for {
		s.print(menuText)
		choice, err := s.prompt(ctx, "Choose an option (1-6): ")
		if err != nil {
			return s.shutdown(err)
		}

		switch choice {
		case "1":
			s.list()
		case "2":
			err = s.add(ctx)
		case "3":
			err = s.markDone(ctx)
		case "4":
			err = s.delete(ctx)
		case "5":
			err = s.export(ctx)
		case "6":
			if s.save() {
				s.logger.Info("exit", zap.String("outcome", "ok"))
				s.print(s.formatter.FormatMessage("Tasks saved. Goodbye!"))
				return nil
			}
		default:
			s.logger.Warn("menu", zap.String("outcome", "rejected"), zap.String("choice", choice))
			s.print(s.formatter.FormatMessage("Invalid choice. Please select 1-6."))
		}
		if err != nil {
			return s.shutdown(err)
		}
	}
}

func (s *Session) list() {
	s.print(s.formatter.FormatTaskList(s.store.Entries()))
}

func (s *Session) add(ctx context.Context) error {
	description, err := s.prompt(ctx, "Enter new task: ")
	if err != nil {
		return err
	}
	if description == "" {
		s.report(s.store.Add(description, nil, ""))
		return nil
	}

	due, err := s.prompt(ctx, "Enter due date (e.g. 2025-07-01) [optional]: ")
	if err != nil {
		return err
	}
	var dueDate *string
	if due != "" {
		dueDate = &due
	}

	priority, err := s.prompt(ctx, "Enter priority (high, medium, low) [default: medium]: ")
	if err != nil {
		return err
	}

	if addErr := s.store.Add(description, dueDate, priority); addErr != nil {
		s.report(addErr)
		return nil
	}
	s.print(s.formatter.FormatMessage("Task added."))
	return nil
}

func (s *Session) markDone(ctx context.Context) error {
	index, ok, err := s.promptIndex(ctx, "Enter task number to mark done: ")
	if err != nil || !ok {
		return err
	}
	if markErr := s.store.MarkDone(index); markErr != nil {
		s.report(markErr)
		return nil
	}
	s.print(s.formatter.FormatMessage(fmt.Sprintf("Task %d marked as done.", index)))
	return nil
}

func (s *Session) delete(ctx context.Context) error {
	index, ok, err := s.promptIndex(ctx, "Enter task number to delete: ")
	if err != nil || !ok {
		return err
	}
	removed, delErr := s.store.Delete(index)
	if delErr != nil {
		s.report(delErr)
		return nil
	}
	s.print(s.formatter.FormatMessage(fmt.Sprintf("Deleted task: %s", removed.Description)))
	return nil
}

func (s *Session) export(ctx context.Context) error {
	dest, err := s.prompt(ctx, fmt.Sprintf("Export file [%s]: ", s.exportFile))
	if err != nil {
		return err
	}
	if dest == "" {
		dest = s.exportFile
	}
	if expErr := s.store.Export(dest, ""); expErr != nil {
		s.report(expErr)
		return nil
	}
	s.print(s.formatter.FormatMessage(fmt.Sprintf("Exported %d task(s) to %s", s.store.Len(), dest)))
	return nil
}

// promptIndex lists the tasks and reads a display index. ok is false when
// there is nothing to choose from or the input is not a number.
func (s *Session) promptIndex(ctx context.Context, label string) (int, bool, error) {
	s.list()
	if s.store.Len() == 0 {
		return 0, false, nil
	}

	raw, err := s.prompt(ctx, label)
	if err != nil {
		return 0, false, err
	}
	index, convErr := strconv.Atoi(raw)
	if convErr != nil {
		s.logger.Warn("index", zap.String("outcome", "rejected"), zap.String("input", raw))
		s.print(s.formatter.FormatMessage("Invalid input, please enter a number."))
		return 0, false, nil
	}
	return index, true, nil
}

// shutdown handles end of input, unreadable input and cancellation with a
// best-effort save.
func (s *Session) shutdown(cause error) error {
	var readErr todoerrors.IOError
	failed := errors.As(cause, &readErr)
	interrupted := !failed && !errors.Is(cause, io.EOF)
	s.logger.Info("shutdown", zap.Bool("interrupted", interrupted), zap.Bool("dirty", s.store.Dirty()))
	switch {
	case failed:
		s.logger.Error("input", zap.String("outcome", "failed"), zap.Error(cause))
		s.report(cause)
	case interrupted:
		s.print("\n")
	}

	saveErr := s.store.Save()
	if saveErr != nil {
		s.report(saveErr)
	} else {
		s.print(s.formatter.FormatMessage("Tasks saved."))
	}

	switch {
	case failed:
		return errors.Join(cause, saveErr)
	case interrupted && saveErr != nil:
		return errors.Join(ErrInterrupted, saveErr)
	case interrupted:
		return ErrInterrupted
	default:
		return saveErr
	}
}

// save reports a failed save and returns whether it succeeded.
func (s *Session) save() bool {
	if err := s.store.Save(); err != nil {
		s.report(err)
		return false
	}
	return true
}

func (s *Session) prompt(ctx context.Context, label string) (string, error) {
	s.print(label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			if s.readErr != nil {
				return "", s.readErr
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (s *Session) report(err error) {
	if err != nil {
		s.print(s.formatter.FormatError(err))
	}
}

func (s *Session) print(text string) {
	_, _ = io.WriteString(s.out, text)
}

// readLines feeds input lines to the session so a blocked read never delays
// cancellation.
func (s *Session) readLines(done <-chan struct{}) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(s.in)
		sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-done:
				return
			}
		}
		if err := sc.Err(); err != nil {
			s.readErr = todoerrors.IOError{Op: "read", Path: "input", Err: err}
		}
	}()
	return ch
}
