package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"

	todoerrors "github.com/abatilo/todo/internal/errors"
	"github.com/abatilo/todo/internal/task"
)

const lockSuffix = ".lock"

// FileBackend reads and rewrites the whole task collection in a single file.
type FileBackend struct {
	path   string
	format Format
	lock   *flock.Flock
}

// NewFileBackend creates a FileBackend. An empty format is inferred from the
// file extension.
func NewFileBackend(path string, format Format) *FileBackend {
	if format == "" {
		format = FormatForPath(path)
	}
	return &FileBackend{
		path:   path,
		format: format,
		lock:   flock.New(path + lockSuffix),
	}
}

// Path returns the tasks file path.
func (b *FileBackend) Path() string {
	return b.path
}

// Format returns the encoding used for the tasks file.
func (b *FileBackend) Format() Format {
	return b.format
}

// Read loads every task in storage order. A missing file returns
// NotFoundError and an unparseable one CorruptDataError; anything else is an
// IOError. When the lock file cannot be created, as in a read-only directory,
// the file is read without the shared lock.
func (b *FileBackend) Read() ([]*task.Task, error) {
	if _, err := os.Stat(b.path); errors.Is(err, fs.ErrNotExist) {
		return nil, todoerrors.NotFoundError{Path: b.path}
	}

	switch err := b.lock.RLock(); {
	case err == nil:
		defer func() { _ = b.lock.Unlock() }()
	case !lockUnavailable(err):
		return nil, todoerrors.IOError{Op: "lock", Path: b.lock.Path(), Err: err}
	}

	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, todoerrors.NotFoundError{Path: b.path}
	}
	if err != nil {
		return nil, todoerrors.IOError{Op: "load", Path: b.path, Err: err}
	}

	tasks, err := Decode(b.format, data)
	if err != nil {
		return nil, todoerrors.CorruptDataError{Path: b.path, Err: err}
	}
	return tasks, nil
}

// Write replaces the file with tasks. The new content is written to a
// temporary file and renamed into place.
func (b *FileBackend) Write(tasks []*task.Task) error {
	content, err := Encode(b.format, tasks)
	if err != nil {
		return todoerrors.IOError{Op: "save", Path: b.path, Err: err}
	}

	dir := filepath.Dir(b.path)
	//nolint:gosec // G301: 0755 is appropriate for the user's data directory
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return todoerrors.IOError{Op: "save", Path: b.path, Err: err}
	}

	if err = b.lock.Lock(); err != nil {
		return todoerrors.IOError{Op: "lock", Path: b.lock.Path(), Err: err}
	}
	defer func() { _ = b.lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".tmp-*")
	if err != nil {
		return todoerrors.IOError{Op: "save", Path: b.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return todoerrors.IOError{Op: "save", Path: b.path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return todoerrors.IOError{Op: "save", Path: b.path, Err: err}
	}
	//nolint:gosec // G302: tasks file is user-readable like the rest of the data dir
	if err = os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return todoerrors.IOError{Op: "save", Path: b.path, Err: err}
	}
	if err = os.Rename(tmpName, b.path); err != nil {
		_ = os.Remove(tmpName)
		return todoerrors.IOError{Op: "save", Path: b.path, Err: err}
	}
	return nil
}

// lockUnavailable reports whether err means the lock file could not be
// opened at all rather than that locking it failed.
func lockUnavailable(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, syscall.EROFS)
}
