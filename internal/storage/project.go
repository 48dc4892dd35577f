package storage

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir          = ".todo"
	defaultDataFile = "tasks.json"
)

// DefaultDir returns ~/.todo, where the tasks file and log live by default.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDir), nil
}

// DefaultPath returns the default tasks file, ~/.todo/tasks.json.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultDataFile), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
// "~/notes/tasks.json" -> "/home/me/notes/tasks.json"
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
