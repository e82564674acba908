package todo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrIO matches every error returned by Store through errors.Is.
var ErrIO = errors.New("task file i/o")

// IOError records a failed task file operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is makes every IOError match ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithInPlaceWrite makes Save truncate and rewrite the open file instead of
// renaming a temporary file over it. A crash mid-write can leave the file
// partially written.
func WithInPlaceWrite() StoreOption {
	return func(s *Store) {
		s.inPlace = true
	}
}

// Store binds a task list to a file that stays open for the session.
// It is not safe for concurrent use.
type Store struct {
	path    string
	file    *os.File
	inPlace bool
}

// Open opens the task file at path, creating it and its directory when absent.
func Open(path string, opts ...StoreOption) (*Store, error) {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &IOError{Op: "create dir", Path: dir, Err: err}
		}
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	s.file = file
	return s, nil
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every task from the file.
func (s *Store) Load() ([]Task, error) {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, s.fail("seek", err)
	}
	data, err := io.ReadAll(s.file)
	if err != nil {
		return nil, s.fail("read", err)
	}
	return ParseAll(string(data)), nil
}

// Save replaces the file contents with tasks, one per line.
func (s *Store) Save(tasks []Task) error {
	if s.file == nil {
		return s.fail("save", os.ErrClosed)
	}
	contents := Format(tasks)
	if s.inPlace {
		return s.rewrite(contents)
	}
	return s.replace(contents)
}

// Append adds one task to the end of the file.
func (s *Store) Append(task Task) error {
	tasks, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(append(tasks, task))
}

// Close closes the underlying file.
func (s *Store) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return s.fail("close", err)
	}
	return nil
}

// ParseAll parses file contents, skipping blank lines.
func ParseAll(contents string) []Task {
	lines := strings.Split(contents, "\n")
	tasks := make([]Task, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tasks = append(tasks, Parse(line))
	}
	return tasks
}

// Format serializes tasks joined by newlines.
func Format(tasks []Task) string {
	lines := make([]string, len(tasks))
	for i := range tasks {
		lines[i] = tasks[i].String()
	}
	return strings.Join(lines, "\n")
}

func (s *Store) rewrite(contents string) error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return s.fail("seek", err)
	}
	if err := s.file.Truncate(0); err != nil {
		return s.fail("truncate", err)
	}
	if _, err := s.file.WriteString(contents); err != nil {
		return s.fail("write", err)
	}
	if err := s.file.Sync(); err != nil {
		return s.fail("sync", err)
	}
	return nil
}

// replace writes contents to a temporary file next to the target, renames it
// over the target and reopens the handle on the new file.
func (s *Store) replace(contents string) error {
	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return s.fail("create temp", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if info, err := s.file.Stat(); err == nil {
		if err := tmp.Chmod(info.Mode().Perm()); err != nil {
			cleanup()
			return s.fail("chmod", err)
		}
	}
	if _, err := tmp.WriteString(contents); err != nil {
		cleanup()
		return s.fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return s.fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return s.fail("close temp", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return s.fail("rename", err)
	}

	file, err := os.OpenFile(s.path, os.O_RDWR, 0)
	if err != nil {
		return s.fail("reopen", err)
	}
	old := s.file
	s.file = file
	old.Close()
	return nil
}

func (s *Store) fail(op string, err error) error {
	return &IOError{Op: op, Path: s.path, Err: err}
}
