package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PersistenceError reports a failed read or write of a stored document.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// JSONFile stores a single JSON document at a fixed path.
type JSONFile[T any] struct {
	path     string
	defaults func() T
}

// NewJSONFile returns a document store. defaults builds the value used for a missing or unreadable file.
func NewJSONFile[T any](path string, defaults func() T) *JSONFile[T] {
	return &JSONFile[T]{path: path, defaults: defaults}
}

// Path returns the file location.
func (f *JSONFile[T]) Path() string {
	return f.path
}

// Load reads the document. A missing file yields defaults and no error;
// an unreadable or malformed file yields defaults and a *PersistenceError.
func (f *JSONFile[T]) Load() (T, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return f.defaults(), nil
		}
		return f.defaults(), &PersistenceError{Op: "read", Path: f.path, Err: err}
	}
	value := f.defaults()
	if err := json.Unmarshal(data, &value); err != nil {
		return f.defaults(), &PersistenceError{Op: "decode", Path: f.path, Err: err}
	}
	return value, nil
}

// Save writes the document through a temp file and rename.
func (f *JSONFile[T]) Save(value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "encode", Path: f.path, Err: err}
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Op: "create directory for", Path: f.path, Err: err}
	}
	tmpFile, err := os.CreateTemp(dir, filepath.Base(f.path)+"-*.tmp")
	if err != nil {
		return &PersistenceError{Op: "create temp file for", Path: f.path, Err: err}
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(append(data, '\n')); err != nil {
		return &PersistenceError{Op: "write", Path: f.path, Err: err}
	}
	if err := tmpFile.Close(); err != nil {
		return &PersistenceError{Op: "close", Path: f.path, Err: err}
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return &PersistenceError{Op: "write", Path: f.path, Err: err}
	}
	return nil
}
