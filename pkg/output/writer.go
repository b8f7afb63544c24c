// Package output persists generated launch documents. Writes go through a
// temp file in the destination directory followed by a rename, so a
// half-written launch file is never observed by the editor.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	errEmptyOutputPath = errors.New("output path is required")
	errWriteFailed     = errors.New("launch file could not be written")
)

// ErrWriteFailed exposes the write failure sentinel.
func ErrWriteFailed() error { return errWriteFailed }

// ErrEmptyOutputPath exposes the empty-path sentinel.
func ErrEmptyOutputPath() error { return errEmptyOutputPath }

// Writer persists launch documents to the filesystem.
type Writer struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewWriter constructs a Writer with default permissions.
func NewWriter() *Writer {
	return &Writer{
		dirPerm:  0o755,
		filePerm: 0o644,
	}
}

// Write serialises doc with two-space indentation and a trailing newline
// and writes it to path, creating parent directories as needed.
func (w *Writer) Write(doc json.Marshaler, path string) error {
	if path == "" {
		return errEmptyOutputPath
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("serialize launch document: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, w.dirPerm); err != nil {
		return fmt.Errorf("%w: %w", errWriteFailed, err)
	}

	tmp, err := os.CreateTemp(dir, "launch-*.json")
	if err != nil {
		return fmt.Errorf("%w: %w", errWriteFailed, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(w.filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", errWriteFailed, err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", errWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", errWriteFailed, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", errWriteFailed, err)
	}
	return nil
}
