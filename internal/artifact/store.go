// Package artifact manages the two persisted release artifacts: the
// version declaration file and the changelog document. Both are plain
// files on durable storage; the release orchestrator is their sole
// writer and snapshots them before mutation for rollback.
package artifact

import (
	"fmt"
	"os"
)

// PersistenceError represents a failed read or write of an artifact.
type PersistenceError struct {
	Path string
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// File is a whole-file artifact store.
type File struct {
	path string
}

// NewFile returns a store for the artifact at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the artifact's file path.
func (f *File) Path() string {
	return f.path
}

// Read returns the artifact's current content.
func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, &PersistenceError{Path: f.path, Op: "reading", Err: err}
	}
	return data, nil
}

// Write replaces the artifact's content.
func (f *File) Write(data []byte) error {
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return &PersistenceError{Path: f.path, Op: "writing", Err: err}
	}
	return nil
}
