package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// FileBackend keeps one JSON file per key inside a directory.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir if needed and returns a backend rooted there.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: data directory is empty", ErrUnavailable)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %w", ErrUnavailable, err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir returns the directory holding the record files.
func (backend *FileBackend) Dir() string {
	return backend.dir
}

func (backend *FileBackend) Get(key string) ([]byte, bool, error) {
	path, err := backend.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	return data, true, nil
}

// Put replaces the file for key atomically.
func (backend *FileBackend) Put(key string, value []byte) error {
	path, err := backend.path(key)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(value)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (backend *FileBackend) Close() error {
	return nil
}

func (backend *FileBackend) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid record key %q", key)
	}
	return filepath.Join(backend.dir, key+".json"), nil
}
