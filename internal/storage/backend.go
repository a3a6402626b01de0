package storage

import (
	"errors"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"

	"pomodoro/internal/core/model"
)

// ErrUnavailable indicates the persistent store could not be read or written.
var ErrUnavailable = errors.New("persistence unavailable")

const sqliteFileName = "pomodoro.db"

// Backend is a durable key-value store holding serialized records.
type Backend interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Close() error
}

// Open creates the backend selected by config.
// preferences is only consulted for the preferences backend and may be nil otherwise.
func Open(config model.StorageConfig, preferences fyne.Preferences) (Backend, error) {
	switch config.Backend {
	case "", model.BackendFile:
		return NewFileBackend(config.DataDir)
	case model.BackendSQLite:
		return OpenSQLite(filepath.Join(config.DataDir, sqliteFileName))
	case model.BackendPreferences:
		if preferences == nil {
			return nil, fmt.Errorf("%w: preferences backend needs a running app", ErrUnavailable)
		}
		return NewPreferencesBackend(preferences), nil
	case model.BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrUnavailable, config.Backend)
	}
}
