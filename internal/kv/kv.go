// Package kv provides small string key-value stores used as the persistence
// medium for the task list.
package kv

import (
	"errors"
	"fmt"
	"slices"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/internal/validation"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// ErrClosed is returned when a closed store is used.
var ErrClosed = errors.New("store is closed")

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	// BackendFile stores all keys in one JSON file.
	BackendFile Backend = "file"

	// BackendSQLite stores keys in a SQLite table.
	BackendSQLite Backend = "sqlite"

	// BackendMemory keeps keys in memory only.
	BackendMemory Backend = "memory"
)

// ValidBackends returns all valid backend names.
func ValidBackends() []Backend {
	return []Backend{BackendFile, BackendSQLite, BackendMemory}
}

// ParseBackend normalizes a backend name. The empty string means BackendFile.
func ParseBackend(value string) (Backend, error) {
	normalized := Backend(internalstrings.NormalizeLowerTrimSpace(value))
	if normalized == "" {
		return BackendFile, nil
	}
	if !slices.Contains(ValidBackends(), normalized) {
		return "", fmt.Errorf("%w %q: must be one of %s", ErrUnknownBackend, value, validation.FormatValidValues(ValidBackends()))
	}
	return normalized, nil
}

// DefaultFilename returns the file name a backend uses inside the data dir.
func DefaultFilename(backend Backend) string {
	switch backend {
	case BackendSQLite:
		return "tasks.db"
	case BackendFile:
		return "tasks.json"
	default:
		return ""
	}
}

// Open opens the named backend at path. path is ignored for BackendMemory.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendFile:
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
