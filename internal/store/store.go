// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package store persists lecture lists. Every backend replaces the stored list
// wholesale on Save and reports an empty list when nothing was stored yet.
package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ManuGH/lectrack/internal/lecture"
)

// Supported backends.
const (
	BackendJSON   = "json"
	BackendSqlite = "sqlite"
	BackendMemory = "memory"
)

var (
	// ErrMalformedRecord classifies persisted records with missing or invalid fields.
	ErrMalformedRecord = errors.New("malformed lecture record")
	// ErrUnknownBackend is returned by New for unsupported backend names.
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Store is a lecture.Store that holds resources until closed.
type Store interface {
	lecture.Store
	Close() error
}

// DefaultFileName returns the file name used for backend inside a data directory.
func DefaultFileName(backend string) string {
	switch backend {
	case BackendSqlite:
		return "lectures.sqlite"
	default:
		return "lectures.json"
	}
}

// DefaultPath returns the store location for backend inside dataDir.
func DefaultPath(backend, dataDir string) string {
	if backend == BackendMemory {
		return ""
	}
	return filepath.Join(dataDir, DefaultFileName(backend))
}

// New creates a store for the given backend. An empty backend selects json.
func New(backend, path string) (Store, error) {
	if backend == "" {
		backend = BackendJSON
	}

	switch backend {
	case BackendJSON:
		if path == "" {
			return nil, fmt.Errorf("json store: path is required")
		}
		return NewJSONStore(path), nil
	case BackendSqlite:
		if path == "" {
			return nil, fmt.Errorf("sqlite store: path is required")
		}
		return NewSqliteStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: json, sqlite, memory)", ErrUnknownBackend, backend)
	}
}

// IsFileBacked reports whether backend keeps its data in a single file that can be watched.
func IsFileBacked(backend string) bool {
	return backend == "" || backend == BackendJSON
}
