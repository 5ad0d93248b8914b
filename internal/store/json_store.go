// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ManuGH/lectrack/internal/lecture"
	xglog "github.com/ManuGH/lectrack/internal/log"
	"github.com/google/renameio/v2"
)

// JSONStore keeps the lecture list in a single JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store for the JSON file at path. The file is created on first save.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: filepath.Clean(path)}
}

// Path returns the backing file.
func (s *JSONStore) Path() string { return s.path }

// Load reads the file. A missing file is an empty list.
func (s *JSONStore) Load(ctx context.Context) ([]lecture.Lecture, error) {
	// #nosec G304 -- store path is provided by the operator via CLI/config
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		xglog.FromContext(ctx).Debug().
			Str(xglog.FieldEvent, "store.empty").
			Str(xglog.FieldPath, s.path).
			Msg("no lecture file yet, starting empty")
		return []lecture.Lecture{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	items, err := decodeLectures(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return items, nil
}

// Save replaces the file atomically: temp file, fsync, rename.
func (s *JSONStore) Save(ctx context.Context, items []lecture.Lecture) error {
	logger := xglog.FromContext(ctx)

	data, err := encodeLectures(items)
	if err != nil {
		return fmt.Errorf("encode lectures: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	pendingFile, err := renameio.NewPendingFile(s.path)
	if err != nil {
		return fmt.Errorf("create pending lecture file: %w", err)
	}
	defer func() {
		// No-op once the file has been committed.
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending lecture file")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write lecture data: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace lecture file: %w", err)
	}

	logger.Debug().
		Str(xglog.FieldEvent, "store.saved").
		Str(xglog.FieldBackend, BackendJSON).
		Str(xglog.FieldPath, s.path).
		Int(xglog.FieldCount, len(items)).
		Msg("lectures saved")
	return nil
}

// Close is a no-op; the file is opened per call.
func (s *JSONStore) Close() error { return nil }
