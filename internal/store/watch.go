// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ManuGH/lectrack/internal/lecture"
	xglog "github.com/ManuGH/lectrack/internal/log"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// fileState identifies one version of the store file.
type fileState struct {
	exists  bool
	size    int64
	modTime time.Time
}

func statFile(path string) fileState {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}
	}
	return fileState{exists: true, size: info.Size(), modTime: info.ModTime()}
}

// Watcher notices modifications of a store file made by other processes or by
// hand. It watches the parent directory so atomic renames are seen too.
// Changed never blocks; it is meant to be polled between shell commands.
type Watcher struct {
	path    string
	name    string
	watcher *fsnotify.Watcher
	synced  fileState
	logger  zerolog.Logger
}

// NewWatcher starts watching the directory of path.
func NewWatcher(path string) (*Watcher, error) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", dir, err)
	}

	w := &Watcher{
		path:    path,
		name:    filepath.Base(path),
		watcher: fw,
		logger:  xglog.WithComponent("store"),
	}
	w.synced = statFile(path)
	return w, nil
}

// MarkSynced records the current file as the version this process knows.
func (w *Watcher) MarkSynced() {
	w.drain()
	w.synced = statFile(w.path)
}

// Changed reports whether the file differs from the last synced version.
func (w *Watcher) Changed() bool {
	if !w.drain() {
		return false
	}
	cur := statFile(w.path)
	if cur == w.synced {
		return false
	}
	w.logger.Info().
		Str(xglog.FieldEvent, "store.changed_externally").
		Str(xglog.FieldPath, w.path).
		Msg("lecture file changed on disk")
	return true
}

// drain consumes pending events and reports whether any concerned the store file.
func (w *Watcher) drain() bool {
	touched := false
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return touched
			}
			if filepath.Base(event.Name) == w.name &&
				(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				touched = true
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return touched
			}
			w.logger.Warn().Err(err).Msg("fsnotify watcher error")
		default:
			return touched
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// watchedStore keeps a Watcher in sync with the loads and saves of its store.
type watchedStore struct {
	Store
	watcher *Watcher
}

// Watch wraps inner so that every successful Load and Save marks w as synced.
// Closing the result closes both.
func Watch(inner Store, w *Watcher) Store {
	return &watchedStore{Store: inner, watcher: w}
}

func (s *watchedStore) Load(ctx context.Context) ([]lecture.Lecture, error) {
	items, err := s.Store.Load(ctx)
	if err == nil {
		s.watcher.MarkSynced()
	}
	return items, err
}

func (s *watchedStore) Save(ctx context.Context, items []lecture.Lecture) error {
	err := s.Store.Save(ctx, items)
	if err == nil {
		s.watcher.MarkSynced()
	}
	return err
}

func (s *watchedStore) Close() error {
	return errors.Join(s.watcher.Close(), s.Store.Close())
}
