// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ManuGH/lectrack/internal/config"
	"github.com/ManuGH/lectrack/internal/lecture"
	xglog "github.com/ManuGH/lectrack/internal/log"
	"github.com/ManuGH/lectrack/internal/notes"
	"github.com/ManuGH/lectrack/internal/shell"
	"github.com/ManuGH/lectrack/internal/store"
	"github.com/ManuGH/lectrack/internal/version"
)

// session is a loaded configuration with an open store and repository.
type session struct {
	cfg     config.AppConfig
	store   store.Store
	watcher *store.Watcher
	repo    *lecture.Repository
	closers []io.Closer
}

func (s *session) Close() error {
	var errs []error
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}

// loader builds a config loader for configPath (or --config) with the flag overrides applied.
func (a *app) loader(configPath string) *config.Loader {
	if configPath == "" {
		configPath = a.configPath
	}
	return config.NewLoader(configPath, version.Version).
		WithOverrides(config.Overrides{DataDir: a.dataDir, Backend: a.backend})
}

// loadConfig resolves the effective configuration from file, environment and flags.
func (a *app) loadConfig(configPath string) (config.AppConfig, error) {
	return a.loader(configPath).Load()
}

// open loads the configuration, configures logging and reads the lecture list.
// watch enables the store change watcher for file-backed stores.
func (a *app) open(ctx context.Context, watch bool) (*session, error) {
	cfg, err := a.loadConfig("")
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg}

	logOut := a.errOut
	if cfg.Log.File != "" {
		f, err := xglog.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.closers = append(s.closers, f)
		logOut = f
	}
	xglog.Configure(xglog.Config{Level: cfg.Log.Level, Output: logOut, Version: version.Version})

	st, err := store.New(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	if watch && cfg.UI.WatchStore && store.IsFileBacked(cfg.Store.Backend) {
		w, err := store.NewWatcher(cfg.Store.Path)
		if err != nil {
			logger := xglog.WithComponent("cli")
			logger.Warn().Err(err).
				Str(xglog.FieldPath, cfg.Store.Path).
				Msg("store watcher unavailable, external changes will not be noticed")
		} else {
			s.watcher = w
			st = store.Watch(st, w)
		}
	}
	s.store = st

	logger := xglog.WithComponent("cli")
	logger.Debug().
		Str(xglog.FieldEvent, "store.opened").
		Str(xglog.FieldBackend, cfg.Store.Backend).
		Str(xglog.FieldPath, cfg.Store.Path).
		Msg("store opened")

	s.repo = lecture.NewRepository(st)
	if err := s.repo.Load(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (a *app) runShell(ctx context.Context) error {
	ctx = xglog.ContextWithCommand(ctx, "shell")
	s, err := a.open(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	launcher := notes.NewLauncher(s.cfg.Notes.Path, s.cfg.Notes.Editor, notes.WithStdio(a.in, a.out, a.errOut))
	logger := xglog.WithComponentFromContext(ctx, "cli")
	logger.Debug().
		Str(xglog.FieldEvent, "notes.configured").
		Str("editor", launcher.Editor()).
		Str(xglog.FieldPath, launcher.Path()).
		Msg("notes launcher ready")

	opts := []shell.Option{
		shell.WithNotes(launcher),
		shell.WithClearScreen(s.cfg.UI.ClearScreen && a.interactive),
		shell.WithProgressWidth(s.cfg.UI.ProgressWidth),
	}
	if s.watcher != nil {
		opts = append(opts, shell.WithChangeNotifier(s.watcher))
	}
	return shell.New(s.repo, a.in, a.out, opts...).Run(ctx)
}
