// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"

	"github.com/ManuGH/lectrack/internal/store"
	"github.com/ManuGH/lectrack/internal/validate"
)

// Validate checks the effective configuration. Failures wrap ErrInvalidConfig.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.Directory("dataDir", cfg.DataDir, false)
	v.OneOf("store.backend", cfg.Store.Backend, []string{store.BackendJSON, store.BackendSqlite, store.BackendMemory})
	if cfg.Store.Backend != store.BackendMemory {
		v.NotEmpty("store.path", cfg.Store.Path)
		v.FilePath("store.path", cfg.Store.Path)
	}
	v.NotEmpty("notes.path", cfg.Notes.Path)
	v.Range("ui.progressWidth", cfg.UI.ProgressWidth, 1, 200)
	v.LogLevel("log.level", cfg.Log.Level)
	if cfg.Log.File != "" {
		v.FilePath("log.file", cfg.Log.File)
	}

	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
