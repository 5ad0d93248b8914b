// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ManuGH/lectrack/internal/store"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultBackend       = store.BackendJSON
	DefaultProgressWidth = 20
	DefaultLogLevel      = "warn"
)

// Loader handles configuration loading with precedence.
type Loader struct {
	configPath string
	version    string
	overrides  Overrides
}

// NewLoader creates a new configuration loader. An empty configPath loads
// <dataDir>/lectrack.yaml when present.
func NewLoader(configPath, version string) *Loader {
	return &Loader{configPath: configPath, version: version}
}

// WithOverrides applies command-line flags after file and environment.
func (l *Loader) WithOverrides(o Overrides) *Loader {
	l.overrides = o
	return l
}

// ConfigPath returns the file the last Load used, or "" when none was read.
func (l *Loader) ConfigPath() string {
	return l.configPath
}

// Load enforces the order: defaults -> file (strict) -> env -> overrides -> derive -> validate.
func (l *Loader) Load() (AppConfig, error) {
	cfg := defaults()
	cfg.Version = l.version

	path := l.configPath
	if path == "" {
		dir := l.overrides.DataDir
		if dir == "" {
			dir = ParseString(EnvDataDir, cfg.DataDir)
		}
		path = AutoConfigPath(dir)
	}
	if path != "" {
		fileCfg, err := l.loadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config file %s: %w", path, err)
		}
		mergeFile(&cfg, fileCfg)
		l.configPath = path
	}

	mergeEnv(&cfg)
	mergeOverrides(&cfg, l.overrides)
	derive(&cfg)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func defaults() AppConfig {
	return AppConfig{
		DataDir: ".",
		Store:   StoreConfig{Backend: DefaultBackend},
		UI: UIConfig{
			ClearScreen:   true,
			ProgressWidth: DefaultProgressWidth,
			WatchStore:    true,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the user via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseFile(data)
}

// ParseFile decodes a single strict YAML document. Unknown keys wrap ErrUnknownConfigField.
func ParseFile(data []byte) (*FileConfig, error) {
	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("%w: %w", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return &fileCfg, nil
}

func mergeFile(cfg *AppConfig, src *FileConfig) {
	if src == nil {
		return
	}
	if src.DataDir != "" {
		cfg.DataDir = src.DataDir
	}
	if s := src.Store; s != nil {
		if s.Backend != "" {
			cfg.Store.Backend = s.Backend
		}
		if s.Path != "" {
			cfg.Store.Path = s.Path
		}
	}
	if n := src.Notes; n != nil {
		if n.Path != "" {
			cfg.Notes.Path = n.Path
		}
		if n.Editor != "" {
			cfg.Notes.Editor = n.Editor
		}
	}
	if u := src.UI; u != nil {
		if u.ClearScreen != nil {
			cfg.UI.ClearScreen = *u.ClearScreen
		}
		if u.ProgressWidth != nil {
			cfg.UI.ProgressWidth = *u.ProgressWidth
		}
		if u.WatchStore != nil {
			cfg.UI.WatchStore = *u.WatchStore
		}
	}
	if lg := src.Log; lg != nil {
		if lg.Level != "" {
			cfg.Log.Level = lg.Level
		}
		if lg.File != "" {
			cfg.Log.File = lg.File
		}
	}
}

func mergeEnv(cfg *AppConfig) {
	cfg.DataDir = ParseString(EnvDataDir, cfg.DataDir)
	cfg.Store.Backend = ParseString(EnvBackend, cfg.Store.Backend)
	cfg.Store.Path = ParseString(EnvStorePath, cfg.Store.Path)
	cfg.Notes.Path = ParseString(EnvNotesPath, cfg.Notes.Path)
	cfg.Notes.Editor = ParseString(EnvEditor, cfg.Notes.Editor)
	cfg.UI.ClearScreen = ParseBool(EnvClearScreen, cfg.UI.ClearScreen)
	cfg.UI.ProgressWidth = ParseInt(EnvProgressWidth, cfg.UI.ProgressWidth)
	cfg.UI.WatchStore = ParseBool(EnvWatchStore, cfg.UI.WatchStore)
	cfg.Log.Level = ParseString(EnvLogLevel, cfg.Log.Level)
	cfg.Log.File = ParseString(EnvLogFile, cfg.Log.File)
}

func mergeOverrides(cfg *AppConfig, o Overrides) {
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	if o.Backend != "" {
		cfg.Store.Backend = o.Backend
	}
}

// derive fills paths left empty from their defaults.
func derive(cfg *AppConfig) {
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.DataDir = ExpandHome(cfg.DataDir)
	cfg.Store.Path = ExpandHome(cfg.Store.Path)
	cfg.Notes.Path = ExpandHome(cfg.Notes.Path)
	cfg.Log.File = ExpandHome(cfg.Log.File)
	if cfg.Store.Path == "" {
		cfg.Store.Path = store.DefaultPath(cfg.Store.Backend, cfg.DataDir)
	}
	if cfg.Notes.Path == "" {
		cfg.Notes.Path = DefaultNotesPath()
	}
}
