// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

// AppConfig is the effective configuration consumed by the application.
type AppConfig struct {
	DataDir string
	Store   StoreConfig
	Notes   NotesConfig
	UI      UIConfig
	Log     LogConfig

	Version string // set from the binary, not configurable
}

// StoreConfig selects where lectures are persisted.
type StoreConfig struct {
	Backend string // json|sqlite|memory
	Path    string // derived from DataDir and Backend when empty
}

// NotesConfig controls the notes editor launcher.
type NotesConfig struct {
	Path   string // platform default when empty
	Editor string // $VISUAL/$EDITOR/platform default when empty
}

// UIConfig controls the interactive shell.
type UIConfig struct {
	ClearScreen   bool
	ProgressWidth int
	WatchStore    bool // reload when the store file changes on disk
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string
	File  string // empty logs to stderr
}

// FileConfig is the YAML representation. Pointers distinguish "unset" from zero values.
type FileConfig struct {
	DataDir string           `yaml:"dataDir,omitempty" json:"dataDir,omitempty"`
	Store   *FileStoreConfig `yaml:"store,omitempty" json:"store,omitempty"`
	Notes   *FileNotesConfig `yaml:"notes,omitempty" json:"notes,omitempty"`
	UI      *FileUIConfig    `yaml:"ui,omitempty" json:"ui,omitempty"`
	Log     *FileLogConfig   `yaml:"log,omitempty" json:"log,omitempty"`
}

type FileStoreConfig struct {
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`
}

type FileNotesConfig struct {
	Path   string `yaml:"path,omitempty" json:"path,omitempty"`
	Editor string `yaml:"editor,omitempty" json:"editor,omitempty"`
}

type FileUIConfig struct {
	ClearScreen   *bool `yaml:"clearScreen,omitempty" json:"clearScreen,omitempty"`
	ProgressWidth *int  `yaml:"progressWidth,omitempty" json:"progressWidth,omitempty"`
	WatchStore    *bool `yaml:"watchStore,omitempty" json:"watchStore,omitempty"`
}

type FileLogConfig struct {
	Level string `yaml:"level,omitempty" json:"level,omitempty"`
	File  string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Overrides carries command-line flags; empty fields leave the loaded value alone.
type Overrides struct {
	DataDir string
	Backend string
}

// ToFileConfig renders the effective configuration in file form, e.g. for `config dump`.
func (c AppConfig) ToFileConfig() FileConfig {
	clearScreen, width, watch := c.UI.ClearScreen, c.UI.ProgressWidth, c.UI.WatchStore
	return FileConfig{
		DataDir: c.DataDir,
		Store:   &FileStoreConfig{Backend: c.Store.Backend, Path: c.Store.Path},
		Notes:   &FileNotesConfig{Path: c.Notes.Path, Editor: c.Notes.Editor},
		UI:      &FileUIConfig{ClearScreen: &clearScreen, ProgressWidth: &width, WatchStore: &watch},
		Log:     &FileLogConfig{Level: c.Log.Level, File: c.Log.File},
	}
}
