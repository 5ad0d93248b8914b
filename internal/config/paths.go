// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// FileName is the config file looked up in the data directory when no --config is given.
const FileName = "lectrack.yaml"

// DefaultNotesPath returns the platform notes file location.
func DefaultNotesPath() string {
	if runtime.GOOS == "windows" {
		return `C:\Program Files\Planner\video.txt`
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "plannerconf", "videonote.txt")
}

// AutoConfigPath returns <dataDir>/lectrack.yaml when it exists, otherwise "".
func AutoConfigPath(dataDir string) string {
	if dataDir == "" {
		dataDir = "."
	}
	p := filepath.Join(dataDir, FileName)
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p
	}
	return ""
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
