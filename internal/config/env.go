// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"os"
	"strconv"

	"github.com/ManuGH/lectrack/internal/log"
	"github.com/rs/zerolog"
)

// Environment variables recognised by the loader.
const (
	EnvDataDir       = "LECTRACK_DATA"
	EnvBackend       = "LECTRACK_BACKEND"
	EnvStorePath     = "LECTRACK_STORE_PATH"
	EnvNotesPath     = "LECTRACK_NOTES_PATH"
	EnvEditor        = "LECTRACK_EDITOR"
	EnvClearScreen   = "LECTRACK_CLEAR_SCREEN"
	EnvProgressWidth = "LECTRACK_PROGRESS_WIDTH"
	EnvWatchStore    = "LECTRACK_WATCH_STORE"
	EnvLogLevel      = "LECTRACK_LOG_LEVEL"
	EnvLogFile       = "LECTRACK_LOG_FILE"
)

// ParseString reads a string from environment variable or returns default value.
// An empty variable counts as unset.
func ParseString(key, defaultValue string) string {
	return parseStringWithLogger(log.WithComponent("config"), key, defaultValue)
}

func parseStringWithLogger(logger zerolog.Logger, key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		if value == "" {
			logger.Debug().
				Str("key", key).
				Str("default", defaultValue).
				Str("source", "default").
				Msg("using default value (environment variable is empty)")
			return defaultValue
		}
		logger.Debug().
			Str("key", key).
			Str("value", value).
			Str("source", "environment").
			Msg("using environment variable")
		return value
	}
	return defaultValue
}

// ParseBool reads a boolean from environment variable or returns default value.
// Invalid values are logged and ignored.
func ParseBool(key string, defaultValue bool) bool {
	logger := log.WithComponent("config")
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Bool("default", defaultValue).
			Msg("invalid boolean in environment variable, using default")
		return defaultValue
	}
	logger.Debug().
		Str("key", key).
		Bool("value", b).
		Str("source", "environment").
		Msg("using environment variable")
	return b
}

// ParseInt reads an integer from environment variable or returns default value.
// Invalid values are logged and ignored.
func ParseInt(key string, defaultValue int) int {
	logger := log.WithComponent("config")
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Int("default", defaultValue).
			Msg("invalid integer in environment variable, using default")
		return defaultValue
	}
	logger.Debug().
		Str("key", key).
		Int("value", i).
		Str("source", "environment").
		Msg("using environment variable")
	return i
}
