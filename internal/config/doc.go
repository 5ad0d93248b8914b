// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config provides configuration management for lectrack.
//
// Precedence, lowest to highest: defaults, YAML file, LECTRACK_* environment,
// command-line overrides.
package config
