// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package notes opens the lecture notes file in an external editor.
package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	xglog "github.com/ManuGH/lectrack/internal/log"
	"github.com/rs/zerolog"
)

// ErrNoEditor is returned when the editor command resolves to nothing.
var ErrNoEditor = errors.New("no editor configured")

// Runner executes a prepared command. Tests substitute it to avoid spawning editors.
type Runner func(cmd *exec.Cmd) error

// Launcher opens a notes file in an editor attached to the terminal.
type Launcher struct {
	path   string
	editor string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	run    Runner
	logger zerolog.Logger
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithStdio attaches the editor to the given streams instead of the process stdio.
func WithStdio(in io.Reader, out, errOut io.Writer) Option {
	return func(l *Launcher) {
		l.stdin, l.stdout, l.stderr = in, out, errOut
	}
}

// WithRunner replaces the function that runs the editor command.
func WithRunner(run Runner) Option {
	return func(l *Launcher) { l.run = run }
}

// NewLauncher creates a launcher for path. An empty editor is resolved from the
// environment and platform.
func NewLauncher(path, editor string, opts ...Option) *Launcher {
	l := &Launcher{
		path:   path,
		editor: editor,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		run:    (*exec.Cmd).Run,
		logger: xglog.WithComponent("notes"),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.editor == "" {
		l.editor = ResolveEditor(runtime.GOOS, os.Getenv)
	}
	return l
}

// Path returns the notes file.
func (l *Launcher) Path() string { return l.path }

// Editor returns the resolved editor command line.
func (l *Launcher) Editor() string { return l.editor }

// ResolveEditor picks notepad on Windows, otherwise $VISUAL, then $EDITOR, then vim.
func ResolveEditor(goos string, getenv func(string) string) string {
	if goos == "windows" {
		return "notepad"
	}
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
	}
	return "vim"
}

// Open runs the editor on the notes file and waits for it to exit. The parent
// directory is created first. A non-zero exit status is logged and otherwise ignored;
// only failures to prepare or start the editor are returned.
func (l *Launcher) Open(ctx context.Context) error {
	fields := strings.Fields(l.editor)
	if len(fields) == 0 {
		return ErrNoEditor
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil {
		return fmt.Errorf("create notes directory: %w", err)
	}

	args := append(fields[1:], l.path)
	// #nosec G204 -- the editor is chosen by the local user via config or environment
	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = l.stdin, l.stdout, l.stderr

	logger := xglog.WithContext(ctx, l.logger)
	logger.Debug().
		Str(xglog.FieldEvent, "notes.open").
		Str("editor", fields[0]).
		Str(xglog.FieldPath, l.path).
		Msg("launching editor")

	err := l.run(cmd)
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		logger.Debug().Str(xglog.FieldEvent, "notes.closed").Int("exit_code", 0).Msg("editor exited")
		return nil
	case errors.As(err, &exitErr):
		logger.Warn().
			Str(xglog.FieldEvent, "notes.closed").
			Int("exit_code", exitErr.ExitCode()).
			Msg("editor exited with non-zero status")
		return nil
	default:
		return fmt.Errorf("run editor %q: %w", fields[0], err)
	}
}
