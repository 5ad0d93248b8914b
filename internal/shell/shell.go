// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package shell implements the interactive lecture menu.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ManuGH/lectrack/internal/lecture"
	xglog "github.com/ManuGH/lectrack/internal/log"
	"github.com/ManuGH/lectrack/internal/report"
	"github.com/rs/zerolog"
)

// Notes opens the lecture notes.
type Notes interface {
	Open(ctx context.Context) error
}

// ChangeNotifier reports whether the backing store was modified by someone else.
type ChangeNotifier interface {
	Changed() bool
}

// Shell runs the menu loop against a repository.
type Shell struct {
	repo     *lecture.Repository
	in       *bufio.Reader
	out      io.Writer
	screen   clearer
	notes    Notes
	changes  ChangeNotifier
	barWidth int
	logger   zerolog.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithNotes enables the notes command.
func WithNotes(n Notes) Option {
	return func(s *Shell) { s.notes = n }
}

// WithChangeNotifier reloads the list before the menu whenever n reports a change.
func WithChangeNotifier(n ChangeNotifier) Option {
	return func(s *Shell) { s.changes = n }
}

// WithClearScreen enables clearing the screen between commands.
func WithClearScreen(enabled bool) Option {
	return func(s *Shell) { s.screen.enabled = enabled }
}

// WithProgressWidth sets the width of the progress bar.
func WithProgressWidth(width int) Option {
	return func(s *Shell) {
		if width > 0 {
			s.barWidth = width
		}
	}
}

// New creates a shell reading commands from in and writing to out.
func New(repo *lecture.Repository, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		repo:     repo,
		in:       bufio.NewReader(in),
		out:      out,
		screen:   clearer{w: out},
		barWidth: report.DefaultBarWidth,
		logger:   xglog.WithComponent("shell"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const menu = `
 ||lecture videos||

a. Add lecture
l. Load lectures
v. Save lectures
s. Show lectures
d. Daily workload
m. Modify lecture
c. Change deadline
h. Hibernate a lecture
r. Remove a lecture
n. Lecture notes
f. Flush database
q. Exit
`

// Run shows the menu until the user quits, input ends or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	s.screen.clear()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.syncExternalChanges(ctx)

		fmt.Fprint(s.out, menu)
		choice, err := s.prompt("\nEnter your choice: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}

		choice = strings.TrimSpace(choice)
		if choice == "q" {
			return nil
		}
		cmd, ok := s.commands()[choice]
		if !ok {
			s.screen.clear()
			fmt.Fprintln(s.out, "Invalid choice, try again.")
			continue
		}

		cctx := xglog.ContextWithCommand(ctx, choice)
		if err := cmd(cctx); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}
	}
}

func (s *Shell) commands() map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		"a": s.add,
		"l": s.reload,
		"v": s.save,
		"s": s.show,
		"d": s.workload,
		"m": s.modify,
		"c": s.changeDeadline,
		"h": s.hibernate,
		"r": s.remove,
		"n": s.editNotes,
		"f": s.flush,
	}
}

// syncExternalChanges reloads the list when the store changed on disk.
func (s *Shell) syncExternalChanges(ctx context.Context) {
	if s.changes == nil || !s.changes.Changed() {
		return
	}
	if err := s.repo.Load(ctx); err != nil {
		s.logger.Warn().Err(err).Str(xglog.FieldEvent, "shell.reload_failed").Msg("external change could not be loaded")
		fmt.Fprintf(s.out, "\nStore changed on disk but could not be reloaded: %v\n", err)
		return
	}
	s.logger.Info().Str(xglog.FieldEvent, "shell.reloaded").Int(xglog.FieldCount, s.repo.Len()).Msg("store changed on disk, reloaded")
	fmt.Fprintf(s.out, "\nStore changed on disk, reloaded %d lectures.\n", s.repo.Len())
}

// prompt prints label and returns the next line without its terminator.
// A final line without newline is returned; io.EOF is returned only when nothing was read.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Shell) pause() error {
	_, err := s.prompt("\n\nPress Enter to continue...")
	s.screen.clear()
	return err
}

// report prints a recoverable command failure and logs it.
func (s *Shell) report(ctx context.Context, err error) {
	logger := xglog.WithContext(ctx, s.logger)
	if errors.Is(err, lecture.ErrSaveFailed) {
		logger.Error().Err(err).Str(xglog.FieldEvent, "shell.save_failed").Msg("command could not be saved")
		fmt.Fprintf(s.out, "Error: %v (changes are kept in memory, use 'v' to retry)\n", err)
		return
	}
	logger.Debug().Err(err).Str(xglog.FieldEvent, "shell.command_failed").Msg("command rejected")
	fmt.Fprintf(s.out, "Error: %v\n", err)
}
