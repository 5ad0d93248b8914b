// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ManuGH/lectrack/internal/shell"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
)

// app carries the process streams so commands can be exercised in tests.
type app struct {
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	interactive bool // stdout is a terminal; enables screen clearing

	configPath string
	dataDir    string
	backend    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		in:          os.Stdin,
		out:         colorable.NewColorableStdout(),
		errOut:      colorable.NewColorableStderr(),
		interactive: shell.IsTerminal(os.Stdout),
	}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "lectrack",
		Short: "Track lecture videos, progress and deadlines",
		Long: `lectrack keeps a list of lecture videos with their length, watched time and
deadline, and computes how much has to be watched per day to finish in time.

Without a subcommand it starts the interactive menu.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd.Context())
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to YAML configuration file (default <data>/lectrack.yaml)")
	flags.StringVar(&a.dataDir, "data", "", "data directory (env LECTRACK_DATA)")
	flags.StringVar(&a.backend, "backend", "", "store backend: json, sqlite or memory (env LECTRACK_BACKEND)")

	root.AddCommand(
		newShowCmd(a),
		newWorkloadCmd(a),
		newMigrateCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}
