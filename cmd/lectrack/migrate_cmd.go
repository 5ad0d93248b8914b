// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"errors"
	"fmt"
	"path/filepath"

	xglog "github.com/ManuGH/lectrack/internal/log"
	"github.com/ManuGH/lectrack/internal/migration"
	"github.com/ManuGH/lectrack/internal/store"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	var (
		from, to         string
		fromPath, toPath string
		dryRun           bool
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy all lectures from one store backend to another",
		Example: `  lectrack migrate --from json --to sqlite
  lectrack migrate --from sqlite --to json --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := xglog.ContextWithCommand(cmd.Context(), "migrate")
			cfg, err := a.loadConfig("")
			if err != nil {
				return err
			}
			xglog.Configure(xglog.Config{Level: cfg.Log.Level, Output: a.errOut})

			if fromPath == "" {
				fromPath = store.DefaultPath(from, cfg.DataDir)
			}
			if toPath == "" {
				toPath = store.DefaultPath(to, cfg.DataDir)
			}
			if from == to && filepath.Clean(fromPath) == filepath.Clean(toPath) {
				return errors.New("source and target are the same store")
			}

			src, err := store.New(from, fromPath)
			if err != nil {
				return fmt.Errorf("open source: %w", err)
			}
			defer src.Close()
			dst, err := store.New(to, toPath)
			if err != nil {
				return fmt.Errorf("open target: %w", err)
			}
			defer dst.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Migrating lectures %s (%s) -> %s (%s), dry run: %v\n", from, fromPath, to, toPath, dryRun)
			res, err := migration.Migrate(ctx, src, dst, dryRun)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(out, "Would migrate %d lectures (checksum %s).\n", res.Count, res.Checksum)
				return nil
			}
			if err := migration.Verify(ctx, dst, res.Checksum); err != nil {
				return fmt.Errorf("verify target: %w", err)
			}
			fmt.Fprintf(out, "Migrated %d lectures (checksum %s).\n", res.Count, res.Checksum)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&from, "from", store.BackendJSON, "source backend")
	f.StringVar(&to, "to", store.BackendSqlite, "target backend")
	f.StringVar(&fromPath, "from-path", "", "source path (default derived from --data)")
	f.StringVar(&toPath, "to-path", "", "target path (default derived from --data)")
	f.BoolVar(&dryRun, "dry-run", false, "read the source and report without writing")
	return cmd
}
