// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	xglog "github.com/ManuGH/lectrack/internal/log"
	"github.com/ManuGH/lectrack/internal/report"
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print active lectures and overall progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := xglog.ContextWithCommand(cmd.Context(), "show")
			s, err := a.open(ctx, false)
			if err != nil {
				return err
			}
			defer s.Close()
			return report.WriteLectures(cmd.OutOrStdout(), s.repo.List(), s.cfg.UI.ProgressWidth)
		},
	}
}

func newWorkloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "workload",
		Short: "Print the minutes per day needed to meet every deadline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := xglog.ContextWithCommand(cmd.Context(), "workload")
			s, err := a.open(ctx, false)
			if err != nil {
				return err
			}
			defer s.Close()
			wl := report.DailyWorkload(s.repo.List(), s.repo.Today())
			return report.WriteWorkload(cmd.OutOrStdout(), wl)
		},
	}
}
