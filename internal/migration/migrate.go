// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package migration copies the lecture list between store backends.
package migration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/ManuGH/lectrack/internal/lecture"
	xglog "github.com/ManuGH/lectrack/internal/log"
)

// Result summarises a migration run.
type Result struct {
	Count    int
	Checksum string
	DryRun   bool
}

// Migrate loads every lecture from src and writes them to dst, replacing its
// contents. With dryRun nothing is written. The checksum covers the records in
// list order so source and target can be compared with Verify.
func Migrate(ctx context.Context, src, dst lecture.Store, dryRun bool) (Result, error) {
	items, err := src.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load source: %w", err)
	}
	lecture.Reindex(items)

	sum, err := Checksum(items)
	if err != nil {
		return Result{}, err
	}
	res := Result{Count: len(items), Checksum: sum, DryRun: dryRun}

	logger := xglog.WithContext(ctx, xglog.WithComponent("migration"))
	if dryRun {
		logger.Info().
			Str(xglog.FieldEvent, "migration.dry_run").
			Int(xglog.FieldCount, res.Count).
			Str("checksum", res.Checksum).
			Msg("dry run, target left untouched")
		return res, nil
	}

	if err := dst.Save(ctx, items); err != nil {
		return Result{}, fmt.Errorf("save target: %w", err)
	}
	logger.Info().
		Str(xglog.FieldEvent, "migration.completed").
		Int(xglog.FieldCount, res.Count).
		Str("checksum", res.Checksum).
		Msg("lectures migrated")
	return res, nil
}

// Verify reloads dst and compares its checksum with want.
func Verify(ctx context.Context, dst lecture.Store, want string) error {
	items, err := dst.Load(ctx)
	if err != nil {
		return fmt.Errorf("load target: %w", err)
	}
	lecture.Reindex(items)
	got, err := Checksum(items)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("checksum mismatch: source %s, target %s", want, got)
	}
	return nil
}

// Checksum hashes the canonical JSON of each record in order.
func Checksum(items []lecture.Lecture) (string, error) {
	h := sha256.New()
	for i, l := range items {
		b, err := json.Marshal(l)
		if err != nil {
			return "", fmt.Errorf("encode record %d: %w", i+1, err)
		}
		h.Write(b)
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
