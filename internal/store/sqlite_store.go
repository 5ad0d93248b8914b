// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ManuGH/lectrack/internal/lecture"
	xglog "github.com/ManuGH/lectrack/internal/log"
	_ "modernc.org/sqlite" // Pure Go driver
)

const (
	schemaVersion = 1
	isoDate       = "2006-01-02"
)

// SqliteConfig defines SQLite operational parameters.
type SqliteConfig struct {
	BusyTimeout  time.Duration
	MaxOpenConns int
}

// DefaultSqliteConfig suits a single-user process: one writer connection.
func DefaultSqliteConfig() SqliteConfig {
	return SqliteConfig{
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 1,
	}
}

// openSqlite initializes a connection pool with the PRAGMAs applied to every connection.
func openSqlite(dbPath string, cfg SqliteConfig) (*sql.DB, error) {
	// modernc.org/sqlite supports _pragma in the DSN.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)",
		dbPath, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open failed: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return db, nil
}

// SqliteStore keeps the lecture list in a SQLite table ordered by position.
type SqliteStore struct {
	DB   *sql.DB
	path string
}

// NewSqliteStore opens (and if needed creates) the database at dbPath.
func NewSqliteStore(dbPath string) (*SqliteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := openSqlite(dbPath, DefaultSqliteConfig())
	if err != nil {
		return nil, err
	}

	s := &SqliteStore{DB: db, path: dbPath}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("lecture store: migration failed: %w", err)
	}
	return s, nil
}

func (s *SqliteStore) migrate() error {
	var currentVersion int
	if err := s.DB.QueryRow("PRAGMA user_version").Scan(&currentVersion); err != nil {
		return err
	}
	if currentVersion >= schemaVersion {
		return nil
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	schema := `
	CREATE TABLE IF NOT EXISTS lectures (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		duration INTEGER NOT NULL CHECK(duration >= 0),
		amount_watched INTEGER NOT NULL CHECK(amount_watched >= 0),
		deadline TEXT NOT NULL,
		amount_done INTEGER NOT NULL DEFAULT 0,
		active_status INTEGER NOT NULL CHECK(active_status IN (0, 1))
	);
	`
	if _, err := tx.Exec(schema); err != nil {
		return err
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}

// Load returns the lectures in stored order.
func (s *SqliteStore) Load(ctx context.Context) ([]lecture.Lecture, error) {
	rows, err := s.DB.QueryContext(ctx, `
	SELECT name, duration, amount_watched, deadline, amount_done, active_status
	FROM lectures
	ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("query lectures: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []lecture.Lecture{}
	for rows.Next() {
		var (
			l        lecture.Lecture
			deadline string
			status   int
		)
		if err := rows.Scan(&l.Name, &l.Duration, &l.AmountWatched, &deadline, &l.AmountDone, &status); err != nil {
			return nil, fmt.Errorf("scan lecture: %w", err)
		}
		if err := l.Deadline.UnmarshalText([]byte(deadline)); err != nil {
			return nil, fmt.Errorf("%w: row %d: field %q: %v", ErrMalformedRecord, len(items)+1, "deadline", err)
		}
		l.Status = lecture.Status(status)
		if err := validate(l); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedRecord, len(items)+1, err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// Save replaces every row inside one transaction.
func (s *SqliteStore) Save(ctx context.Context, items []lecture.Lecture) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM lectures"); err != nil {
		return fmt.Errorf("clear lectures: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO lectures (position, name, duration, amount_watched, deadline, amount_done, active_status)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, l := range items {
		if _, err := stmt.ExecContext(ctx,
			i+1, l.Name, l.Duration, l.AmountWatched, l.Deadline.Time().Format(isoDate), l.AmountDone, int(l.Status),
		); err != nil {
			return fmt.Errorf("insert lecture %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	xglog.FromContext(ctx).Debug().
		Str(xglog.FieldEvent, "store.saved").
		Str(xglog.FieldBackend, BackendSqlite).
		Str(xglog.FieldPath, s.path).
		Int(xglog.FieldCount, len(items)).
		Msg("lectures saved")
	return nil
}

func (s *SqliteStore) Close() error {
	return s.DB.Close()
}
