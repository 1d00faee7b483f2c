package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS fetch_history (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			kind        TEXT NOT NULL,
			symbol      TEXT NOT NULL DEFAULT '',
			provenance  TEXT NOT NULL,
			state       TEXT NOT NULL,
			records     INTEGER NOT NULL,
			sources     TEXT NOT NULL,
			fetched_at  DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_fetch_history_fetched ON fetch_history(fetched_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing history schema: %w", err)
	}
	return nil
}

func (s *SQLite) Record(ctx context.Context, e Event) error {
	sources, err := json.Marshal(e.Sources)
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO fetch_history (kind, symbol, provenance, state, records, sources, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.Kind, e.Symbol, e.Provenance, e.State, e.Records, string(sources), e.FetchedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting history: %w", err)
	}
	return nil
}

// Recent returns the newest events first.
func (s *SQLite) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, symbol, provenance, state, records, sources, fetched_at
		FROM fetch_history
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e         Event
			sources   string
			fetchedAt string
		)
		if err := rows.Scan(&e.Kind, &e.Symbol, &e.Provenance, &e.State, &e.Records, &sources, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		if err := json.Unmarshal([]byte(sources), &e.Sources); err != nil {
			return nil, fmt.Errorf("decoding sources: %w", err)
		}
		e.FetchedAt, _ = time.Parse(time.RFC3339Nano, fetchedAt)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
