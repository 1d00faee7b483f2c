package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS fetch_history (
		id             BIGSERIAL PRIMARY KEY,
		kind           TEXT NOT NULL,
		symbol         TEXT NOT NULL DEFAULT '',
		provenance     TEXT NOT NULL,
		state          TEXT NOT NULL,
		records        INTEGER NOT NULL,
		source_names   TEXT[] NOT NULL,
		failed_sources TEXT[] NOT NULL,
		sources        JSONB NOT NULL,
		fetched_at     TIMESTAMPTZ NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// Postgres writes events to a shared database. The connection is owned by the caller.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("migrating fetch_history: %w", err)
	}
	return nil
}

func (p *Postgres) Record(ctx context.Context, e Event) error {
	sources, err := json.Marshal(e.Sources)
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}
	failed := e.Failed()
	if failed == nil {
		failed = []string{}
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO fetch_history(kind, symbol, provenance, state, records, source_names, failed_sources, sources, fetched_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.Kind, e.Symbol, e.Provenance, e.State, e.Records, pq.Array(e.SourceNames()), pq.Array(failed), sources, e.FetchedAt)
	if err != nil {
		return fmt.Errorf("inserting history: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	return nil
}
