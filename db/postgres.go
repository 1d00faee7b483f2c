package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
)

var ErrNoURL = errors.New("db: connection url is empty")

// Connect opens a pooled Postgres handle and pings it.
func Connect(ctx context.Context, connStr string) (*sql.DB, error) {
	if connStr == "" {
		return nil, ErrNoURL
	}

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(25)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
