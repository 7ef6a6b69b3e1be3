package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Postgres keeps the key-value pairs in a single table. It exists for
// deployments that already run a database; the file store remains the
// default.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects using the given DSN and creates the kv table if it
// does not exist yet.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: ping database: %w", err)
	}
	s := &Postgres{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Postgres) migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value BYTEA NOT NULL
		)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("storage: migrate: %w", err)
	}
	return nil
}

func (s *Postgres) Close() error { return s.db.Close() }

func (s *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM kv WHERE key = $1`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("storage: get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Postgres) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("storage: set %q: %w", key, err)
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}

func (s *Postgres) Keys(ctx context.Context, prefix string) ([]string, error) {
	pattern := likeEscaper.Replace(prefix) + "%"
	query := `SELECT key FROM kv WHERE key LIKE $1 ESCAPE '\' ORDER BY key`

	rows, err := s.db.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("storage: list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("storage: scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate keys: %w", err)
	}
	return keys, nil
}

// likeEscaper neutralizes LIKE metacharacters in the prefix.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var _ KV = (*Postgres)(nil)
