package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const presetStoreSchema = `
CREATE TABLE IF NOT EXISTS preset_store (
	store_key  TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps the preset payload in a single preset_store row.
type PostgresStore struct {
	db  *sql.DB
	key string
}

// OpenPostgres opens a pgx-backed database handle and pings it.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func NewPostgresStore(db *sql.DB, key string) *PostgresStore {
	return &PostgresStore{db: db, key: key}
}

// EnsureSchema creates the preset_store table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, presetStoreSchema); err != nil {
		return fmt.Errorf("create preset_store: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM preset_store WHERE store_key = $1`, s.key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch presets: %w", err)
	}
	return []byte(payload), nil
}

func (s *PostgresStore) Save(ctx context.Context, payload []byte) error {
	query := `
		INSERT INTO preset_store (store_key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (store_key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, s.key, string(payload)); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}
	return nil
}
