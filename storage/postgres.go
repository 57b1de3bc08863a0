package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore keeps objects in a single key/value table. It satisfies
// ObjectStore so deployments without an S3 bucket or local disk can still run.
type PostgresStore struct {
	db *sql.DB
}

type PostgresInfo struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

var pgMigration = []string{
	`CREATE TABLE object (
key VARCHAR(1024) PRIMARY KEY,
content_type VARCHAR(255) NOT NULL DEFAULT 'application/octet-stream',
data BYTEA NOT NULL,
updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
}

func NewPostgresStore(info PostgresInfo) (*PostgresStore, error) {
	db, err := sql.Open("postgres", fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		info.Host, info.Port, info.User, info.Password, info.Database))
	if err != nil {
		return nil, &StoreError{Op: "init", Key: info.Database, Err: err}
	}

	p := &PostgresStore{db: db}
	if err := p.migrate(pgMigration); err != nil {
		return nil, &StoreError{Op: "migrate", Key: info.Database, Err: err}
	}

	return p, nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := p.db.QueryRowContext(ctx, `SELECT data FROM object WHERE key = $1`, key).Scan(&data)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, &StoreError{Op: "get", Key: key, Err: ErrNotExist}
	case err != nil:
		return nil, &StoreError{Op: "get", Key: key, Err: err}
	}
	return data, nil
}

func (p *PostgresStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := p.db.ExecContext(ctx, `
INSERT INTO object (key, content_type, data, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (key) DO UPDATE
SET content_type = EXCLUDED.content_type, data = EXCLUDED.data, updated_at = now()
`, key, contentType, data)
	if err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	return nil
}

func (p *PostgresStore) Head(ctx context.Context, key string) error {
	var exists bool
	err := p.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM object WHERE key = $1)`, key).Scan(&exists)
	if err != nil {
		return &StoreError{Op: "head", Key: key, Err: err}
	}
	if !exists {
		return &StoreError{Op: "head", Key: key, Err: ErrNotExist}
	}
	return nil
}

func (p *PostgresStore) migrate(wanted []string) error {
	query := `CREATE TABLE IF NOT EXISTS migration
("id" SERIAL PRIMARY KEY, "query" TEXT)`
	_, err := p.db.Exec(query)
	if err != nil {
		return err
	}

	// find existing
	rows, err := p.db.Query(`SELECT query FROM migration ORDER BY id`)
	if err != nil {
		return err
	}

	existing := []string{}
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			return err
		}
		existing = append(existing, query)
	}
	rows.Close()

	// compare
	missing, err := compareMigrations(wanted, existing)
	if err != nil {
		return err
	}

	// execute missing
	for _, query := range missing {
		if _, err := p.db.Exec(query); err != nil {
			return err
		}

		// register
		if _, err := p.db.Exec(`
INSERT INTO migration
(query) VALUES ($1)
`, query); err != nil {
			return err
		}
	}

	return nil
}

func compareMigrations(wanted, existing []string) ([]string, error) {
	needed := []string{}
	if len(wanted) < len(existing) {
		return []string{}, fmt.Errorf("not enough migrations")
	}

	for i, want := range wanted {
		switch {
		case i >= len(existing):
			needed = append(needed, want)
		case want == existing[i]:
			// do nothing
		case want != existing[i]:
			return []string{}, fmt.Errorf("incompatible migration: %v", want)
		}
	}

	return needed, nil
}
