package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-server/internal/observability"

	_ "github.com/jackc/pgx/v5/stdlib" // Import the pgx stdlib for sqlx
	"github.com/jmoiron/sqlx"
)

// Postgres keeps slots in a single table. Update serializes on per-key
// advisory locks taken in sorted order inside one SQL transaction.
type Postgres struct {
	db     *sqlx.DB
	logger *observability.Logger
}

// OpenPostgres connects with the pgx driver.
func OpenPostgres(connectionString string, logger *observability.Logger) (*Postgres, error) {
	db, err := sqlx.Open("pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return NewPostgres(db, logger), nil
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *sqlx.DB, logger *observability.Logger) *Postgres {
	return &Postgres{db: db, logger: logger}
}

const sqlCreateSlotsTable = `
CREATE TABLE IF NOT EXISTS kv_slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)
`

// EnsureSchema creates the slot table when it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, sqlCreateSlotsTable); err != nil {
		return fmt.Errorf("failed to create kv_slots table: %w", err)
	}
	return nil
}

const sqlGetSlot = `SELECT value FROM kv_slots WHERE key = $1`

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := p.db.GetContext(ctx, &value, sqlGetSlot, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get slot %s: %w", key, err)
	}
	return []byte(value), true, nil
}

const sqlUpsertSlot = `
INSERT INTO kv_slots (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
`

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	if _, err := p.db.ExecContext(ctx, sqlUpsertSlot, key, string(value)); err != nil {
		return fmt.Errorf("failed to set slot %s: %w", key, err)
	}
	return nil
}

const sqlDeleteSlot = `DELETE FROM kv_slots WHERE key = $1`

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, sqlDeleteSlot, key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

const sqlLockSlot = `SELECT pg_advisory_xact_lock(hashtext($1))`

type slotRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

func (p *Postgres) Update(ctx context.Context, keys []string, fn func(tx Txn) error) (err error) {
	keys = sortedKeys(keys)

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				p.logger.Error(ctx, "failed to rollback slot transaction", rbErr)
			}
		}
	}()

	for _, k := range keys {
		if _, err = tx.ExecContext(ctx, sqlLockSlot, k); err != nil {
			return fmt.Errorf("failed to lock slot %s: %w", k, err)
		}
	}

	query, args, err := sqlx.In(`SELECT key, value FROM kv_slots WHERE key IN (?)`, keys)
	if err != nil {
		return fmt.Errorf("failed to build slot query: %w", err)
	}
	var rows []slotRow
	if err = tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to read slots: %w", err)
	}

	current := make(map[string][]byte, len(rows))
	for _, r := range rows {
		current[r.Key] = []byte(r.Value)
	}

	staged := newStagedTxn(keys, current)
	if err = fn(staged); err != nil {
		return err
	}

	for k, v := range staged.writes {
		if _, err = tx.ExecContext(ctx, sqlUpsertSlot, k, string(v)); err != nil {
			return fmt.Errorf("failed to write slot %s: %w", k, err)
		}
	}
	for k := range staged.deletes {
		if _, err = tx.ExecContext(ctx, sqlDeleteSlot, k); err != nil {
			return fmt.Errorf("failed to delete slot %s: %w", k, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit slot transaction: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
