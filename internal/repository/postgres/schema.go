package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied at startup. Every statement is idempotent.
//
// workspace_snapshots holds the whole session State as one JSONB document
// per workspace; the service reads it once at boot and writes it through
// after every change.
const schema = `
CREATE TABLE IF NOT EXISTS workspace_snapshots (
	workspace  text PRIMARY KEY,
	state      jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
	id            uuid PRIMARY KEY,
	name          text NOT NULL DEFAULT '',
	email         text NOT NULL UNIQUE,
	role          text NOT NULL,
	tenant_id     text NOT NULL DEFAULT '',
	password_hash text NOT NULL,
	created_at    timestamptz NOT NULL DEFAULT now()
);`

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
