package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/propmaster/internal/lifecycle"
)

type SnapshotStore struct {
	pool *pgxpool.Pool
}

func NewSnapshotStore(pool *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

func (s *SnapshotStore) Load(ctx context.Context, workspace string) (*lifecycle.State, error) {
	query := `
		SELECT state
		FROM workspace_snapshots
		WHERE workspace = $1`

	var raw []byte
	err := s.pool.QueryRow(ctx, query, workspace).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var st lifecycle.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", workspace, err)
	}
	return &st, nil
}

// Save upserts the workspace row. The State is encoded here rather than
// handed to pgx so the stored document uses the API's json field names.
func (s *SnapshotStore) Save(ctx context.Context, workspace string, st lifecycle.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", workspace, err)
	}

	query := `
		INSERT INTO workspace_snapshots (workspace, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (workspace) DO UPDATE
		SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`

	if _, err := s.pool.Exec(ctx, query, workspace, raw); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}
