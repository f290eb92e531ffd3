package routingconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"callflow-studio/internal/callrouting"
	"callflow-studio/pkg/utils"
)

// PostgresRepo keeps one JSONB snapshot row per workspace.
//
// Update takes a transaction-scoped advisory lock on the workspace so the
// first write for a new workspace is serialized too.
type PostgresRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db, now: time.Now}
}

const configSchema = `
CREATE TABLE IF NOT EXISTS routing_configurations (
	workspace_id TEXT PRIMARY KEY,
	snapshot     JSONB NOT NULL,
	revision     BIGINT NOT NULL DEFAULT 1,
	updated_at   TIMESTAMPTZ NOT NULL
);
`

func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, configSchema)
	return err
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func loadSnapshot(ctx context.Context, q querier, workspaceID string) (callrouting.Snapshot, bool, error) {
	const stmt = `SELECT snapshot FROM routing_configurations WHERE workspace_id = $1`

	var raw []byte
	if err := q.QueryRowContext(ctx, stmt, workspaceID).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return callrouting.Snapshot{}, false, nil
		}
		return callrouting.Snapshot{}, false, err
	}
	var s callrouting.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return callrouting.Snapshot{}, false, fmt.Errorf("routingconfig: decode snapshot: %w", err)
	}
	return s, true, nil
}

func (r *PostgresRepo) Get(ctx context.Context, workspaceID string) (callrouting.Snapshot, bool, error) {
	return loadSnapshot(ctx, r.db, workspaceID)
}

func (r *PostgresRepo) Update(ctx context.Context, workspaceID string, fn UpdateFunc) (callrouting.Snapshot, error) {
	const upsert = `
INSERT INTO routing_configurations (workspace_id, snapshot, revision, updated_at)
VALUES ($1, $2, 1, $3)
ON CONFLICT (workspace_id) DO UPDATE
SET snapshot = EXCLUDED.snapshot,
    revision = routing_configurations.revision + 1,
    updated_at = EXCLUDED.updated_at
`
	var out callrouting.Snapshot
	err := utils.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, workspaceID); err != nil {
			return err
		}

		cur, found, err := loadSnapshot(ctx, tx, workspaceID)
		if err != nil {
			return err
		}
		next, err := fn(cur, found)
		if err != nil {
			return err
		}

		raw, err := json.Marshal(next)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsert, workspaceID, string(raw), r.now().UTC()); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return callrouting.Snapshot{}, err
	}
	return out, nil
}
