package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo stores events in an INSERT-only audit_events table.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const auditSchema = `
CREATE TABLE IF NOT EXISTS routing_audit_events (
	id             UUID PRIMARY KEY,
	workspace_id   TEXT NOT NULL,
	type           TEXT NOT NULL,
	actor_user_id  TEXT NOT NULL DEFAULT '',
	actor_role     TEXT NOT NULL DEFAULT '',
	ip_address     TEXT NOT NULL DEFAULT '',
	operation      TEXT NOT NULL DEFAULT '',
	routing_before TEXT NOT NULL DEFAULT '',
	routing_after  TEXT NOT NULL DEFAULT '',
	message        TEXT NOT NULL DEFAULT '',
	metadata       TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS routing_audit_events_ws_created
	ON routing_audit_events (workspace_id, created_at DESC);
`

func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, auditSchema)
	return err
}

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO routing_audit_events
	(id, workspace_id, type, actor_user_id, actor_role, ip_address, operation, routing_before, routing_after, message, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.WorkspaceID, string(e.Type), e.ActorUserID, e.ActorRole, e.IPAddress,
		e.Operation, e.RoutingBefore, e.RoutingAfter, e.Message, e.Metadata, e.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) List(ctx context.Context, workspaceID string, limit int) ([]Event, error) {
	const q = `
SELECT id, workspace_id, type, actor_user_id, actor_role, ip_address, operation, routing_before, routing_after, message, metadata, created_at
FROM routing_audit_events
WHERE workspace_id = $1
ORDER BY created_at DESC
LIMIT $2
`
	rows, err := r.db.QueryContext(ctx, q, workspaceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var e Event
		var typ string
		if err := rows.Scan(
			&e.ID, &e.WorkspaceID, &typ, &e.ActorUserID, &e.ActorRole, &e.IPAddress,
			&e.Operation, &e.RoutingBefore, &e.RoutingAfter, &e.Message, &e.Metadata, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Type = EventType(typ)
		out = append(out, e)
	}
	return out, rows.Err()
}
