package audit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

func TestPostgresRepo_Append(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Unix(1700000000, 0).UTC()

	mock.ExpectExec("INSERT INTO routing_audit_events").
		WithArgs("id-1", "w", "routing_reset", "u", "owner", "", "", "sip", "none", "routing configuration reset", "", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewPostgresRepo(db).Append(context.Background(), Event{
		ID: "id-1", WorkspaceID: "w", Type: EventTypeReset, ActorUserID: "u", ActorRole: "owner",
		RoutingBefore: "sip", RoutingAfter: "none", Message: "routing configuration reset", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
}

func TestPostgresRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Unix(1700000000, 0).UTC()

	cols := []string{"id", "workspace_id", "type", "actor_user_id", "actor_role", "ip_address", "operation", "routing_before", "routing_after", "message", "metadata", "created_at"}
	mock.ExpectQuery("SELECT .+ FROM routing_audit_events WHERE workspace_id = \\$1").
		WithArgs("w", 10).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("id-2", "w", "routing_operation", "u", "editor", "", "toggle-sip", "none", "sip", "m", "", now))

	evs, err := NewPostgresRepo(db).List(context.Background(), "w", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(evs) != 1 || evs[0].Type != EventTypeOperation || evs[0].Operation != "toggle-sip" {
		t.Fatalf("unexpected events %+v", evs)
	}
}
