package routingconfig

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"callflow-studio/internal/callrouting"

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

func newTestPostgresRepo(db *sql.DB) *PostgresRepo {
	r := NewPostgresRepo(db)
	r.now = func() time.Time { return time.Unix(1700000000, 0) }
	return r
}

func TestPostgresRepo_EnsureSchema(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS routing_configurations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := newTestPostgresRepo(db).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
}

func TestPostgresRepo_GetMissing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT snapshot FROM routing_configurations").
		WithArgs("w1").
		WillReturnRows(sqlmock.NewRows([]string{"snapshot"}))

	_, found, err := newTestPostgresRepo(db).Get(context.Background(), "w1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatalf("expected not found")
	}
}

func TestPostgresRepo_GetDecodes(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT snapshot FROM routing_configurations").
		WithArgs("w1").
		WillReturnRows(sqlmock.NewRows([]string{"snapshot"}).
			AddRow([]byte(`{"assignees":["Ana"],"is_sip_enabled":true}`)))

	s, found, err := newTestPostgresRepo(db).Get(context.Background(), "w1")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if !s.IsSipEnabled || len(s.Assignees) != 1 || s.Assignees[0] != "Ana" {
		t.Fatalf("unexpected snapshot %+v", s)
	}
}

func TestPostgresRepo_UpdateInsertsFirstSnapshot(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs("w1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT snapshot FROM routing_configurations").
		WithArgs("w1").
		WillReturnRows(sqlmock.NewRows([]string{"snapshot"}))
	mock.ExpectExec("INSERT INTO routing_configurations").
		WithArgs("w1", sqlmock.AnyArg(), time.Unix(1700000000, 0).UTC()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	next, err := newTestPostgresRepo(db).Update(context.Background(), "w1", func(cur callrouting.Snapshot, found bool) (callrouting.Snapshot, error) {
		if found {
			t.Fatalf("expected no stored snapshot")
		}
		s := callrouting.DefaultSnapshot(callrouting.DemoDefaults())
		s.IsCallRecordingEnabled = true
		return s, nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !next.IsCallRecordingEnabled {
		t.Fatalf("expected recording on")
	}
}

func TestPostgresRepo_UpdateRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs("w1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT snapshot FROM routing_configurations").
		WithArgs("w1").
		WillReturnRows(sqlmock.NewRows([]string{"snapshot"}).AddRow([]byte(`{"is_phone_tree_enabled":true}`)))
	mock.ExpectRollback()

	boom := errors.New("boom")
	_, err := newTestPostgresRepo(db).Update(context.Background(), "w1", func(cur callrouting.Snapshot, found bool) (callrouting.Snapshot, error) {
		if !found || !cur.IsPhoneTreeEnabled {
			t.Fatalf("expected stored phone tree snapshot, got %+v", cur)
		}
		return callrouting.Snapshot{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
