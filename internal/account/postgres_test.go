package account

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func newStoreWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresStore(db), mock, db
}

const (
	findQuery   = `(?s)SELECT\s+id,\s*username,\s*email,\s*password_hash,\s*created_at\s+FROM\s+accounts\s+WHERE\s+username\s*=\s*\$1`
	insertQuery = `(?s)INSERT\s+INTO\s+accounts\s*\(id,\s*username,\s*email,\s*password_hash,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)`
)

func TestFindByUsername_Found(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	created := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow("id-1", "alice", "a@x.com", "hash", created)
	mock.ExpectQuery(findQuery).WithArgs("alice").WillReturnRows(rows)

	got, err := store.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindByUsername error: %v", err)
	}
	if got.ID != "id-1" || got.Username != "alice" || got.Email != "a@x.com" {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestFindByUsername_NullEmail(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow("id-1", "alice", nil, "hash", time.Now().UTC())
	mock.ExpectQuery(findQuery).WithArgs("alice").WillReturnRows(rows)

	got, err := store.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindByUsername error: %v", err)
	}
	if got.Email != "" {
		t.Fatalf("expected empty email, got %q", got.Email)
	}
}

func TestFindByUsername_NotFound(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQuery).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := store.FindByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestFindByUsername_DBError(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQuery).WithArgs("alice").WillReturnError(errors.New("db down"))

	_, err := store.FindByUsername(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`query account by username: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestInsert_Success(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).
		WithArgs(sqlmock.AnyArg(), "alice", "a@x.com", "hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := store.Insert(context.Background(), Account{Username: "alice", Email: "a@x.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if got.ID == "" || got.CreatedAt.IsZero() {
		t.Fatalf("store did not assign id/created_at: %+v", got)
	}
}

func TestInsert_DuplicateUsername(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).
		WithArgs(sqlmock.AnyArg(), "alice", nil, "hash", sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := store.Insert(context.Background(), Account{Username: "alice", PasswordHash: "hash"})
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("want ErrDuplicateUsername, got %v", err)
	}
}

func TestInsert_DBError(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).
		WithArgs(sqlmock.AnyArg(), "alice", nil, "hash", sqlmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	_, err := store.Insert(context.Background(), Account{Username: "alice", PasswordHash: "hash"})
	if err == nil || !regexp.MustCompile(`insert account: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
