package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"library_catalog/internal/models"
	"library_catalog/internal/repository"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestUserRepository_Create_ReturnsInsertID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Alice", "alice@x.com", "$2a$10$hash").
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := repo.Create("Alice", "alice@x.com", "$2a$10$hash")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id != 5 {
		t.Fatalf("expected id 5, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_GetByEmail_Found(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}).
		AddRow(7, "Diana", "diana@x.com", "$2a$10$hash")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password_hash FROM users WHERE email = ?")).
		WithArgs("diana@x.com").
		WillReturnRows(rows)

	u, err := repo.GetByEmail("diana@x.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if u == nil || u.ID != 7 || u.Name != "Diana" || u.PasswordHash != "$2a$10$hash" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserRepository_GetByEmail_NotFoundIsNilNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password_hash FROM users WHERE email = ?")).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.GetByEmail("nobody@x.com")
	if err != nil {
		t.Fatalf("expected nil error for missing user, got %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}

func TestUserRepository_Update_NoSuchUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET")).
		WithArgs("Diana", "diana@x.com", "$2a$10$hash", 404).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), models.User{
		ID: 404, Name: "Diana", Email: "diana@x.com", PasswordHash: "$2a$10$hash",
	})
	if err == nil {
		t.Fatal("expected error for zero affected rows, got nil")
	}
}

func TestUserRepository_Create_PropagatesDBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepository(db)

	dbErr := errors.New("UNIQUE constraint failed: users.email")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Alice", "alice@x.com", "$2a$10$hash").
		WillReturnError(dbErr)

	if _, err := repo.Create("Alice", "alice@x.com", "$2a$10$hash"); !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
