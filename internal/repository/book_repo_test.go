package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"library_catalog/internal/repository"
)

func bookColumns() []string {
	return []string{"id", "title", "author", "year", "genre", "available", "due_date"}
}

func TestBookSQLite_ListAvailable_ScansNullDueDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewBookSQLite(db)

	rows := sqlmock.NewRows(bookColumns()).
		AddRow(1, "Cien años de soledad", "Gabriel García Márquez", 1967, "Realismo mágico", true, nil).
		AddRow(3, "La sombra del viento", "Carlos Ruiz Zafón", 2001, "Misterio", true, nil)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE available = 1")).WillReturnRows(rows)

	books, err := repo.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("ListAvailable() error = %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	if books[0].ID != 1 || books[1].ID != 3 {
		t.Fatalf("expected insertion order [1 3], got %v", books)
	}
	if books[0].DueDate != "" {
		t.Fatalf("expected empty due date for available book, got %q", books[0].DueDate)
	}
}

func TestBookSQLite_GetByID_CarriesDueDateWhileUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewBookSQLite(db)

	rows := sqlmock.NewRows(bookColumns()).
		AddRow(2, "Don Quijote de la Mancha", "Miguel de Cervantes", 1605, "Novela clásica", false, "2025-08-15")
	mock.ExpectQuery(regexp.QuoteMeta("FROM books WHERE id = ?")).
		WithArgs(2).
		WillReturnRows(rows)

	b, err := repo.GetByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if b == nil || b.Available || b.DueDate != "2025-08-15" {
		t.Fatalf("unexpected book: %+v", b)
	}
}

func TestBookSQLite_GetByID_NotFoundIsNilNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewBookSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM books WHERE id = ?")).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(bookColumns()))

	b, err := repo.GetByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("expected nil error for missing book, got %v", err)
	}
	if b != nil {
		t.Fatalf("expected nil book, got %+v", b)
	}
}

