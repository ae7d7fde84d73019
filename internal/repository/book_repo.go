package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"library_catalog/internal/models"
)

type BookSQLite struct {
	db *sql.DB
}

func NewBookSQLite(db *sql.DB) *BookSQLite { return &BookSQLite{db: db} }

var _ Books = (*BookSQLite)(nil)

const (
	selectBooksSQL = `
		SELECT id, title, author, year, genre, available, due_date
		FROM books ORDER BY id ASC
	`

	selectAvailableBooksSQL = `
		SELECT id, title, author, year, genre, available, due_date
		FROM books WHERE available = 1 ORDER BY id ASC
	`

	selectBookByIDSQL = `
		SELECT id, title, author, year, genre, available, due_date
		FROM books WHERE id = ?
	`
)

func scanBook(row interface{ Scan(dest ...any) error }) (models.Book, error) {
	var b models.Book
	var due sql.NullString
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Genre, &b.Available, &due); err != nil {
		return models.Book{}, err
	}
	if due.Valid {
		b.DueDate = due.String
	}
	return b, nil
}

func (r *BookSQLite) queryBooks(ctx context.Context, query string) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	out := make([]models.Book, 0, 16)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns the full catalog in insertion (id) order.
func (r *BookSQLite) List(ctx context.Context) ([]models.Book, error) {
	return r.queryBooks(ctx, selectBooksSQL)
}

// ListAvailable returns only books whose availability flag is set, in insertion order.
func (r *BookSQLite) ListAvailable(ctx context.Context) ([]models.Book, error) {
	return r.queryBooks(ctx, selectAvailableBooksSQL)
}

// GetByID fetches one book. Returns (nil, nil) if not found.
func (r *BookSQLite) GetByID(ctx context.Context, id int) (*models.Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx, selectBookByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select book %d: %w", id, err)
	}
	return &b, nil
}
