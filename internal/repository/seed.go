package repository

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"library_catalog/internal/models"
)

// The catalog is static in this design: books exist from seeding on and only
// their availability changes. All books start available; only an open
// borrowing (the demo user's, when seeded) may take one out.
var seedBooks = []models.Book{
	{ID: 1, Title: "Cien años de soledad", Author: "Gabriel García Márquez", Year: 1967, Genre: "Realismo mágico", Available: true},
	{ID: 2, Title: "Don Quijote de la Mancha", Author: "Miguel de Cervantes", Year: 1605, Genre: "Novela clásica", Available: true},
	{ID: 3, Title: "La sombra del viento", Author: "Carlos Ruiz Zafón", Year: 2001, Genre: "Misterio", Available: true},
}

const demoUserEmail = "usuario@ejemplo.com"

// SeedCatalog inserts the built-in book set when the books table is empty.
// Safe to call on every start.
func SeedCatalog(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, b := range seedBooks {
		if _, err := tx.Exec(
			`INSERT INTO books (id, title, author, year, genre, available, due_date) VALUES (?, ?, ?, ?, ?, ?, NULL)`,
			b.ID, b.Title, b.Author, b.Year, b.Genre, b.Available,
		); err != nil {
			return fmt.Errorf("seed book %d: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}

// SeedDemoUser creates the demo reader with an open loan on book 2. No-op
// when the user already exists.
func SeedDemoUser(db *sql.DB, password string) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, demoUserEmail).Scan(&count); err != nil {
		return fmt.Errorf("count demo user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(
		`INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`,
		"Juan Pérez", demoUserEmail, string(hash),
	)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get demo user id: %w", err)
	}

	// The demo loan and the book it holds flip together, keeping the
	// availability invariant intact from first boot.
	if _, err := tx.Exec(
		`INSERT INTO borrowings (user_id, book_id, borrow_date, due_date, returned) VALUES (?, ?, ?, ?, 0)`,
		userID, 2, "2025-08-01", "2025-08-15",
	); err != nil {
		return fmt.Errorf("seed demo borrowing: %w", err)
	}
	if _, err := tx.Exec(
		`UPDATE books SET available = 0, due_date = ? WHERE id = ?`,
		"2025-08-15", 2,
	); err != nil {
		return fmt.Errorf("seed demo book state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}
