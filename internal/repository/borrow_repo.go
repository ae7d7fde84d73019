package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"library_catalog/internal/models"
)

type BorrowingSQLite struct {
	db *sql.DB
}

func NewBorrowingSQLite(db *sql.DB) *BorrowingSQLite { return &BorrowingSQLite{db: db} }

var _ Borrowings = (*BorrowingSQLite)(nil)

const (
	insertBorrowingSQL = `
		INSERT INTO borrowings (user_id, book_id, borrow_date, due_date, returned)
		VALUES (?, ?, ?, ?, ?)
	`

	selectBorrowingByIDSQL = `
		SELECT id, user_id, book_id, borrow_date, due_date, returned
		FROM borrowings WHERE id = ?
	`

	updateBorrowingSQL = `
		UPDATE borrowings SET due_date = ?, returned = ? WHERE id = ?
	`

	selectActiveByUserSQL = `
		SELECT id, user_id, book_id, borrow_date, due_date, returned
		FROM borrowings WHERE user_id = ? AND returned = 0 ORDER BY id ASC
	`

	markBookOnLoanSQL   = `UPDATE books SET available = 0, due_date = ? WHERE id = ?`
	markBookReturnedSQL = `UPDATE books SET available = 1, due_date = NULL WHERE id = ?`
)

// OpenLoan inserts the loan record and takes the book out of the available
// set in one transaction. A failure on either write leaves nothing behind, so
// an open borrowing can never coexist with an available book.
func (r *BorrowingSQLite) OpenLoan(ctx context.Context, b models.Borrowing) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin loan transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, insertBorrowingSQL,
		b.UserID, b.BookID, b.BorrowDate, b.DueDate, b.Returned)
	if err != nil {
		return 0, fmt.Errorf("insert borrowing for user %d book %d: %w", b.UserID, b.BookID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for borrowing: %w", err)
	}

	if _, err := tx.ExecContext(ctx, markBookOnLoanSQL, b.DueDate, b.BookID); err != nil {
		return 0, fmt.Errorf("mark book %d on loan: %w", b.BookID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit loan transaction: %w", err)
	}
	return int(lastID), nil
}

// CloseLoan persists the loan's returned flag and puts the book back into the
// available set with a cleared due date, in one transaction.
func (r *BorrowingSQLite) CloseLoan(ctx context.Context, b models.Borrowing) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin return transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, updateBorrowingSQL, b.DueDate, b.Returned, b.ID); err != nil {
		return fmt.Errorf("update borrowing %d: %w", b.ID, err)
	}
	if _, err := tx.ExecContext(ctx, markBookReturnedSQL, b.BookID); err != nil {
		return fmt.Errorf("mark book %d returned: %w", b.BookID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit return transaction: %w", err)
	}
	return nil
}

// GetByID fetches a loan record. Returns (nil, nil) if not found.
func (r *BorrowingSQLite) GetByID(ctx context.Context, id int) (*models.Borrowing, error) {
	var b models.Borrowing
	err := r.db.QueryRowContext(ctx, selectBorrowingByIDSQL, id).
		Scan(&b.ID, &b.UserID, &b.BookID, &b.BorrowDate, &b.DueDate, &b.Returned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select borrowing %d: %w", id, err)
	}
	return &b, nil
}

// Update persists the mutable fields of a loan (due date and returned flag).
func (r *BorrowingSQLite) Update(ctx context.Context, b models.Borrowing) error {
	res, err := r.db.ExecContext(ctx, updateBorrowingSQL, b.DueDate, b.Returned, b.ID)
	if err != nil {
		return fmt.Errorf("update borrowing %d: %w", b.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for borrowing %d: %w", b.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("update borrowing %d: no such borrowing", b.ID)
	}
	return nil
}

// ListActiveByUser returns the user's open loans in insertion order.
func (r *BorrowingSQLite) ListActiveByUser(ctx context.Context, userID int) ([]models.Borrowing, error) {
	rows, err := r.db.QueryContext(ctx, selectActiveByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("query active borrowings for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Borrowing, 0, 8)
	for rows.Next() {
		var b models.Borrowing
		if err := rows.Scan(&b.ID, &b.UserID, &b.BookID, &b.BorrowDate, &b.DueDate, &b.Returned); err != nil {
			return nil, fmt.Errorf("scan borrowing: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
