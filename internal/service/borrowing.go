package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library_catalog/internal/models"
	"library_catalog/internal/repository"
)

const (
	loanDays   = 14
	dateLayout = "2006-01-02"
)

// Domain errors for loan flows.
var (
	ErrNoSession         = errors.New("sign in to reserve books")
	ErrBookNotFound      = errors.New("book not found")
	ErrBookUnavailable   = errors.New("book is not available")
	ErrBorrowingNotFound = errors.New("borrowing not found")
	ErrAlreadyReturned   = errors.New("borrowing is already returned")
)

type BorrowingService struct {
	books      repository.Books
	borrowings repository.Borrowings

	now func() time.Time // injectable clock for tests
}

func NewBorrowingService(books repository.Books, borrowings repository.Borrowings) *BorrowingService {
	return &BorrowingService{
		books:      books,
		borrowings: borrowings,
		now:        time.Now,
	}
}

// Reserve opens a loan on an available book: the loan runs from today for
// exactly 14 calendar days, and the book leaves the available set. Callers
// holding catalog views must refresh them afterwards.
func (s *BorrowingService) Reserve(ctx context.Context, userID, bookID int) (models.Borrowing, error) {
	if userID == 0 {
		return models.Borrowing{}, ErrNoSession
	}

	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return models.Borrowing{}, err
	}
	if book == nil {
		return models.Borrowing{}, ErrBookNotFound
	}
	if !book.Available {
		return models.Borrowing{}, ErrBookUnavailable
	}

	today := s.now()
	borrowDate := today.Format(dateLayout)
	dueDate := today.AddDate(0, 0, loanDays).Format(dateLayout)

	b := models.Borrowing{
		UserID:     userID,
		BookID:     book.ID,
		BorrowDate: borrowDate,
		DueDate:    dueDate,
		Returned:   false,
	}
	id, err := s.borrowings.OpenLoan(ctx, b)
	if err != nil {
		return models.Borrowing{}, err
	}
	b.ID = id
	return b, nil
}

// Renew pushes the due date out by 14 calendar days counted from the current
// due date, not from today. The returned flag is deliberately not checked:
// renewing a closed loan only moves a date nobody reads.
func (s *BorrowingService) Renew(ctx context.Context, borrowingID int) (models.Borrowing, error) {
	b, err := s.borrowings.GetByID(ctx, borrowingID)
	if err != nil {
		return models.Borrowing{}, err
	}
	if b == nil {
		return models.Borrowing{}, ErrBorrowingNotFound
	}

	due, err := time.Parse(dateLayout, b.DueDate)
	if err != nil {
		return models.Borrowing{}, fmt.Errorf("parse due date %q: %w", b.DueDate, err)
	}
	b.DueDate = due.AddDate(0, 0, loanDays).Format(dateLayout)

	if err := s.borrowings.Update(ctx, *b); err != nil {
		return models.Borrowing{}, err
	}
	return *b, nil
}

// Return closes a loan and puts the book back into the available set. Only the
// borrowing's owner may return it; foreign loans read as not found.
func (s *BorrowingService) Return(ctx context.Context, userID, borrowingID int) (models.Borrowing, error) {
	b, err := s.borrowings.GetByID(ctx, borrowingID)
	if err != nil {
		return models.Borrowing{}, err
	}
	if b == nil || b.UserID != userID {
		return models.Borrowing{}, ErrBorrowingNotFound
	}
	if b.Returned {
		return models.Borrowing{}, ErrAlreadyReturned
	}

	b.Returned = true
	if err := s.borrowings.CloseLoan(ctx, *b); err != nil {
		return models.Borrowing{}, err
	}
	return *b, nil
}

// ListActive returns the user's open loans in insertion order.
func (s *BorrowingService) ListActive(ctx context.Context, userID int) ([]models.Borrowing, error) {
	return s.borrowings.ListActiveByUser(ctx, userID)
}
