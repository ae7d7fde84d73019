package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"library_catalog/internal/models"
)

func fixedClock(t *testing.T, day string) func() time.Time {
	t.Helper()
	tm, err := time.Parse(dateLayout, day)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", day, err)
	}
	return func() time.Time { return tm }
}

func TestBorrowingService_Reserve_OpensFourteenDayLoan(t *testing.T) {
	book := models.Book{ID: 3, Title: "La sombra del viento", Available: true}
	books := &mockBooks{
		GetByIDFn: func(ctx context.Context, id int) (*models.Book, error) {
			if id != 3 {
				t.Fatalf("expected lookup of book 3, got %d", id)
			}
			b := book
			return &b, nil
		},
	}
	borrowings := &mockBorrowings{
		OpenLoanFn: func(ctx context.Context, b models.Borrowing) (int, error) { return 9, nil },
	}
	svc := NewBorrowingService(books, borrowings)
	svc.now = fixedClock(t, "2025-08-01")

	got, err := svc.Reserve(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}

	if got.ID != 9 || got.UserID != 7 || got.BookID != 3 {
		t.Fatalf("unexpected borrowing: %+v", got)
	}
	if got.BorrowDate != "2025-08-01" {
		t.Errorf("expected borrow date 2025-08-01, got %q", got.BorrowDate)
	}
	if got.DueDate != "2025-08-15" {
		t.Errorf("expected due date 2025-08-15 (borrow + 14 days), got %q", got.DueDate)
	}
	if got.Returned {
		t.Error("a fresh borrowing must not be returned")
	}

	// The opened loan carries the due date the book will show while out.
	if len(borrowings.opened) != 1 {
		t.Fatalf("expected 1 opened loan, got %d", len(borrowings.opened))
	}
	if opened := borrowings.opened[0]; opened.BookID != 3 || opened.DueDate != "2025-08-15" {
		t.Fatalf("unexpected opened loan: %+v", opened)
	}
}

func TestBorrowingService_Reserve_NoSession(t *testing.T) {
	books := &mockBooks{
		GetByIDFn: func(ctx context.Context, id int) (*models.Book, error) {
			t.Fatal("no repository access expected without a session")
			return nil, nil
		},
	}
	svc := NewBorrowingService(books, &mockBorrowings{})

	if _, err := svc.Reserve(context.Background(), 0, 3); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestBorrowingService_Reserve_BookNotFound(t *testing.T) {
	books := &mockBooks{
		GetByIDFn: func(ctx context.Context, id int) (*models.Book, error) { return nil, nil },
	}
	svc := NewBorrowingService(books, &mockBorrowings{})

	if _, err := svc.Reserve(context.Background(), 7, 99); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBorrowingService_Reserve_UnavailableLeavesStateUntouched(t *testing.T) {
	books := &mockBooks{
		GetByIDFn: func(ctx context.Context, id int) (*models.Book, error) {
			return &models.Book{ID: 3, Available: false, DueDate: "2025-08-15"}, nil
		},
	}
	borrowings := &mockBorrowings{
		OpenLoanFn: func(ctx context.Context, b models.Borrowing) (int, error) {
			t.Fatal("no loan may be opened on an unavailable book")
			return 0, nil
		},
	}
	svc := NewBorrowingService(books, borrowings)

	if _, err := svc.Reserve(context.Background(), 7, 3); !errors.Is(err, ErrBookUnavailable) {
		t.Fatalf("expected ErrBookUnavailable, got %v", err)
	}
	if len(borrowings.opened) != 0 {
		t.Fatalf("expected no opened loans, got %d", len(borrowings.opened))
	}
}

func TestBorrowingService_Reserve_SecondReservationFails(t *testing.T) {
	// Scenario: one available book, reserved twice in a row.
	book := models.Book{ID: 3, Available: true}
	books := &mockBooks{
		GetByIDFn: func(ctx context.Context, id int) (*models.Book, error) {
			b := book
			return &b, nil
		},
	}
	borrowings := &mockBorrowings{
		OpenLoanFn: func(ctx context.Context, b models.Borrowing) (int, error) {
			book.Available = false
			book.DueDate = b.DueDate
			return 1, nil
		},
	}
	svc := NewBorrowingService(books, borrowings)

	if _, err := svc.Reserve(context.Background(), 7, 3); err != nil {
		t.Fatalf("first Reserve returned error: %v", err)
	}
	if _, err := svc.Reserve(context.Background(), 7, 3); !errors.Is(err, ErrBookUnavailable) {
		t.Fatalf("second Reserve: expected ErrBookUnavailable, got %v", err)
	}
}

func TestBorrowingService_Renew_ExtendsFromCurrentDueDate(t *testing.T) {
	stored := models.Borrowing{ID: 1, UserID: 7, BookID: 2, BorrowDate: "2025-08-01", DueDate: "2025-08-15"}
	borrowings := &mockBorrowings{
		GetByIDFn: func(ctx context.Context, id int) (*models.Borrowing, error) {
			b := stored
			return &b, nil
		},
	}
	svc := NewBorrowingService(&mockBooks{}, borrowings)
	// A clock far from the due date proves the extension counts from the
	// stored due date, not from today.
	svc.now = fixedClock(t, "2025-09-20")

	got, err := svc.Renew(context.Background(), 1)
	if err != nil {
		t.Fatalf("Renew returned error: %v", err)
	}
	if got.DueDate != "2025-08-29" {
		t.Fatalf("expected due date 2025-08-29, got %q", got.DueDate)
	}
	if len(borrowings.updated) != 1 || borrowings.updated[0].DueDate != "2025-08-29" {
		t.Fatalf("expected persisted due date 2025-08-29, got %v", borrowings.updated)
	}
}

func TestBorrowingService_Renew_NotFound(t *testing.T) {
	borrowings := &mockBorrowings{
		GetByIDFn: func(ctx context.Context, id int) (*models.Borrowing, error) { return nil, nil },
	}
	svc := NewBorrowingService(&mockBooks{}, borrowings)

	if _, err := svc.Renew(context.Background(), 404); !errors.Is(err, ErrBorrowingNotFound) {
		t.Fatalf("expected ErrBorrowingNotFound, got %v", err)
	}
}

func TestBorrowingService_Renew_DoesNotCheckReturnedFlag(t *testing.T) {
	borrowings := &mockBorrowings{
		GetByIDFn: func(ctx context.Context, id int) (*models.Borrowing, error) {
			return &models.Borrowing{ID: 1, DueDate: "2025-08-15", Returned: true}, nil
		},
	}
	svc := NewBorrowingService(&mockBooks{}, borrowings)

	got, err := svc.Renew(context.Background(), 1)
	if err != nil {
		t.Fatalf("renewing a returned borrowing should still work, got %v", err)
	}
	if got.DueDate != "2025-08-29" {
		t.Fatalf("expected due date 2025-08-29, got %q", got.DueDate)
	}
}

func TestBorrowingService_Return_ClosesLoanAndFreesBook(t *testing.T) {
	borrowings := &mockBorrowings{
		GetByIDFn: func(ctx context.Context, id int) (*models.Borrowing, error) {
			return &models.Borrowing{ID: 1, UserID: 7, BookID: 2, DueDate: "2025-08-15"}, nil
		},
	}
	svc := NewBorrowingService(&mockBooks{}, borrowings)

	got, err := svc.Return(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("Return returned error: %v", err)
	}
	if !got.Returned {
		t.Fatal("expected returned flag set")
	}
	if len(borrowings.closed) != 1 {
		t.Fatalf("expected 1 closed loan, got %d", len(borrowings.closed))
	}
	if closed := borrowings.closed[0]; !closed.Returned || closed.BookID != 2 {
		t.Fatalf("unexpected closed loan: %+v", closed)
	}
}

func TestBorrowingService_Return_ForeignLoanReadsAsNotFound(t *testing.T) {
	borrowings := &mockBorrowings{
		GetByIDFn: func(ctx context.Context, id int) (*models.Borrowing, error) {
			return &models.Borrowing{ID: 1, UserID: 99, BookID: 2}, nil
		},
	}
	svc := NewBorrowingService(&mockBooks{}, borrowings)

	if _, err := svc.Return(context.Background(), 7, 1); !errors.Is(err, ErrBorrowingNotFound) {
		t.Fatalf("expected ErrBorrowingNotFound, got %v", err)
	}
}

func TestBorrowingService_Return_AlreadyReturned(t *testing.T) {
	borrowings := &mockBorrowings{
		GetByIDFn: func(ctx context.Context, id int) (*models.Borrowing, error) {
			return &models.Borrowing{ID: 1, UserID: 7, BookID: 2, Returned: true}, nil
		},
	}
	svc := NewBorrowingService(&mockBooks{}, borrowings)

	if _, err := svc.Return(context.Background(), 7, 1); !errors.Is(err, ErrAlreadyReturned) {
		t.Fatalf("expected ErrAlreadyReturned, got %v", err)
	}
}

func TestBorrowingService_ListActive_DelegatesToRepo(t *testing.T) {
	want := []models.Borrowing{{ID: 1, UserID: 7, BookID: 2, DueDate: "2025-08-15"}}
	borrowings := &mockBorrowings{
		ListActiveByUserFn: func(ctx context.Context, userID int) ([]models.Borrowing, error) {
			if userID != 7 {
				t.Fatalf("expected user 7, got %d", userID)
			}
			return want, nil
		},
	}
	svc := NewBorrowingService(&mockBooks{}, borrowings)

	got, err := svc.ListActive(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListActive returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected result: %v", got)
	}
}
