package service

import (
	"context"

	"library_catalog/internal/models"
)

// Lightweight in-test mocks for the repository interfaces. Each records its
// calls and delegates to an optional func field; a nil func means the call is
// unexpected and will panic, which the tests treat as a failure.

type mockUsers struct {
	CreateFn     func(name, email, hash string) (int, error)
	GetByEmailFn func(email string) (*models.User, error)
	GetByIDFn    func(id int) (*models.User, error)
	UpdateFn     func(ctx context.Context, u models.User) error

	createCalls []struct{ name, email, hash string }
	emailCalls  []string
	idCalls     []int
	updateCalls []models.User
}

func (m *mockUsers) Create(name, email, hash string) (int, error) {
	m.createCalls = append(m.createCalls, struct{ name, email, hash string }{name, email, hash})
	return m.CreateFn(name, email, hash)
}

func (m *mockUsers) GetByEmail(email string) (*models.User, error) {
	m.emailCalls = append(m.emailCalls, email)
	return m.GetByEmailFn(email)
}

func (m *mockUsers) GetByID(id int) (*models.User, error) {
	m.idCalls = append(m.idCalls, id)
	return m.GetByIDFn(id)
}

func (m *mockUsers) Update(ctx context.Context, u models.User) error {
	m.updateCalls = append(m.updateCalls, u)
	return m.UpdateFn(ctx, u)
}

type mockSessions struct {
	SaveFn    func(ctx context.Context, s models.Session) error
	GetFn     func(ctx context.Context, id string) (*models.Session, error)
	DeleteFn  func(ctx context.Context, id string) error
	RefreshFn func(ctx context.Context, u models.User) error

	saved     []models.Session
	getCalls  []string
	deleted   []string
	refreshed []models.User
}

func (m *mockSessions) Save(ctx context.Context, s models.Session) error {
	m.saved = append(m.saved, s)
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}

func (m *mockSessions) Get(ctx context.Context, id string) (*models.Session, error) {
	m.getCalls = append(m.getCalls, id)
	return m.GetFn(ctx, id)
}

func (m *mockSessions) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *mockSessions) RefreshUser(ctx context.Context, u models.User) error {
	m.refreshed = append(m.refreshed, u)
	if m.RefreshFn != nil {
		return m.RefreshFn(ctx, u)
	}
	return nil
}

type mockBooks struct {
	ListFn          func(ctx context.Context) ([]models.Book, error)
	ListAvailableFn func(ctx context.Context) ([]models.Book, error)
	GetByIDFn       func(ctx context.Context, id int) (*models.Book, error)
}

func (m *mockBooks) List(ctx context.Context) ([]models.Book, error) {
	return m.ListFn(ctx)
}

func (m *mockBooks) ListAvailable(ctx context.Context) ([]models.Book, error) {
	return m.ListAvailableFn(ctx)
}

func (m *mockBooks) GetByID(ctx context.Context, id int) (*models.Book, error) {
	return m.GetByIDFn(ctx, id)
}

type mockBorrowings struct {
	OpenLoanFn         func(ctx context.Context, b models.Borrowing) (int, error)
	GetByIDFn          func(ctx context.Context, id int) (*models.Borrowing, error)
	UpdateFn           func(ctx context.Context, b models.Borrowing) error
	CloseLoanFn        func(ctx context.Context, b models.Borrowing) error
	ListActiveByUserFn func(ctx context.Context, userID int) ([]models.Borrowing, error)

	opened  []models.Borrowing
	closed  []models.Borrowing
	updated []models.Borrowing
}

func (m *mockBorrowings) OpenLoan(ctx context.Context, b models.Borrowing) (int, error) {
	m.opened = append(m.opened, b)
	return m.OpenLoanFn(ctx, b)
}

func (m *mockBorrowings) CloseLoan(ctx context.Context, b models.Borrowing) error {
	m.closed = append(m.closed, b)
	if m.CloseLoanFn != nil {
		return m.CloseLoanFn(ctx, b)
	}
	return nil
}

func (m *mockBorrowings) GetByID(ctx context.Context, id int) (*models.Borrowing, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockBorrowings) Update(ctx context.Context, b models.Borrowing) error {
	m.updated = append(m.updated, b)
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, b)
	}
	return nil
}

func (m *mockBorrowings) ListActiveByUser(ctx context.Context, userID int) ([]models.Borrowing, error) {
	return m.ListActiveByUserFn(ctx, userID)
}
