package repository

import (
	"context"
	"database/sql"

	"library_catalog/internal/models"
)

type Users interface {
	Create(name, email, passwordHash string) (int, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	Update(ctx context.Context, u models.User) error
}

type Books interface {
	List(ctx context.Context) ([]models.Book, error)
	ListAvailable(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id int) (*models.Book, error)
}

// Borrowings owns loan records together with the availability flag of the
// books they hold: opening and closing a loan touches both tables in one
// transaction so the two can never drift apart.
type Borrowings interface {
	OpenLoan(ctx context.Context, b models.Borrowing) (int, error)
	GetByID(ctx context.Context, id int) (*models.Borrowing, error)
	Update(ctx context.Context, b models.Borrowing) error
	CloseLoan(ctx context.Context, b models.Borrowing) error
	ListActiveByUser(ctx context.Context, userID int) ([]models.Borrowing, error)
}

type Sessions interface {
	Save(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	RefreshUser(ctx context.Context, u models.User) error
}

type Repository struct {
	Users      Users
	Books      Books
	Borrowings Borrowings
	Sessions   Sessions
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:      NewUserRepository(db),
		Books:      NewBookSQLite(db),
		Borrowings: NewBorrowingSQLite(db),
		Sessions:   NewSessionSQLite(db),
	}
}
