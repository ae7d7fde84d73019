package service

import (
	"context"

	"library_catalog/internal/models"
	"library_catalog/internal/repository"
)

type Authorization interface {
	SignUp(name, email, password string) (int, error)
	SignIn(ctx context.Context, email, password string) (string, models.User, error)
	ParseToken(accessToken string) (int, error)
	RestoreSession(ctx context.Context, accessToken string) (models.User, error)
	Logout(ctx context.Context, accessToken string) error
}

// Catalog exposes read-only views of the book set.
type Catalog interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	ListAvailable(ctx context.Context) ([]models.Book, error)
	Recommend(ctx context.Context, n int) ([]models.Book, error)
}

// Borrowing owns loan records and the availability flag of the books they hold.
type Borrowing interface {
	Reserve(ctx context.Context, userID, bookID int) (models.Borrowing, error)
	Renew(ctx context.Context, borrowingID int) (models.Borrowing, error)
	Return(ctx context.Context, userID, borrowingID int) (models.Borrowing, error)
	ListActive(ctx context.Context, userID int) ([]models.Borrowing, error)
}

// Profile reads and updates the signed-in user's identity and credentials.
type Profile interface {
	Get(ctx context.Context, userID int) (models.ProfileSummary, error)
	Update(ctx context.Context, userID int, p ProfileUpdate) (models.User, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Catalog
	Borrowing
	Profile
	Authorization
}

// NewService wires repository layer into concrete services.
func NewService(repos *repository.Repository) *Service {
	return &Service{
		Catalog:       NewCatalogService(repos.Books),
		Borrowing:     NewBorrowingService(repos.Books, repos.Borrowings),
		Profile:       NewProfileService(repos.Users, repos.Sessions),
		Authorization: NewAuthService(repos.Users, repos.Sessions),
	}
}
