package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"library_catalog/internal/models"
	"library_catalog/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID   int
	signUpErr  error
	signInTok  string
	signInUser models.User
	signInErr  error
	parseID    int
	parseErr   error
	restored   models.User
	restoreErr error
	logoutErr  error

	lastSignUpName  string
	lastSignUpEmail string
	lastSignInEmail string
	lastParseToken  string
	logoutCalls     int
}

func (m *mockAuth) SignUp(name, email, password string) (int, error) {
	m.lastSignUpName = name
	m.lastSignUpEmail = email
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) SignIn(ctx context.Context, email, password string) (string, models.User, error) {
	m.lastSignInEmail = email
	return m.signInTok, m.signInUser, m.signInErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockAuth) RestoreSession(ctx context.Context, token string) (models.User, error) {
	return m.restored, m.restoreErr
}
func (m *mockAuth) Logout(ctx context.Context, token string) error {
	m.logoutCalls++
	return m.logoutErr
}

type mockCatalog struct {
	books     []models.Book
	available []models.Book
	err       error

	lastRecommendN int
}

func (m *mockCatalog) ListBooks(ctx context.Context) ([]models.Book, error) {
	return m.books, m.err
}
func (m *mockCatalog) ListAvailable(ctx context.Context) ([]models.Book, error) {
	return m.available, m.err
}
func (m *mockCatalog) Recommend(ctx context.Context, n int) ([]models.Book, error) {
	m.lastRecommendN = n
	if m.err != nil {
		return nil, m.err
	}
	if n <= 0 {
		n = service.DefaultRecommendations
	}
	if len(m.available) > n {
		return m.available[:n], nil
	}
	return m.available, nil
}

type mockBorrowing struct {
	reserved   models.Borrowing
	reserveErr error
	renewed    models.Borrowing
	renewErr   error
	returned   models.Borrowing
	returnErr  error
	active     []models.Borrowing
	listErr    error

	lastReserveUser int
	lastReserveBook int
	lastRenewID     int
	lastReturnID    int
}

func (m *mockBorrowing) Reserve(ctx context.Context, userID, bookID int) (models.Borrowing, error) {
	m.lastReserveUser = userID
	m.lastReserveBook = bookID
	return m.reserved, m.reserveErr
}
func (m *mockBorrowing) Renew(ctx context.Context, borrowingID int) (models.Borrowing, error) {
	m.lastRenewID = borrowingID
	return m.renewed, m.renewErr
}
func (m *mockBorrowing) Return(ctx context.Context, userID, borrowingID int) (models.Borrowing, error) {
	m.lastReturnID = borrowingID
	return m.returned, m.returnErr
}
func (m *mockBorrowing) ListActive(ctx context.Context, userID int) ([]models.Borrowing, error) {
	return m.active, m.listErr
}

type mockProfile struct {
	summary   models.ProfileSummary
	getErr    error
	updated   models.User
	updateErr error

	lastUpdate service.ProfileUpdate
}

func (m *mockProfile) Get(ctx context.Context, userID int) (models.ProfileSummary, error) {
	return m.summary, m.getErr
}
func (m *mockProfile) Update(ctx context.Context, userID int, p service.ProfileUpdate) (models.User, error) {
	m.lastUpdate = p
	return m.updated, m.updateErr
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
