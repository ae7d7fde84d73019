package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library_catalog/internal/models"
	"library_catalog/internal/repository"
)

const (
	tokenTTL   = time.Hour   // 1 hour
	signingKey = "asd234asd" // TODO: move to config
)

// Domain errors for auth flows.
var (
	ErrMissingField       = errors.New("all fields are required")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("no stored session")
)

// AuthService handles registration, sign-in and the durable session mirror.
type AuthService struct {
	users    repository.Users
	sessions repository.Sessions
}

func NewAuthService(users repository.Users, sessions repository.Sessions) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// SignUp registers a new reader. All fields are required and the email must
// not be taken (exact, case-sensitive comparison). Does NOT sign the user in.
func (s *AuthService) SignUp(name, email, password string) (int, error) {
	if name == "" || email == "" || password == "" {
		return 0, ErrMissingField
	}

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrDuplicateEmail
	}

	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	return s.users.Create(name, email, hash)
}

// Claims defines JWT claims. The registered ID (jti) is the session key in
// durable storage.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// SignIn validates credentials, mirrors the user into the sessions store and
// returns a signed token. A wrong email and a wrong password are not
// distinguished: both fail with ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, models.User, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		return "", models.User{}, err
	}
	if u == nil {
		return "", models.User{}, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Save(ctx, models.Session{
		ID:        sessionID,
		UserID:    u.ID,
		User:      *u,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return "", models.User{}, err
	}

	token, err := issueToken(u.ID, sessionID)
	if err != nil {
		return "", models.User{}, err
	}
	return token, *u, nil
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	claims, err := s.parseClaims(accessToken)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// RestoreSession returns the user snapshot persisted at sign-in. The stored
// copy is trusted as-is; it is not re-checked against the users table, so it
// reflects the user as of the last sign-in or profile update.
func (s *AuthService) RestoreSession(ctx context.Context, accessToken string) (models.User, error) {
	claims, err := s.parseClaims(accessToken)
	if err != nil {
		return models.User{}, err
	}

	sess, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return models.User{}, err
	}
	if sess == nil {
		return models.User{}, ErrSessionNotFound
	}
	return sess.User, nil
}

// Logout drops the durable session entry. Logging out twice is harmless.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.parseClaims(accessToken)
	if err != nil {
		return err
	}
	return s.sessions.Delete(ctx, claims.ID)
}

func (s *AuthService) parseClaims(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(signingKey), nil
	})
	if err != nil {
		// Expired and malformed tokens both mean the caller is signed out.
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT bound to a stored session
func issueToken(userID int, sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(signingKey))
}
