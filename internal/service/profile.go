package service

import (
	"context"
	"errors"

	"library_catalog/internal/models"
	"library_catalog/internal/repository"
)

// ProfileUpdate carries the editable profile fields. The password trio is
// optional: an empty NewPassword means the credential stays untouched.
type ProfileUpdate struct {
	Name            string
	Email           string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// Domain errors for profile flows.
var (
	ErrPasswordMismatch       = errors.New("new passwords do not match")
	ErrMissingCurrentPassword = errors.New("current password is required")
	ErrWrongCurrentPassword   = errors.New("current password is incorrect")
	ErrUserNotFound           = errors.New("user not found")
)

// Fixed cosmetic reading statistics shown on the profile page.
var profileStats = models.ReadingStats{
	BooksRead:     12,
	ReadingDays:   84,
	FavoritePages: 327,
	Ranking:       "#8",
}

type ProfileService struct {
	users    repository.Users
	sessions repository.Sessions
}

func NewProfileService(users repository.Users, sessions repository.Sessions) *ProfileService {
	return &ProfileService{users: users, sessions: sessions}
}

// Get returns the profile view model for the signed-in user.
func (s *ProfileService) Get(ctx context.Context, userID int) (models.ProfileSummary, error) {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return models.ProfileSummary{}, err
	}
	if u == nil {
		return models.ProfileSummary{}, ErrUserNotFound
	}
	return models.ProfileSummary{
		Name:  u.Name,
		Email: u.Email,
		Stats: profileStats,
	}, nil
}

// Update edits name/email and optionally rotates the password. The update is
// atomic: every validation, including the current-password check, runs before
// anything is written, so a rejected password change leaves name and email
// untouched as well. On success the durable session snapshots of the user are
// refreshed.
func (s *ProfileService) Update(ctx context.Context, userID int, p ProfileUpdate) (models.User, error) {
	if p.Name == "" || p.Email == "" {
		return models.User{}, ErrMissingField
	}
	if p.NewPassword != "" && p.NewPassword != p.ConfirmPassword {
		return models.User{}, ErrPasswordMismatch
	}
	if p.NewPassword != "" && p.CurrentPassword == "" {
		return models.User{}, ErrMissingCurrentPassword
	}

	u, err := s.users.GetByID(userID)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUserNotFound
	}

	if p.NewPassword != "" {
		if err := verifyPassword(u.PasswordHash, p.CurrentPassword); err != nil {
			return models.User{}, ErrWrongCurrentPassword
		}
		hash, err := hashPassword(p.NewPassword)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = hash
	}

	u.Name = p.Name
	u.Email = p.Email

	if err := s.users.Update(ctx, *u); err != nil {
		return models.User{}, err
	}
	if err := s.sessions.RefreshUser(ctx, *u); err != nil {
		return models.User{}, err
	}
	return *u, nil
}
