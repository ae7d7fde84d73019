package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"library_catalog/internal/models"
)

type SessionSQLite struct {
	db *sql.DB
}

func NewSessionSQLite(db *sql.DB) *SessionSQLite { return &SessionSQLite{db: db} }

var _ Sessions = (*SessionSQLite)(nil)

const (
	upsertSessionSQL = `
		INSERT INTO sessions (id, user_id, user_snapshot, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id=excluded.user_id,
			user_snapshot=excluded.user_snapshot,
			created_at=excluded.created_at
	`

	selectSessionSQL = `SELECT id, user_id, user_snapshot, created_at FROM sessions WHERE id = ?`

	deleteSessionSQL = `DELETE FROM sessions WHERE id = ?`

	refreshSnapshotsSQL = `UPDATE sessions SET user_snapshot = ? WHERE user_id = ?`
)

// snapshotUser carries the hash through serialization; the durable copy is the
// whole user record, and models.User hides PasswordHash from JSON on purpose.
type snapshotUser struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

func marshalSnapshot(u models.User) (string, error) {
	b, err := jsoniter.ConfigFastest.Marshal(snapshotUser(u))
	if err != nil {
		return "", fmt.Errorf("marshal user snapshot: %w", err)
	}
	return string(b), nil
}

func unmarshalSnapshot(s string) (models.User, error) {
	var su snapshotUser
	if err := jsoniter.ConfigFastest.Unmarshal([]byte(s), &su); err != nil {
		return models.User{}, fmt.Errorf("unmarshal user snapshot: %w", err)
	}
	return models.User(su), nil
}

// Save inserts or replaces a session row, serializing the user snapshot.
func (r *SessionSQLite) Save(ctx context.Context, s models.Session) error {
	snapshot, err := marshalSnapshot(s.User)
	if err != nil {
		return err
	}

	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	} else {
		createdAt = createdAt.UTC()
	}

	_, err = r.db.ExecContext(ctx, upsertSessionSQL, s.ID, s.UserID, snapshot, createdAt)
	if err != nil {
		return fmt.Errorf("save session %q: %w", s.ID, err)
	}
	return nil
}

// Get fetches a session by id. Returns (nil, nil) if not found.
func (r *SessionSQLite) Get(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	var snapshot string
	err := r.db.QueryRowContext(ctx, selectSessionSQL, id).
		Scan(&s.ID, &s.UserID, &snapshot, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session %q: %w", id, err)
	}

	user, err := unmarshalSnapshot(snapshot)
	if err != nil {
		return nil, err
	}
	s.User = user
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}

// Delete removes a session row. Deleting a missing session is not an error.
func (r *SessionSQLite) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionSQL, id); err != nil {
		return fmt.Errorf("delete session %q: %w", id, err)
	}
	return nil
}

// RefreshUser rewrites the serialized snapshot in every session belonging to
// the user, keeping durable copies in step after a profile update.
func (r *SessionSQLite) RefreshUser(ctx context.Context, u models.User) error {
	snapshot, err := marshalSnapshot(u)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, refreshSnapshotsSQL, snapshot, u.ID); err != nil {
		return fmt.Errorf("refresh sessions for user %d: %w", u.ID, err)
	}
	return nil
}
