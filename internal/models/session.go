package models

import "time"

// Session mirrors the authenticated user into durable storage.
// User is the snapshot persisted at sign-in (or refreshed on profile update);
// restoring a session returns this copy, not a fresh read of the users table.
type Session struct {
	ID        string    `json:"id"` // uuid, doubles as the token's jti claim
	UserID    int       `json:"user_id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
