package model

import (
	"errors"
	"time"
)

// RememberToken is the persistent credential behind the "remember me"
// login flag. The raw value lives only in the client cookie; the database
// stores a sha256 hash.
type RememberToken struct {
	ID        string     `db:"id" json:"id"`
	UserID    int64      `db:"user_id" json:"user_id"`
	TokenHash string     `db:"token_hash" json:"-"` // Never expose hash
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
}

// IsValid returns true if the token is not expired and not revoked
func (t *RememberToken) IsValid() bool {
	return t.RevokedAt == nil && time.Now().Before(t.ExpiresAt)
}

var (
	ErrRememberTokenNotFound = errors.New("remember token not found")
	ErrRememberTokenExpired  = errors.New("remember token expired")
)

// LoginResponse is returned after successful login. Redirect carries the
// sanitized "next" target the client should navigate to.
type LoginResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	Redirect    string `json:"redirect"`
}
