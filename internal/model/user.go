package model

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// User represents a registered account.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	PasswordHashed string    `db:"password_hashed" json:"-"` // "-" hides from JSON output
	AboutMe        *string   `db:"about_me" json:"about_me"`
	AvatarURL      *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	AvatarKey      *string   `db:"avatar_key" json:"-"`
	LastSeen       time.Time `db:"last_seen" json:"last_seen"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Avatar returns the user's avatar URL at the given pixel size. Uploaded
// avatars win; otherwise a Gravatar identicon derived from the email.
func (u *User) Avatar(size int) string {
	if u.AvatarURL != nil && *u.AvatarURL != "" {
		return *u.AvatarURL
	}
	digest := md5.Sum([]byte(strings.ToLower(u.Email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon&s=%d",
		hex.EncodeToString(digest[:]), size)
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember_me"`
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	Username  string  `json:"username"`
	AboutMe   *string `json:"about_me"`
	AvatarURL *string `json:"-"`
	AvatarKey *string `json:"-"`
}

// ProfileResponse is the payload for GET /user/{username}. Posts holds
// one page of the user's posts; the URL links are filled by the HTTP layer.
type ProfileResponse struct {
	User           *User   `json:"user"`
	AvatarURL      string  `json:"avatar"`
	FollowerCount  int     `json:"follower_count"`
	FollowingCount int     `json:"following_count"`
	IsFollowing    bool    `json:"is_following"`
	Posts          []Post  `json:"posts"`
	NextURL        *string `json:"next_url,omitempty"`
	PrevURL        *string `json:"prev_url,omitempty"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to use a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrEmailExists is returned when attempting to use a taken email
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordMismatch is returned when password and its confirmation differ
	ErrPasswordMismatch = errors.New("passwords do not match")
)
