package model

import (
	"errors"
	"time"
)

// Post is a single microblog entry.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Body      string    `db:"body" json:"body"`
	Language  string    `db:"language" json:"language"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`

	// Joined field (not in posts table)
	Author *UserSummary `json:"author,omitempty"`
}

// CreatePostRequest is the request body for posting from the index page.
type CreatePostRequest struct {
	Body string `json:"body"`
}

// PostPage is one page of a timestamp-descending post listing.
// HasNext/HasPrev drive the next_url/prev_url links in the HTTP layer;
// an out-of-range page is an empty Posts slice with both flags false.
type PostPage struct {
	Posts   []Post `json:"posts"`
	Page    int    `json:"page"`
	HasNext bool   `json:"-"`
	HasPrev bool   `json:"-"`
}

// PostListResponse is the HTTP shape of a post page with pagination links.
type PostListResponse struct {
	Posts   []Post  `json:"posts"`
	Page    int     `json:"page"`
	NextURL *string `json:"next_url,omitempty"`
	PrevURL *string `json:"prev_url,omitempty"`
}

const (
	// MaxPostBodyLength mirrors the storage width of posts.body.
	MaxPostBodyLength = 140

	// MaxLanguageTagLength mirrors the storage width of posts.language.
	// Longer detected codes are normalized to the empty tag.
	MaxLanguageTagLength = 5
)

// Post errors
var (
	ErrPostNotFound = errors.New("post not found")
	ErrBodyRequired = errors.New("post body is required")
	ErrBodyTooLong  = errors.New("post body too long")
)
