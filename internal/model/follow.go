package model

import "errors"

// Follow is a directed edge in the social graph: the follower receives
// the followed user's posts in their feed.
type Follow struct {
	FollowerID int64 `db:"follower_id" json:"follower_id"`
	FollowedID int64 `db:"followed_id" json:"followed_id"`
}

// UserSummary is the lightweight author representation embedded in posts.
type UserSummary struct {
	ID       int64   `db:"id" json:"id"`
	Username string  `db:"username" json:"username"`
	Email    string  `db:"email" json:"-"`
	AboutMe  *string `db:"about_me" json:"about_me,omitempty"`
}

var (
	// ErrCannotFollowSelf is returned when a user tries to follow or
	// unfollow their own account.
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)
