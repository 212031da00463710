package repository

import (
	"context"
	"time"

	"microblog/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHashed string) error
	TouchLastSeen(ctx context.Context, userID int64, seenAt time.Time) error
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// ListFollowed returns posts authored by users the given user follows,
	// plus the user's own posts, newest first. Callers pass limit+1 to
	// detect whether a further page exists.
	ListFollowed(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error)
	ListAll(ctx context.Context, limit, offset int) ([]model.Post, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error)
}

type FollowRepository interface {
	// Create inserts the follow edge; returns false when it already existed.
	Create(ctx context.Context, followerID, followedID int64) (bool, error)
	// Delete removes the follow edge; returns false when it did not exist.
	Delete(ctx context.Context, followerID, followedID int64) (bool, error)
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	CountFollowers(ctx context.Context, userID int64) (int, error)
	CountFollowing(ctx context.Context, userID int64) (int, error)
}

type RememberTokenRepository interface {
	Create(ctx context.Context, token *model.RememberToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RememberToken, error)
	Revoke(ctx context.Context, id string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}
