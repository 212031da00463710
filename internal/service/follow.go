package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"microblog/internal/model"
	"microblog/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the follow edge toward the named user. Following a user
// who is already followed is a no-op, not an error.
func (s *FollowService) Follow(ctx context.Context, followerID int64, username string) (*model.User, error) {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if target.ID == followerID {
		return nil, model.ErrCannotFollowSelf
	}

	inserted, err := s.followRepo.Create(ctx, followerID, target.ID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		log.Debug().Int64("follower", followerID).Str("username", username).
			Msg("follow edge already present")
	}

	return target, nil
}

// Unfollow removes the follow edge toward the named user. Unfollowing a
// user who is not followed is a no-op, not an error.
func (s *FollowService) Unfollow(ctx context.Context, followerID int64, username string) (*model.User, error) {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if target.ID == followerID {
		return nil, model.ErrCannotFollowSelf
	}

	deleted, err := s.followRepo.Delete(ctx, followerID, target.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		log.Debug().Int64("follower", followerID).Str("username", username).
			Msg("follow edge already absent")
	}

	return target, nil
}

// IsFollowing reports whether follower currently follows followed.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followedID)
}
