package service

import (
	"context"
	"time"

	"microblog/internal/model"
)

// In unit tests, we don't want to hit a real database. These mocks
// implement the repository interfaces with per-test function fields.

type mockUserRepository struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	getByEmailFn       func(ctx context.Context, email string) (*model.User, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	existsByEmailFn    func(ctx context.Context, email string) (bool, error)
	updateProfileFn    func(ctx context.Context, user *model.User) error
	updatePasswordFn   func(ctx context.Context, userID int64, passwordHashed string) error
	touchLastSeenFn    func(ctx context.Context, userID int64, seenAt time.Time) error

	// Track calls for assertions
	createCalls         []*model.User
	updatePasswordCalls []int64
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHashed string) error {
	m.updatePasswordCalls = append(m.updatePasswordCalls, userID)
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, userID, passwordHashed)
	}
	return nil
}

func (m *mockUserRepository) TouchLastSeen(ctx context.Context, userID int64, seenAt time.Time) error {
	if m.touchLastSeenFn != nil {
		return m.touchLastSeenFn(ctx, userID, seenAt)
	}
	return nil
}

type mockPostRepository struct {
	createFn       func(ctx context.Context, post *model.Post) error
	listFollowedFn func(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error)
	listAllFn      func(ctx context.Context, limit, offset int) ([]model.Post, error)
	listByUserFn   func(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error)

	createCalls []*model.Post
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	m.createCalls = append(m.createCalls, post)
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) ListFollowed(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error) {
	if m.listFollowedFn != nil {
		return m.listFollowedFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) ListAll(ctx context.Context, limit, offset int) ([]model.Post, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

type mockFollowRepository struct {
	createFn         func(ctx context.Context, followerID, followedID int64) (bool, error)
	deleteFn         func(ctx context.Context, followerID, followedID int64) (bool, error)
	existsFn         func(ctx context.Context, followerID, followedID int64) (bool, error)
	countFollowersFn func(ctx context.Context, userID int64) (int, error)
	countFollowingFn func(ctx context.Context, userID int64) (int, error)

	createCalls [][2]int64
	deleteCalls [][2]int64
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, followedID int64) (bool, error) {
	m.createCalls = append(m.createCalls, [2]int64{followerID, followedID})
	if m.createFn != nil {
		return m.createFn(ctx, followerID, followedID)
	}
	return true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, followedID int64) (bool, error) {
	m.deleteCalls = append(m.deleteCalls, [2]int64{followerID, followedID})
	if m.deleteFn != nil {
		return m.deleteFn(ctx, followerID, followedID)
	}
	return true, nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followedID)
	}
	return false, nil
}

func (m *mockFollowRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	if m.countFollowersFn != nil {
		return m.countFollowersFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockFollowRepository) CountFollowing(ctx context.Context, userID int64) (int, error) {
	if m.countFollowingFn != nil {
		return m.countFollowingFn(ctx, userID)
	}
	return 0, nil
}

type mockRememberTokenRepository struct {
	createFn          func(ctx context.Context, token *model.RememberToken) error
	findByTokenHashFn func(ctx context.Context, tokenHash string) (*model.RememberToken, error)
	revokeFn          func(ctx context.Context, id string) error
	revokeAllFn       func(ctx context.Context, userID int64) error

	createCalls []*model.RememberToken
	revokeCalls []string
}

func (m *mockRememberTokenRepository) Create(ctx context.Context, token *model.RememberToken) error {
	m.createCalls = append(m.createCalls, token)
	if m.createFn != nil {
		return m.createFn(ctx, token)
	}
	return nil
}

func (m *mockRememberTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RememberToken, error) {
	if m.findByTokenHashFn != nil {
		return m.findByTokenHashFn(ctx, tokenHash)
	}
	return nil, model.ErrRememberTokenNotFound
}

func (m *mockRememberTokenRepository) Revoke(ctx context.Context, id string) error {
	m.revokeCalls = append(m.revokeCalls, id)
	if m.revokeFn != nil {
		return m.revokeFn(ctx, id)
	}
	return nil
}

func (m *mockRememberTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	if m.revokeAllFn != nil {
		return m.revokeAllFn(ctx, userID)
	}
	return nil
}

func (m *mockRememberTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}
