package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"microblog/internal/model"
	"microblog/internal/repository"
)

// UserService handles business logic for accounts and profiles.
type UserService struct {
	repo       repository.UserRepository
	followRepo repository.FollowRepository
}

func NewUserService(repo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{
		repo:       repo,
		followRepo: followRepo,
	}
}

// Register creates a new user account. Duplicate checks are exact,
// case-sensitive matches on username and email.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address")
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if req.Password != req.Password2 {
		return nil, model.ErrPasswordMismatch
	}

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	exists, err = s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	// Hash the password; the raw value is never stored
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       username,
		Email:          email,
		PasswordHashed: string(hashedPassword),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user with username and password.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		// Don't reveal whether the username exists
		return nil, model.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password))
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email; used by the password-reset flow.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// GetProfile retrieves a user's profile with follow counts and the
// viewer's follow relationship.
func (s *UserService) GetProfile(ctx context.Context, username string, viewerID *int64) (*model.ProfileResponse, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	profile := &model.ProfileResponse{
		User:      user,
		AvatarURL: user.Avatar(128),
	}

	if profile.FollowerCount, err = s.followRepo.CountFollowers(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}
	if profile.FollowingCount, err = s.followRepo.CountFollowing(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to count following: %w", err)
	}

	if viewerID != nil && *viewerID != user.ID {
		if profile.IsFollowing, err = s.followRepo.Exists(ctx, *viewerID, user.ID); err != nil {
			return nil, fmt.Errorf("failed to check follow state: %w", err)
		}
	}

	return profile, nil
}

// UpdateProfile applies the editable profile fields. A username change
// re-runs the uniqueness check against other accounts.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	if username != user.Username {
		exists, err := s.repo.ExistsByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if exists {
			return nil, model.ErrUsernameExists
		}
	}

	user.Username = username
	if req.AboutMe != nil {
		user.AboutMe = req.AboutMe
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
		user.AvatarKey = req.AvatarKey
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SetPassword overwrites the user's password hash.
func (s *UserService) SetPassword(ctx context.Context, userID int64, password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(hashedPassword))
}

// TouchLastSeen records presence for the user.
func (s *UserService) TouchLastSeen(ctx context.Context, userID int64) error {
	return s.repo.TouchLastSeen(ctx, userID, time.Now().UTC())
}
