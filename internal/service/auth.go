package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"microblog/internal/config"
	"microblog/internal/model"
	"microblog/internal/repository"
)

// resetPasswordClaim is the JWT claim carrying the user id of a reset token.
const resetPasswordClaim = "reset_password"

// ErrInvalidResetToken covers every reset-token verification failure: bad
// signature, expired, malformed, or wrong shape. Callers must not
// distinguish between causes.
var ErrInvalidResetToken = errors.New("invalid reset token")

// AuthService issues and verifies the three credentials of the system:
// short-lived access tokens, persistent remember tokens, and self-expiring
// password-reset tokens.
type AuthService struct {
	rememberRepo repository.RememberTokenRepository
	config       *config.Config
}

func NewAuthService(rememberRepo repository.RememberTokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		rememberRepo: rememberRepo,
		config:       cfg,
	}
}

// GenerateAccessToken issues a signed session token for the user.
func (s *AuthService) GenerateAccessToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Duration(s.config.AccessTokenMaxAge) * time.Second).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SecretKey))
}

// GenerateRememberToken persists a long-lived credential and returns the
// raw value for the client cookie. Only the sha256 hash is stored.
func (s *AuthService) GenerateRememberToken(ctx context.Context, userID int64) (string, error) {
	raw := uuid.New().String()

	token := &model.RememberToken{
		UserID:    userID,
		TokenHash: s.hashToken(raw),
		ExpiresAt: time.Now().Add(time.Duration(s.config.RememberTokenMaxAge) * time.Second),
	}

	if err := s.rememberRepo.Create(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store remember token: %w", err)
	}

	return raw, nil
}

// RefreshFromRemember exchanges a valid remember token for a fresh access
// token. Used by the session middleware when the access cookie is gone.
func (s *AuthService) RefreshFromRemember(ctx context.Context, raw string) (string, error) {
	token, err := s.rememberRepo.FindByTokenHash(ctx, s.hashToken(raw))
	if err != nil {
		return "", model.ErrRememberTokenNotFound
	}

	if !token.IsValid() {
		return "", model.ErrRememberTokenExpired
	}

	return s.GenerateAccessToken(token.UserID)
}

// RevokeRememberToken invalidates the remember token behind the raw cookie value.
func (s *AuthService) RevokeRememberToken(ctx context.Context, raw string) error {
	token, err := s.rememberRepo.FindByTokenHash(ctx, s.hashToken(raw))
	if err != nil {
		return err
	}
	return s.rememberRepo.Revoke(ctx, token.ID)
}

// RevokeAllRememberTokens logs the user out of every remembered session.
func (s *AuthService) RevokeAllRememberTokens(ctx context.Context, userID int64) error {
	return s.rememberRepo.RevokeAllForUser(ctx, userID)
}

// GenerateResetToken issues a stateless password-reset token embedding the
// user id and its own expiry.
func (s *AuthService) GenerateResetToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		resetPasswordClaim: userID,
		"exp":              time.Now().Add(time.Duration(s.config.PasswordResetExpires) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SecretKey))
}

// VerifyResetToken checks signature and expiry and returns the embedded
// user id. Every failure collapses into ErrInvalidResetToken.
func (s *AuthService) VerifyResetToken(raw string) (int64, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidResetToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidResetToken
	}

	userIDFloat, ok := claims[resetPasswordClaim].(float64)
	if !ok {
		return 0, ErrInvalidResetToken
	}

	return int64(userIDFloat), nil
}

func (s *AuthService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
