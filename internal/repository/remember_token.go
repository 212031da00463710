package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"microblog/internal/model"
)

type rememberTokenRepository struct {
	db *sqlx.DB
}

func NewRememberTokenRepository(db *sqlx.DB) RememberTokenRepository {
	return &rememberTokenRepository{db: db}
}

// Create inserts a new remember token, assigning its id.
func (r *rememberTokenRepository) Create(ctx context.Context, token *model.RememberToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}

	query := `
		INSERT INTO remember_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`
	row := r.db.QueryRowxContext(ctx, query, token.ID, token.UserID, token.TokenHash, token.ExpiresAt)
	if err := row.Scan(&token.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert remember token: %w", err)
	}

	return nil
}

func (r *rememberTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RememberToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, created_at, revoked_at
		FROM remember_tokens
		WHERE token_hash = $1
	`

	var token model.RememberToken
	err := r.db.GetContext(ctx, &token, query, tokenHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrRememberTokenNotFound
		}
		return nil, fmt.Errorf("failed to find remember token: %w", err)
	}

	return &token, nil
}

func (r *rememberTokenRepository) Revoke(ctx context.Context, id string) error {
	query := `UPDATE remember_tokens SET revoked_at = NOW() WHERE id = $1 AND revoked_at IS NULL`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to revoke remember token: %w", err)
	}
	return nil
}

func (r *rememberTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	query := `UPDATE remember_tokens SET revoked_at = NOW() WHERE user_id = $1 AND revoked_at IS NULL`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke user remember tokens: %w", err)
	}
	return nil
}

// DeleteExpired removes tokens that expired more than olderThan ago.
func (r *rememberTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `DELETE FROM remember_tokens WHERE expires_at < $1`
	result, err := r.db.ExecContext(ctx, query, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}
