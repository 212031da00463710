package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"

	"microblog/internal/config"
)

func Connect(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Msg("Connected to database")
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sqlx.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(64) NOT NULL UNIQUE,
		email VARCHAR(120) NOT NULL UNIQUE,
		password_hashed VARCHAR(128) NOT NULL,
		about_me VARCHAR(140),
		avatar_url TEXT,
		avatar_key TEXT,
		last_seen TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_users_username ON users (username);
	CREATE INDEX IF NOT EXISTS idx_users_email ON users (email);

	CREATE TABLE IF NOT EXISTS posts (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		body VARCHAR(140) NOT NULL,
		language VARCHAR(5) NOT NULL DEFAULT '',
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_posts_timestamp ON posts (timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts (user_id);

	CREATE TABLE IF NOT EXISTS followers (
		follower_id BIGINT NOT NULL REFERENCES users(id),
		followed_id BIGINT NOT NULL REFERENCES users(id),
		PRIMARY KEY (follower_id, followed_id)
	);
	CREATE INDEX IF NOT EXISTS idx_followers_followed ON followers (followed_id);

	CREATE TABLE IF NOT EXISTS remember_tokens (
		id UUID PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		token_hash VARCHAR(64) NOT NULL UNIQUE,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		revoked_at TIMESTAMPTZ
	);
	CREATE INDEX IF NOT EXISTS idx_remember_tokens_user ON remember_tokens (user_id);
	`
	if _, err := db.Exec(sqlStmt); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
