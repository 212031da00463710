package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"microblog/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post. Timestamp defaults server-side.
func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (user_id, body, language)
		VALUES ($1, $2, $3)
		RETURNING id, timestamp
	`
	row := r.db.QueryRowxContext(ctx, query, p.UserID, p.Body, p.Language)
	if err := row.Scan(&p.ID, &p.Timestamp); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// postRow carries a post joined with its author columns.
type postRow struct {
	ID             int64     `db:"id"`
	UserID         int64     `db:"user_id"`
	Body           string    `db:"body"`
	Language       string    `db:"language"`
	Timestamp      time.Time `db:"timestamp"`
	AuthorUsername string    `db:"author_username"`
	AuthorEmail    string    `db:"author_email"`
	AuthorAboutMe  *string   `db:"author_about_me"`
}

const postSelect = `
	SELECT p.id, p.user_id, p.body, p.language, p.timestamp,
	       u.username AS author_username, u.email AS author_email, u.about_me AS author_about_me
	FROM posts p
	JOIN users u ON u.id = p.user_id
`

// ListFollowed returns the union of the user's own posts and posts by
// users they follow, newest first.
func (r *postRepository) ListFollowed(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error) {
	query := postSelect + `
		WHERE p.user_id = $1
		   OR p.user_id IN (SELECT followed_id FROM followers WHERE follower_id = $1)
		ORDER BY p.timestamp DESC
		LIMIT $2 OFFSET $3
	`

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list followed posts: %w", err)
	}

	return buildPosts(rows), nil
}

// ListAll returns every post, newest first (the explore stream).
func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]model.Post, error) {
	query := postSelect + `
		ORDER BY p.timestamp DESC
		LIMIT $1 OFFSET $2
	`

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return buildPosts(rows), nil
}

// ListByUser returns one author's posts, newest first.
func (r *postRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error) {
	query := postSelect + `
		WHERE p.user_id = $1
		ORDER BY p.timestamp DESC
		LIMIT $2 OFFSET $3
	`

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}

	return buildPosts(rows), nil
}

func buildPosts(rows []postRow) []model.Post {
	posts := make([]model.Post, len(rows))
	for i, row := range rows {
		posts[i] = model.Post{
			ID:        row.ID,
			UserID:    row.UserID,
			Body:      row.Body,
			Language:  row.Language,
			Timestamp: row.Timestamp,
			Author: &model.UserSummary{
				ID:       row.UserID,
				Username: row.AuthorUsername,
				Email:    row.AuthorEmail,
				AboutMe:  row.AuthorAboutMe,
			},
		}
	}
	return posts
}
