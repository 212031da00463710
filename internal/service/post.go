package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"

	"microblog/internal/model"
	"microblog/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	pageSize int
}

func NewPostService(postRepo repository.PostRepository, pageSize int) *PostService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &PostService{
		postRepo: postRepo,
		pageSize: pageSize,
	}
}

// Create validates and stores a new post, tagging it with the detected
// language of its body.
func (s *PostService) Create(ctx context.Context, userID int64, body string) (*model.Post, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, model.ErrBodyRequired
	}
	// Characters, not bytes: the storage width counts runes
	if utf8.RuneCountInString(body) > model.MaxPostBodyLength {
		return nil, model.ErrBodyTooLong
	}

	post := &model.Post{
		UserID:   userID,
		Body:     body,
		Language: detectLanguage(body),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

// FollowedPosts returns one page of the user's feed: their own posts plus
// posts from followed users, newest first.
func (s *PostService) FollowedPosts(ctx context.Context, userID int64, page int) (*model.PostPage, error) {
	return s.paginate(page, func(limit, offset int) ([]model.Post, error) {
		return s.postRepo.ListFollowed(ctx, userID, limit, offset)
	})
}

// Explore returns one page of the global post stream, newest first.
func (s *PostService) Explore(ctx context.Context, page int) (*model.PostPage, error) {
	return s.paginate(page, func(limit, offset int) ([]model.Post, error) {
		return s.postRepo.ListAll(ctx, limit, offset)
	})
}

// UserPosts returns one page of a single author's posts, newest first.
func (s *PostService) UserPosts(ctx context.Context, userID int64, page int) (*model.PostPage, error) {
	return s.paginate(page, func(limit, offset int) ([]model.Post, error) {
		return s.postRepo.ListByUser(ctx, userID, limit, offset)
	})
}

// paginate fetches pageSize+1 rows to decide whether a next page exists.
// An out-of-range page comes back empty with neither link flag set.
func (s *PostService) paginate(page int, fetch func(limit, offset int) ([]model.Post, error)) (*model.PostPage, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * s.pageSize
	posts, err := fetch(s.pageSize+1, offset)
	if err != nil {
		return nil, err
	}

	hasNext := len(posts) > s.pageSize
	if hasNext {
		posts = posts[:s.pageSize]
	}
	if posts == nil {
		posts = []model.Post{}
	}

	return &model.PostPage{
		Posts:   posts,
		Page:    page,
		HasNext: hasNext,
		HasPrev: page > 1 && len(posts) > 0,
	}, nil
}

// detectLanguage guesses the language of a post body. Unreliable guesses
// and codes wider than the storage column collapse to the empty tag.
func detectLanguage(body string) string {
	info := whatlanggo.Detect(body)
	if !info.IsReliable() {
		return ""
	}

	code := info.Lang.Iso6391()
	if code == "" || len(code) > model.MaxLanguageTagLength {
		return ""
	}
	return code
}
