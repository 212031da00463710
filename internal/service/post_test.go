package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"microblog/internal/model"
)

func TestPostService_Create(t *testing.T) {
	mockPosts := &mockPostRepository{
		createFn: func(ctx context.Context, post *model.Post) error {
			post.ID = 1
			return nil
		},
	}
	svc := NewPostService(mockPosts, 10)

	post, err := svc.Create(context.Background(), 1, "  my first post!  ")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if post.Body != "my first post!" {
		t.Errorf("body = %q, want trimmed body", post.Body)
	}
	if post.UserID != 1 {
		t.Errorf("user_id = %d, want 1", post.UserID)
	}
}

func TestPostService_Create_Validation(t *testing.T) {
	svc := NewPostService(&mockPostRepository{}, 10)

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "empty body", body: "", wantErr: model.ErrBodyRequired},
		{name: "whitespace only", body: "   \n\t ", wantErr: model.ErrBodyRequired},
		{name: "too long", body: strings.Repeat("a", model.MaxPostBodyLength+1), wantErr: model.ErrBodyTooLong},
		{name: "exactly at limit", body: strings.Repeat("a", model.MaxPostBodyLength)},
		// The limit counts characters, not bytes: 140 Cyrillic runes are
		// 280 bytes and still a valid post
		{name: "multibyte at limit", body: strings.Repeat("ж", model.MaxPostBodyLength)},
		{name: "multibyte too long", body: strings.Repeat("ж", model.MaxPostBodyLength+1), wantErr: model.ErrBodyTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, tt.body)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
		})
	}
}

func TestPostService_Create_DetectsLanguage(t *testing.T) {
	mockPosts := &mockPostRepository{}
	svc := NewPostService(mockPosts, 10)

	post, err := svc.Create(context.Background(), 1,
		"Hello my friend, how are you doing today? I hope everything is fine with you and your family.")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if post.Language != "en" {
		t.Errorf("language = %q, want %q", post.Language, "en")
	}
}

func TestPostService_Create_UnreliableLanguageIsEmpty(t *testing.T) {
	svc := NewPostService(&mockPostRepository{}, 10)

	// No letters at all, nothing to guess from
	post, err := svc.Create(context.Background(), 1, "42 + 17 = 59")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if post.Language != "" {
		t.Errorf("language = %q, want empty for an unreliable guess", post.Language)
	}
}

// fakePosts builds a mock repository pretending total posts exist, honoring
// limit and offset the way the SQL layer does.
func fakePosts(total int) *mockPostRepository {
	list := func(limit, offset int) ([]model.Post, error) {
		var posts []model.Post
		for i := offset; i < total && len(posts) < limit; i++ {
			posts = append(posts, model.Post{ID: int64(i + 1), Body: fmt.Sprintf("post %d", i+1)})
		}
		return posts, nil
	}
	return &mockPostRepository{
		listFollowedFn: func(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error) {
			return list(limit, offset)
		},
		listAllFn: func(ctx context.Context, limit, offset int) ([]model.Post, error) {
			return list(limit, offset)
		},
		listByUserFn: func(ctx context.Context, userID int64, limit, offset int) ([]model.Post, error) {
			return list(limit, offset)
		},
	}
}

func TestPostService_FollowedPosts_Pagination(t *testing.T) {
	svc := NewPostService(fakePosts(25), 10)

	tests := []struct {
		name      string
		page      int
		wantLen   int
		wantPage  int
		wantNext  bool
		wantPrev  bool
		wantFirst int64
	}{
		{name: "first page", page: 1, wantLen: 10, wantPage: 1, wantNext: true, wantPrev: false, wantFirst: 1},
		{name: "middle page", page: 2, wantLen: 10, wantPage: 2, wantNext: true, wantPrev: true, wantFirst: 11},
		{name: "last page", page: 3, wantLen: 5, wantPage: 3, wantNext: false, wantPrev: true, wantFirst: 21},
		// Past the end: empty page with neither link
		{name: "out of range", page: 999, wantLen: 0, wantPage: 999, wantNext: false, wantPrev: false},
		// Page zero and negatives clamp to the first page
		{name: "page zero", page: 0, wantLen: 10, wantPage: 1, wantNext: true, wantPrev: false, wantFirst: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.FollowedPosts(context.Background(), 1, tt.page)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if len(page.Posts) != tt.wantLen {
				t.Errorf("len(posts) = %d, want %d", len(page.Posts), tt.wantLen)
			}
			if page.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", page.Page, tt.wantPage)
			}
			if page.HasNext != tt.wantNext {
				t.Errorf("hasNext = %v, want %v", page.HasNext, tt.wantNext)
			}
			if page.HasPrev != tt.wantPrev {
				t.Errorf("hasPrev = %v, want %v", page.HasPrev, tt.wantPrev)
			}
			if tt.wantLen > 0 && page.Posts[0].ID != tt.wantFirst {
				t.Errorf("first post ID = %d, want %d", page.Posts[0].ID, tt.wantFirst)
			}
		})
	}
}

func TestPostService_Explore_EmptyStream(t *testing.T) {
	svc := NewPostService(fakePosts(0), 10)

	page, err := svc.Explore(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if page.Posts == nil {
		t.Error("posts should be an empty slice, not nil")
	}
	if len(page.Posts) != 0 || page.HasNext || page.HasPrev {
		t.Errorf("empty stream should have no posts and no links, got %+v", page)
	}
}

func TestPostService_UserPosts_SinglePage(t *testing.T) {
	svc := NewPostService(fakePosts(4), 10)

	page, err := svc.UserPosts(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(page.Posts) != 4 {
		t.Errorf("len(posts) = %d, want 4", len(page.Posts))
	}
	if page.HasNext || page.HasPrev {
		t.Error("a single page should have neither link")
	}
}
