package handler

import (
	"net/http/httptest"
	"testing"

	"microblog/internal/model"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want int
	}{
		{name: "missing", url: "/explore", want: 1},
		{name: "valid", url: "/explore?page=3", want: 3},
		{name: "zero", url: "/explore?page=0", want: 1},
		{name: "negative", url: "/explore?page=-2", want: 1},
		{name: "not a number", url: "/explore?page=abc", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			if got := parsePage(r); got != tt.want {
				t.Errorf("parsePage(%q) = %d, want %d", tt.url, got, tt.want)
			}
		})
	}
}

func TestPageLinks(t *testing.T) {
	t.Run("middle page has both links", func(t *testing.T) {
		next, prev := pageLinks("/index", &model.PostPage{Page: 2, HasNext: true, HasPrev: true})
		if next == nil || *next != "/index?page=3" {
			t.Errorf("next = %v, want /index?page=3", next)
		}
		if prev == nil || *prev != "/index?page=1" {
			t.Errorf("prev = %v, want /index?page=1", prev)
		}
	})

	t.Run("single page has neither link", func(t *testing.T) {
		next, prev := pageLinks("/index", &model.PostPage{Page: 1})
		if next != nil || prev != nil {
			t.Errorf("links = %v/%v, want none", next, prev)
		}
	})

	t.Run("out of range page has neither link", func(t *testing.T) {
		next, prev := pageLinks("/index", &model.PostPage{Page: 999})
		if next != nil || prev != nil {
			t.Errorf("links = %v/%v, want none", next, prev)
		}
	})
}
