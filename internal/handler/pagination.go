package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"microblog/internal/model"
)

// parsePage reads the ?page query parameter, defaulting to 1 for
// anything missing or unparseable.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pageLinks builds the next/prev URLs for a page of posts. A page past
// the end of the collection gets neither link.
func pageLinks(basePath string, page *model.PostPage) (next, prev *string) {
	if page.HasNext {
		u := fmt.Sprintf("%s?page=%d", basePath, page.Page+1)
		next = &u
	}
	if page.HasPrev {
		u := fmt.Sprintf("%s?page=%d", basePath, page.Page-1)
		prev = &u
	}
	return next, prev
}
