package handler

import "testing"

func TestSafeNext(t *testing.T) {
	tests := []struct {
		name string
		next string
		want string
	}{
		{name: "empty defaults home", next: "", want: "/"},
		{name: "relative path allowed", next: "/explore", want: "/explore"},
		{name: "relative path with query allowed", next: "/user/susan?page=2", want: "/user/susan?page=2"},
		// Anything with a network location is an open-redirect attempt
		{name: "absolute URL rejected", next: "http://evil.example/phish", want: "/"},
		{name: "protocol-relative rejected", next: "//evil.example/phish", want: "/"},
		{name: "scheme without host rejected", next: "javascript:alert(1)", want: "/"},
		{name: "unparseable rejected", next: "http://[::1", want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := safeNext(tt.next); got != tt.want {
				t.Errorf("safeNext(%q) = %q, want %q", tt.next, got, tt.want)
			}
		})
	}
}
