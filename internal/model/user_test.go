package model

import "testing"

func TestUserAvatar(t *testing.T) {
	john := &User{Username: "john", Email: "john@example.com"}

	// Matches what Gravatar expects for the lowercased address
	want := "https://www.gravatar.com/avatar/d4c74594d841139328695756648b6bd6?d=identicon&s=128"
	if got := john.Avatar(128); got != want {
		t.Errorf("Avatar(128) = %q, want %q", got, want)
	}
}

func TestUserAvatar_CaseInsensitiveEmail(t *testing.T) {
	lower := &User{Email: "susan@example.com"}
	upper := &User{Email: "SUSAN@example.com"}

	if lower.Avatar(64) != upper.Avatar(64) {
		t.Error("avatar URL should not depend on email casing")
	}
}

func TestUserAvatar_UploadedAvatarWins(t *testing.T) {
	url := "https://cdn.example.com/avatars/abc.jpg"
	susan := &User{Email: "susan@example.com", AvatarURL: &url}

	if got := susan.Avatar(128); got != url {
		t.Errorf("Avatar(128) = %q, want uploaded URL %q", got, url)
	}
}
