package utils

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Calming the Nervous System: A Guide", "calming-the-nervous-system-a-guide"},
		{"  Leading & trailing!  ", "leading-trailing"},
		{"already-clean-slug", "already-clean-slug"},
		{"5 Minute Breathing Exercise", "5-minute-breathing-exercise"},
		{"What's   New???", "what-s-new"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
