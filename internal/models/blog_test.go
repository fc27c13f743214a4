package models

import (
	"strings"
	"testing"
)

func TestReadingTime(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty content", "", 1},
		{"short post", "just a few words here", 1},
		{"exactly 200 words", strings.Repeat("word ", 200), 1},
		{"201 words", strings.Repeat("word ", 201), 2},
		{"1000 words", strings.Repeat("word ", 1000), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BlogPost{Content: tt.content}
			if got := p.ReadingTime(); got != tt.want {
				t.Errorf("ReadingTime() = %d, want %d", got, tt.want)
			}
		})
	}
}
