package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// BlogPost is an article on the website.
type BlogPost struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Excerpt        string     `json:"excerpt"`
	Content        string     `json:"content,omitempty"`
	Tags           []string   `json:"tags"`
	AuthorID       *uuid.UUID `json:"author_id,omitempty"`
	AuthorName     string     `json:"author_name"`
	IsPublished    bool       `json:"is_published"`
	IsPinned       bool       `json:"is_pinned"`
	ViewCount      int        `json:"view_count"`
	SEOTitle       string     `json:"seo_title,omitempty"`
	SEODescription string     `json:"seo_description,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

var wordRe = regexp.MustCompile(`\w+`)

// ReadingTime estimates reading time in minutes at ~200 words per minute.
func (p *BlogPost) ReadingTime() int {
	words := len(wordRe.FindAllString(p.Content, -1))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
