package models

import "time"

// Testimonial is a client quote displayed on the website.
type Testimonial struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	Rating      int       `json:"rating"`
	IsFeatured  bool      `json:"is_featured"`
	IsPublished bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
