package models

import (
	"time"

	"github.com/google/uuid"
)

// ResourceCategory groups resources in the resource hub.
type ResourceCategory struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"` // Lucide icon name
	SortOrder   int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

// Resource is a downloadable or linkable item shared with clients.
type Resource struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	CategoryID    *int64    `json:"category_id,omitempty"`
	ResourceType  string    `json:"resource_type"` // pdf|audio|video|link|guide
	ExternalURL   string    `json:"external_url"`
	Content       string    `json:"content,omitempty"`
	IsPublished   bool      `json:"is_published"`
	IsPremium     bool      `json:"is_premium"` // requires login to access
	DownloadCount int       `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
