package models

import "time"

// LeadMagnetEntry records a request for the free audio recording.
type LeadMagnetEntry struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	Email     string    `json:"email"`
	Consent   bool      `json:"consent"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMessage is a message submitted via the contact form.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
