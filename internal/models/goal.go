package models

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a coaching goal tracked for a client.
type Goal struct {
	ID          uuid.UUID  `json:"id"`
	ClientID    uuid.UUID  `json:"client_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`   // active|completed|paused
	Progress    int        `json:"progress"` // 0-100
	TargetDate  *time.Time `json:"target_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SessionNote is a personal reflection written by a client,
// optionally linked to a booking.
type SessionNote struct {
	ID        uuid.UUID  `json:"id"`
	ClientID  uuid.UUID  `json:"client_id"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
