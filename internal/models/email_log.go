package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailLog records one outbound email attempt for the admin audit trail.
type EmailLog struct {
	ID           int64      `json:"id"`
	EmailType    string     `json:"email_type"`
	Recipient    string     `json:"recipient"`
	Subject      string     `json:"subject"`
	Status       string     `json:"status"` // sent|failed
	ErrorMessage string     `json:"error_message,omitempty"`
	BodyHTML     string     `json:"-"`
	BookingID    *uuid.UUID `json:"booking_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
