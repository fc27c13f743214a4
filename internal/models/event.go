package models

import "time"

// Event is a workshop, talk or other dated happening.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     *string   `json:"end_time,omitempty"`
	Location    string    `json:"location"`
	IsOnline    bool      `json:"is_online"`
	TicketURL   string    `json:"ticket_url"`
	Price       float64   `json:"price"`
	MaxSpots    int       `json:"max_spots"` // 0 = unlimited
	SpotsTaken  int       `json:"spots_taken"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// SpotsRemaining returns remaining capacity, or nil when unlimited.
func (e *Event) SpotsRemaining() *int {
	if e.MaxSpots == 0 {
		return nil
	}
	left := e.MaxSpots - e.SpotsTaken
	if left < 0 {
		left = 0
	}
	return &left
}
