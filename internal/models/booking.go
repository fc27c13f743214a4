package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionType categorises a bookable session.
type SessionType string

const (
	SessionDiscovery SessionType = "discovery"
	SessionStandard  SessionType = "standard"
	SessionIntensive SessionType = "intensive"
)

// ValidSessionType reports whether s is a known session type.
func ValidSessionType(s string) bool {
	switch SessionType(s) {
	case SessionDiscovery, SessionStandard, SessionIntensive:
		return true
	}
	return false
}

// Slot is an admin-defined bookable time window.
type Slot struct {
	ID          int64       `json:"id"`
	Date        time.Time   `json:"date"`
	StartTime   string      `json:"start_time"` // HH:MM
	EndTime     string      `json:"end_time"`   // HH:MM
	SessionType SessionType `json:"session_type"`
	IsAvailable bool        `json:"is_available"`
	CreatedAt   time.Time   `json:"created_at"`
}

// BookingStatus is the booking lifecycle state.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed out of s.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// Booking is a client reservation against a slot.
// The slot reference may be cleared while the booking persists.
type Booking struct {
	ID          uuid.UUID     `json:"id"`
	ClientID    uuid.UUID     `json:"client_id"`
	SlotID      *int64        `json:"slot_id,omitempty"`
	SessionType SessionType   `json:"session_type"`
	Status      BookingStatus `json:"status"`
	Notes       string        `json:"notes"`
	VideoRoomID string        `json:"video_room_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Joined fields, populated on admin listings.
	ClientName  string `json:"client_name,omitempty"`
	ClientEmail string `json:"client_email,omitempty"`
	Slot        *Slot  `json:"slot,omitempty"`
}
