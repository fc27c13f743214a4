package models

import (
	"time"

	"github.com/google/uuid"
)

// Signal is one store-and-forward signalling message in a room's mailbox.
// A signal is consumed the moment the other participant polls it and is
// never delivered again.
type Signal struct {
	ID         int64     `json:"id"`
	RoomID     string    `json:"room_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SignalType string    `json:"type"`
	Payload    string    `json:"payload"`
	Consumed   bool      `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoomEvent is an append-only audit record of join/leave/reconnect.
type RoomEvent struct {
	ID        int64      `json:"id"`
	RoomID    string     `json:"room_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	EventType string     `json:"event_type"`
	CreatedAt time.Time  `json:"created_at"`
}
