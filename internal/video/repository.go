package video

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calm-lily/backend/internal/models"
)

// Repository handles signalling mailbox and room event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a video repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// InsertSignal appends an unconsumed signal to a room's mailbox.
func (r *Repository) InsertSignal(ctx context.Context, roomID string, senderID uuid.UUID, signalType, payload string) (*models.Signal, error) {
	var s models.Signal
	err := r.pool.QueryRow(ctx,
		`INSERT INTO video_signals (room_id, sender_id, signal_type, payload)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, room_id, sender_id, signal_type, payload, consumed, created_at`,
		roomID, senderID, signalType, payload).
		Scan(&s.ID, &s.RoomID, &s.SenderID, &s.SignalType, &s.Payload, &s.Consumed, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ConsumeSignals marks every pending signal from the other participant as
// consumed and returns them in creation order. Read and consume are one
// statement so two concurrent polls can never deliver the same signal twice.
func (r *Repository) ConsumeSignals(ctx context.Context, roomID string, pollerID uuid.UUID) ([]models.Signal, error) {
	rows, err := r.pool.Query(ctx,
		`WITH delivered AS (
			UPDATE video_signals SET consumed = TRUE
			WHERE room_id = $1 AND sender_id <> $2 AND NOT consumed
			RETURNING id, room_id, sender_id, signal_type, payload, consumed, created_at
		 )
		 SELECT * FROM delivered ORDER BY created_at, id`,
		roomID, pollerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var signals []models.Signal
	for rows.Next() {
		var s models.Signal
		if err := rows.Scan(&s.ID, &s.RoomID, &s.SenderID, &s.SignalType, &s.Payload, &s.Consumed, &s.CreatedAt); err != nil {
			return nil, err
		}
		signals = append(signals, s)
	}
	return signals, rows.Err()
}

// InsertRoomEvent appends one audit event for a room.
func (r *Repository) InsertRoomEvent(ctx context.Context, roomID string, userID *uuid.UUID, eventType string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO video_room_events (room_id, user_id, event_type) VALUES ($1, $2, $3)`,
		roomID, userID, eventType)
	return err
}

// ListRoomEvents returns a room's audit trail, newest first.
func (r *Repository) ListRoomEvents(ctx context.Context, roomID string, limit int) ([]models.RoomEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, room_id, user_id, event_type, created_at
		 FROM video_room_events WHERE room_id = $1
		 ORDER BY created_at DESC LIMIT $2`, roomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []models.RoomEvent
	for rows.Next() {
		var e models.RoomEvent
		if err := rows.Scan(&e.ID, &e.RoomID, &e.UserID, &e.EventType, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
