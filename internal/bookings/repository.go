package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calm-lily/backend/internal/models"
)

// Repository handles slot and booking persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a bookings repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const slotColumns = `id, date, start_time::TEXT, end_time::TEXT, session_type, is_available, created_at`

func scanSlot(row pgx.Row) (*models.Slot, error) {
	var s models.Slot
	var start, end string
	if err := row.Scan(&s.ID, &s.Date, &start, &end, &s.SessionType, &s.IsAvailable, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.StartTime = trimSeconds(start)
	s.EndTime = trimSeconds(end)
	return &s, nil
}

// trimSeconds converts Postgres "09:00:00" to "09:00".
func trimSeconds(t string) string {
	if len(t) == 8 {
		return t[:5]
	}
	return t
}

// ListAvailableSlots returns all slots currently flagged available,
// optionally filtered by session type, soonest first.
func (r *Repository) ListAvailableSlots(ctx context.Context, sessionType string) ([]models.Slot, error) {
	q := `SELECT ` + slotColumns + ` FROM booking_slots WHERE is_available`
	var args []interface{}
	if sessionType != "" {
		q += ` AND session_type = $1`
		args = append(args, sessionType)
	}
	q += ` ORDER BY date, start_time`
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

// ListUpcomingSlots returns all slots from today onward, both available and
// booked, for the admin dashboard.
func (r *Repository) ListUpcomingSlots(ctx context.Context) ([]models.Slot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+slotColumns+` FROM booking_slots WHERE date >= CURRENT_DATE ORDER BY date, start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

// GetSlot returns a slot by ID.
func (r *Repository) GetSlot(ctx context.Context, id int64) (*models.Slot, error) {
	return scanSlot(r.pool.QueryRow(ctx,
		`SELECT `+slotColumns+` FROM booking_slots WHERE id = $1`, id))
}

// CreateSlot inserts a single slot.
func (r *Repository) CreateSlot(ctx context.Context, date time.Time, startTime, endTime, sessionType string) (*models.Slot, error) {
	return scanSlot(r.pool.QueryRow(ctx,
		`INSERT INTO booking_slots (date, start_time, end_time, session_type)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+slotColumns,
		date, startTime, endTime, sessionType))
}

// InsertSlotIfAbsent inserts a slot unless an identical
// (date, start, end, session_type) row already exists. Returns nil when the
// slot pre-existed, so bulk creation reports only rows actually created.
func (r *Repository) InsertSlotIfAbsent(ctx context.Context, date time.Time, startTime, endTime, sessionType string) (*models.Slot, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO booking_slots (date, start_time, end_time, session_type)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (date, start_time, end_time, session_type) DO NOTHING
		 RETURNING `+slotColumns,
		date, startTime, endTime, sessionType)
	s, err := scanSlot(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// HasActiveBookingForSlot reports whether any pending or confirmed booking
// still references the slot.
func (r *Repository) HasActiveBookingForSlot(ctx context.Context, slotID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM bookings WHERE slot_id = $1 AND status IN ('pending', 'confirmed')
		 )`, slotID).Scan(&exists)
	return exists, err
}

// DeleteSlot removes a slot. Returns false when no row existed.
func (r *Repository) DeleteSlot(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM booking_slots WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ErrSlotUnavailable is returned by CreateBooking when the slot does not
// exist or was claimed by a concurrent booking.
var ErrSlotUnavailable = errors.New("slot not found or unavailable")

// CreateBooking atomically claims the slot and inserts the booking in one
// transaction. The claim is a single conditional update: zero rows affected
// means the slot is gone or already taken, which rules out the
// check-then-set race between concurrent bookings for the same slot.
func (r *Repository) CreateBooking(ctx context.Context, b *models.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE booking_slots SET is_available = FALSE WHERE id = $1 AND is_available`, *b.SlotID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSlotUnavailable
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO bookings (client_id, slot_id, session_type, notes, video_room_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, status, created_at, updated_at`,
		b.ClientID, *b.SlotID, b.SessionType, b.Notes, b.VideoRoomID).
		Scan(&b.ID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const bookingColumns = `b.id, b.client_id, b.slot_id, b.session_type, b.status, b.notes, b.video_room_id,
	b.created_at, b.updated_at`

func scanBookingWithSlot(rows pgx.Rows) (*models.Booking, error) {
	var b models.Booking
	var slotID *int64
	var sDate *time.Time
	var sStart, sEnd, sType *string
	var sAvail *bool
	err := rows.Scan(&b.ID, &b.ClientID, &slotID, &b.SessionType, &b.Status, &b.Notes, &b.VideoRoomID,
		&b.CreatedAt, &b.UpdatedAt, &sDate, &sStart, &sEnd, &sType, &sAvail)
	if err != nil {
		return nil, err
	}
	b.SlotID = slotID
	if slotID != nil && sDate != nil {
		b.Slot = &models.Slot{
			ID:          *slotID,
			Date:        *sDate,
			StartTime:   trimSeconds(*sStart),
			EndTime:     trimSeconds(*sEnd),
			SessionType: models.SessionType(*sType),
			IsAvailable: *sAvail,
		}
	}
	return &b, nil
}

const bookingWithSlotQuery = `SELECT ` + bookingColumns + `,
	s.date, s.start_time::TEXT, s.end_time::TEXT, s.session_type, s.is_available
	FROM bookings b LEFT JOIN booking_slots s ON s.id = b.slot_id`

// ListByClient returns a client's bookings, newest first.
func (r *Repository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Booking, error) {
	rows, err := r.pool.Query(ctx,
		bookingWithSlotQuery+` WHERE b.client_id = $1 ORDER BY b.created_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Booking
	for rows.Next() {
		b, err := scanBookingWithSlot(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *b)
	}
	return list, rows.Err()
}

// ListAll returns every booking with client details joined, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Booking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingColumns+`,
			s.date, s.start_time::TEXT, s.end_time::TEXT, s.session_type, s.is_available,
			u.first_name || ' ' || u.last_name, u.email
		 FROM bookings b
		 LEFT JOIN booking_slots s ON s.id = b.slot_id
		 JOIN users u ON u.id = b.client_id
		 ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Booking
	for rows.Next() {
		var b models.Booking
		var slotID *int64
		var sDate *time.Time
		var sStart, sEnd, sType *string
		var sAvail *bool
		err := rows.Scan(&b.ID, &b.ClientID, &slotID, &b.SessionType, &b.Status, &b.Notes, &b.VideoRoomID,
			&b.CreatedAt, &b.UpdatedAt, &sDate, &sStart, &sEnd, &sType, &sAvail,
			&b.ClientName, &b.ClientEmail)
		if err != nil {
			return nil, err
		}
		b.SlotID = slotID
		if slotID != nil && sDate != nil {
			b.Slot = &models.Slot{
				ID:          *slotID,
				Date:        *sDate,
				StartTime:   trimSeconds(*sStart),
				EndTime:     trimSeconds(*sEnd),
				SessionType: models.SessionType(*sType),
				IsAvailable: *sAvail,
			}
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// GetBooking returns a booking by ID with its slot joined.
func (r *Repository) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	rows, err := r.pool.Query(ctx, bookingWithSlotQuery+` WHERE b.id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, pgx.ErrNoRows
	}
	return scanBookingWithSlot(rows)
}

// Cancel moves a non-terminal booking to cancelled and re-releases its slot
// in the same transaction, so a failure between the two leaves neither
// applied. Returns false when the booking was already completed or
// cancelled; the conditional update keeps concurrent cancels from
// double-releasing the slot.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var slotID *int64
	err = tx.QueryRow(ctx,
		`UPDATE bookings SET status = 'cancelled', updated_at = NOW()
		 WHERE id = $1 AND status IN ('pending', 'confirmed')
		 RETURNING slot_id`, id).Scan(&slotID)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if slotID != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE booking_slots SET is_available = TRUE WHERE id = $1`, *slotID); err != nil {
			return false, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Confirm moves a booking to confirmed unless it is already terminal.
// Returns false when the status guard rejected the transition.
func (r *Repository) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bookings SET status = 'confirmed', updated_at = NOW()
		 WHERE id = $1 AND status NOT IN ('completed', 'cancelled')`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
