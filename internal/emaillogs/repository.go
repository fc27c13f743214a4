package emaillogs

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calm-lily/backend/internal/models"
)

// Entry is one email attempt to record.
type Entry struct {
	EmailType string
	Recipient string
	Subject   string
	Status    string // sent|failed
	Error     string
	BodyHTML  string
	BookingID *uuid.UUID
}

// Repository handles email_logs persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an email logs repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert records one delivery attempt.
func (r *Repository) Insert(ctx context.Context, e Entry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO email_logs (email_type, recipient, subject, status, error_message, body_html, booking_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.EmailType, e.Recipient, e.Subject, e.Status, e.Error, e.BodyHTML, e.BookingID)
	return err
}

// GetByID returns one email log row.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.EmailLog, error) {
	var el models.EmailLog
	err := r.pool.QueryRow(ctx,
		`SELECT id, email_type, recipient, subject, status, error_message, body_html, booking_id, created_at
		 FROM email_logs WHERE id = $1`, id).
		Scan(&el.ID, &el.EmailType, &el.Recipient, &el.Subject, &el.Status, &el.ErrorMessage, &el.BodyHTML, &el.BookingID, &el.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &el, nil
}

// List returns recent email logs, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]models.EmailLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, email_type, recipient, subject, status, error_message, booking_id, created_at
		 FROM email_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.EmailLog
	for rows.Next() {
		var el models.EmailLog
		if err := rows.Scan(&el.ID, &el.EmailType, &el.Recipient, &el.Subject, &el.Status,
			&el.ErrorMessage, &el.BookingID, &el.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, el)
	}
	return list, rows.Err()
}
