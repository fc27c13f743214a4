package leads

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calm-lily/backend/internal/models"
)

// Repository handles lead magnet and contact message persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a leads repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EmailExists reports whether a lead magnet entry already exists for the email.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM lead_magnet_entries WHERE LOWER(email) = LOWER($1))`, email).
		Scan(&exists)
	return exists, err
}

// CreateEntry inserts a lead magnet entry.
func (r *Repository) CreateEntry(ctx context.Context, e *models.LeadMagnetEntry) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO lead_magnet_entries (first_name, email, consent)
		 VALUES ($1, $2, $3) RETURNING id, delivered, created_at`,
		e.FirstName, e.Email, e.Consent).
		Scan(&e.ID, &e.Delivered, &e.CreatedAt)
}

// MarkDelivered flags an entry once its delivery email is queued.
func (r *Repository) MarkDelivered(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE lead_magnet_entries SET delivered = TRUE WHERE id = $1`, id)
	return err
}

// ListEntries returns lead magnet entries, newest first.
func (r *Repository) ListEntries(ctx context.Context) ([]models.LeadMagnetEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, first_name, email, consent, delivered, created_at
		 FROM lead_magnet_entries ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.LeadMagnetEntry
	for rows.Next() {
		var e models.LeadMagnetEntry
		if err := rows.Scan(&e.ID, &e.FirstName, &e.Email, &e.Consent, &e.Delivered, &e.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// CreateMessage inserts a contact message.
func (r *Repository) CreateMessage(ctx context.Context, m *models.ContactMessage) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, phone, message)
		 VALUES ($1, $2, $3, $4) RETURNING id, is_read, created_at`,
		m.Name, m.Email, m.Phone, m.Message).
		Scan(&m.ID, &m.IsRead, &m.CreatedAt)
}

// ListMessages returns contact messages, unread first then newest first.
func (r *Repository) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, phone, message, is_read, created_at
		 FROM contact_messages ORDER BY is_read, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// MarkMessageRead flags a contact message as handled.
func (r *Repository) MarkMessageRead(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_messages SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
