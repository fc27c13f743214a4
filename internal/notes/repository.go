package notes

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calm-lily/backend/internal/models"
)

// Repository handles session note persistence. Every query is scoped to the
// owning client so one client can never touch another's notes.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a notes repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const noteColumns = `id, client_id, booking_id, title, content, created_at, updated_at`

func scanNote(row pgx.Row) (*models.SessionNote, error) {
	var n models.SessionNote
	err := row.Scan(&n.ID, &n.ClientID, &n.BookingID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByClient returns a client's notes, newest first.
func (r *Repository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.SessionNote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+noteColumns+` FROM session_notes WHERE client_id = $1 ORDER BY created_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.SessionNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *n)
	}
	return list, rows.Err()
}

// Get returns one of a client's notes.
func (r *Repository) Get(ctx context.Context, id, clientID uuid.UUID) (*models.SessionNote, error) {
	return scanNote(r.pool.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM session_notes WHERE id = $1 AND client_id = $2`, id, clientID))
}

// Create inserts a note.
func (r *Repository) Create(ctx context.Context, n *models.SessionNote) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO session_notes (client_id, booking_id, title, content)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`,
		n.ClientID, n.BookingID, n.Title, n.Content).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

// Update patches a client's note; nil fields are left untouched.
func (r *Repository) Update(ctx context.Context, id, clientID uuid.UUID, title, content *string) (*models.SessionNote, error) {
	return scanNote(r.pool.QueryRow(ctx,
		`UPDATE session_notes SET
			title = COALESCE($3, title),
			content = COALESCE($4, content),
			updated_at = NOW()
		 WHERE id = $1 AND client_id = $2
		 RETURNING `+noteColumns,
		id, clientID, title, content))
}

// Delete removes a client's note.
func (r *Repository) Delete(ctx context.Context, id, clientID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM session_notes WHERE id = $1 AND client_id = $2`, id, clientID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
