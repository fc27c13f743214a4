package events

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calm-lily/backend/internal/models"
)

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const eventColumns = `id, title, description, date, start_time::TEXT, end_time::TEXT, location,
	is_online, ticket_url, price, max_spots, spots_taken, is_published, created_at`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.StartTime, &e.EndTime, &e.Location,
		&e.IsOnline, &e.TicketURL, &e.Price, &e.MaxSpots, &e.SpotsTaken, &e.IsPublished, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListPublished returns published events soonest first. Past events are
// included when includePast is set.
func (r *Repository) ListPublished(ctx context.Context, includePast bool) ([]models.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE is_published`
	if !includePast {
		q += ` AND date >= CURRENT_DATE`
	}
	q += ` ORDER BY date, start_time`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

// ListAll returns every event, drafts included, soonest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Event, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date, start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

// Get returns one event.
func (r *Repository) Get(ctx context.Context, id int64) (*models.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
}

// GetPublished returns one published event.
func (r *Repository) GetPublished(ctx context.Context, id int64) (*models.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1 AND is_published`, id))
}

// Create inserts an event.
func (r *Repository) Create(ctx context.Context, e *models.Event, date time.Time) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO events (title, description, date, start_time, end_time, location,
			is_online, ticket_url, price, max_spots, is_published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, spots_taken, created_at`,
		e.Title, e.Description, date, e.StartTime, e.EndTime, e.Location,
		e.IsOnline, e.TicketURL, e.Price, e.MaxSpots, e.IsPublished).
		Scan(&e.ID, &e.SpotsTaken, &e.CreatedAt)
}

// UpdateParams carries partial event updates; nil fields are left untouched.
type UpdateParams struct {
	Title       *string
	Description *string
	Date        *time.Time
	StartTime   *string
	EndTime     *string
	Location    *string
	IsOnline    *bool
	TicketURL   *string
	Price       *float64
	MaxSpots    *int
	SpotsTaken  *int
	IsPublished *bool
}

// Update patches an event with whatever fields are set.
func (r *Repository) Update(ctx context.Context, id int64, p UpdateParams) (*models.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx,
		`UPDATE events SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			date = COALESCE($4, date),
			start_time = COALESCE($5::TIME, start_time),
			end_time = COALESCE($6::TIME, end_time),
			location = COALESCE($7, location),
			is_online = COALESCE($8, is_online),
			ticket_url = COALESCE($9, ticket_url),
			price = COALESCE($10, price),
			max_spots = COALESCE($11, max_spots),
			spots_taken = COALESCE($12, spots_taken),
			is_published = COALESCE($13, is_published)
		 WHERE id = $1
		 RETURNING `+eventColumns,
		id, p.Title, p.Description, p.Date, p.StartTime, p.EndTime, p.Location,
		p.IsOnline, p.TicketURL, p.Price, p.MaxSpots, p.SpotsTaken, p.IsPublished))
}

// Delete removes an event.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
