package goals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calm-lily/backend/internal/models"
)

// Repository handles goal persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a goals repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const goalColumns = `id, client_id, title, description, status, progress, target_date, created_at, updated_at`

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var g models.Goal
	err := row.Scan(&g.ID, &g.ClientID, &g.Title, &g.Description, &g.Status, &g.Progress,
		&g.TargetDate, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ListByClient returns a client's goals, active first, newest first within
// each status.
func (r *Repository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Goal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE client_id = $1
		 ORDER BY status = 'active' DESC, created_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *g)
	}
	return list, rows.Err()
}

// Get returns one goal.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Goal, error) {
	return scanGoal(r.pool.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1`, id))
}

// Create inserts a goal for a client.
func (r *Repository) Create(ctx context.Context, g *models.Goal, targetDate *time.Time) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO goals (client_id, title, description, status, progress, target_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		g.ClientID, g.Title, g.Description, g.Status, g.Progress, targetDate).
		Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

// UpdateParams carries partial goal updates; nil fields are left untouched.
type UpdateParams struct {
	Title       *string
	Description *string
	Status      *string
	Progress    *int
	TargetDate  *time.Time
}

// Update patches a goal with whatever fields are set.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.Goal, error) {
	return scanGoal(r.pool.QueryRow(ctx,
		`UPDATE goals SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			status = COALESCE($4, status),
			progress = COALESCE($5, progress),
			target_date = COALESCE($6, target_date),
			updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+goalColumns,
		id, p.Title, p.Description, p.Status, p.Progress, p.TargetDate))
}

// Delete removes a goal.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
