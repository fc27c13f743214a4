package testimonials

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calm-lily/backend/internal/models"
)

// Repository handles testimonial persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a testimonials repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const testimonialColumns = `id, name, role, content, rating, is_featured, is_published, created_at`

func (r *Repository) list(ctx context.Context, q string) ([]models.Testimonial, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.ID, &t.Name, &t.Role, &t.Content, &t.Rating, &t.IsFeatured, &t.IsPublished, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ListPublished returns published testimonials, featured first, newest first
// within each group.
func (r *Repository) ListPublished(ctx context.Context) ([]models.Testimonial, error) {
	return r.list(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials
		 WHERE is_published ORDER BY is_featured DESC, created_at DESC`)
}

// ListAll returns every testimonial, unpublished included.
func (r *Repository) ListAll(ctx context.Context) ([]models.Testimonial, error) {
	return r.list(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials ORDER BY created_at DESC`)
}

// Create inserts a testimonial.
func (r *Repository) Create(ctx context.Context, t *models.Testimonial) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO testimonials (name, role, content, rating, is_featured, is_published)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		t.Name, t.Role, t.Content, t.Rating, t.IsFeatured, t.IsPublished).
		Scan(&t.ID, &t.CreatedAt)
}

// Delete removes a testimonial.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
