package resources

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calm-lily/backend/internal/models"
)

// Repository handles resource hub persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a resources repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListCategories returns every category in display order.
func (r *Repository) ListCategories(ctx context.Context) ([]models.ResourceCategory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, slug, description, icon, sort_order, created_at
		 FROM resource_categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.ResourceCategory
	for rows.Next() {
		var cat models.ResourceCategory
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Icon, &cat.SortOrder, &cat.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, cat)
	}
	return list, rows.Err()
}

// CreateCategory inserts a category.
func (r *Repository) CreateCategory(ctx context.Context, cat *models.ResourceCategory) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO resource_categories (name, slug, description, icon, sort_order)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		cat.Name, cat.Slug, cat.Description, cat.Icon, cat.SortOrder).
		Scan(&cat.ID, &cat.CreatedAt)
}

// DeleteCategory removes a category; its resources keep existing uncategorized.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resource_categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const resourceColumns = `id, title, slug, description, category_id, resource_type, external_url,
	content, is_published, is_premium, download_count, created_at, updated_at`

func scanResource(row pgx.Row) (*models.Resource, error) {
	var res models.Resource
	err := row.Scan(&res.ID, &res.Title, &res.Slug, &res.Description, &res.CategoryID, &res.ResourceType,
		&res.ExternalURL, &res.Content, &res.IsPublished, &res.IsPremium, &res.DownloadCount,
		&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListPublished returns published resources with optional category and type
// filters, newest first.
func (r *Repository) ListPublished(ctx context.Context, categorySlug, resourceType string) ([]models.Resource, error) {
	q := `SELECT ` + resourceColumns + ` FROM resources WHERE is_published`
	args := []any{}
	if categorySlug != "" {
		args = append(args, categorySlug)
		q += ` AND category_id = (SELECT id FROM resource_categories WHERE slug = $1)`
	}
	if resourceType != "" {
		args = append(args, resourceType)
		if len(args) == 1 {
			q += ` AND resource_type = $1`
		} else {
			q += ` AND resource_type = $2`
		}
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *res)
	}
	return list, rows.Err()
}

// GetPublishedBySlug returns one published resource.
func (r *Repository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Resource, error) {
	return scanResource(r.pool.QueryRow(ctx,
		`SELECT `+resourceColumns+` FROM resources WHERE slug = $1 AND is_published`, slug))
}

// TrackDownload bumps a published resource's download count and returns the
// URL to hand back. Unpublished resources are invisible here.
func (r *Repository) TrackDownload(ctx context.Context, slug string) (*models.Resource, error) {
	return scanResource(r.pool.QueryRow(ctx,
		`UPDATE resources SET download_count = download_count + 1, updated_at = NOW()
		 WHERE slug = $1 AND is_published
		 RETURNING `+resourceColumns, slug))
}

// Create inserts a resource.
func (r *Repository) Create(ctx context.Context, res *models.Resource) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO resources (title, slug, description, category_id, resource_type,
			external_url, content, is_published, is_premium)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, download_count, created_at, updated_at`,
		res.Title, res.Slug, res.Description, res.CategoryID, res.ResourceType,
		res.ExternalURL, res.Content, res.IsPublished, res.IsPremium).
		Scan(&res.ID, &res.DownloadCount, &res.CreatedAt, &res.UpdatedAt)
}

// UpdateParams carries partial resource updates; nil fields are left untouched.
type UpdateParams struct {
	Title        *string
	Description  *string
	CategoryID   *int64
	ResourceType *string
	ExternalURL  *string
	Content      *string
	IsPublished  *bool
	IsPremium    *bool
}

// Update patches a resource with whatever fields are set.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.Resource, error) {
	return scanResource(r.pool.QueryRow(ctx,
		`UPDATE resources SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			category_id = COALESCE($4, category_id),
			resource_type = COALESCE($5, resource_type),
			external_url = COALESCE($6, external_url),
			content = COALESCE($7, content),
			is_published = COALESCE($8, is_published),
			is_premium = COALESCE($9, is_premium),
			updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+resourceColumns,
		id, p.Title, p.Description, p.CategoryID, p.ResourceType,
		p.ExternalURL, p.Content, p.IsPublished, p.IsPremium))
}

// Delete removes a resource.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
