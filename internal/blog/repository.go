package blog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calm-lily/backend/internal/models"
)

// Repository handles blog post persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a blog repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const postColumns = `id, title, slug, excerpt, content, tags, author_id, author_name,
	is_published, is_pinned, view_count, seo_title, seo_description, published_at, created_at, updated_at`

func scanPost(row pgx.Row) (*models.BlogPost, error) {
	var p models.BlogPost
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Tags, &p.AuthorID, &p.AuthorName,
		&p.IsPublished, &p.IsPinned, &p.ViewCount, &p.SEOTitle, &p.SEODescription,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPublished returns a page of published posts, newest first, with the
// total match count. Tag filters on jsonb containment; search matches
// title, excerpt or content case-insensitively.
func (r *Repository) ListPublished(ctx context.Context, tag, search string, page, perPage int) ([]models.BlogPost, int, error) {
	if page < 1 {
		page = 1
	}
	where := `WHERE is_published`
	args := []any{}
	if tag != "" {
		args = append(args, tag)
		where += fmt.Sprintf(` AND tags @> to_jsonb(ARRAY[$%d::TEXT])`, len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (title ILIKE $%d OR excerpt ILIKE $%d OR content ILIKE $%d)`, n, n, n)
	}
	args = append(args, perPage, (page-1)*perPage)
	q := `SELECT ` + postColumns + `, COUNT(*) OVER() FROM blog_posts ` + where +
		fmt.Sprintf(` ORDER BY published_at DESC NULLS LAST LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var posts []models.BlogPost
	var total int
	for rows.Next() {
		var p models.BlogPost
		err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Tags, &p.AuthorID, &p.AuthorName,
			&p.IsPublished, &p.IsPinned, &p.ViewCount, &p.SEOTitle, &p.SEODescription,
			&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt, &total)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

// ListPinned returns up to five pinned published posts.
func (r *Repository) ListPinned(ctx context.Context) ([]models.BlogPost, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postColumns+` FROM blog_posts
		 WHERE is_published AND is_pinned
		 ORDER BY published_at DESC NULLS LAST LIMIT 5`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []models.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// Tags returns the distinct tag set across published posts.
func (r *Repository) Tags(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT jsonb_array_elements_text(tags)
		 FROM blog_posts WHERE is_published ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tags []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// GetPublishedBySlugAndView returns a published post and bumps its view
// count in the same statement.
func (r *Repository) GetPublishedBySlugAndView(ctx context.Context, slug string) (*models.BlogPost, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`UPDATE blog_posts SET view_count = view_count + 1
		 WHERE slug = $1 AND is_published
		 RETURNING `+postColumns, slug))
}

// GetPublishedBySlug returns a published post without touching view_count.
func (r *Repository) GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE slug = $1 AND is_published`, slug))
}

// GetByID returns any post, drafts included.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id))
}

// ListAll returns a page of posts including drafts, newest first.
func (r *Repository) ListAll(ctx context.Context, page, perPage int) ([]models.BlogPost, int, error) {
	if page < 1 {
		page = 1
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+postColumns+`, COUNT(*) OVER() FROM blog_posts
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var posts []models.BlogPost
	var total int
	for rows.Next() {
		var p models.BlogPost
		err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Tags, &p.AuthorID, &p.AuthorName,
			&p.IsPublished, &p.IsPinned, &p.ViewCount, &p.SEOTitle, &p.SEODescription,
			&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt, &total)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

// Create inserts a post. published_at is stamped only when it starts out
// published.
func (r *Repository) Create(ctx context.Context, p *models.BlogPost) error {
	var publishedAt *time.Time
	if p.IsPublished {
		now := time.Now()
		publishedAt = &now
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO blog_posts (title, slug, excerpt, content, tags, author_id, author_name,
			is_published, is_pinned, seo_title, seo_description, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, view_count, published_at, created_at, updated_at`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.Tags, p.AuthorID, p.AuthorName,
		p.IsPublished, p.IsPinned, p.SEOTitle, p.SEODescription, publishedAt).
		Scan(&p.ID, &p.ViewCount, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
}

// UpdateParams carries partial updates; nil fields are left untouched.
type UpdateParams struct {
	Title          *string
	Excerpt        *string
	Content        *string
	Tags           *[]string
	IsPinned       *bool
	SEOTitle       *string
	SEODescription *string
}

// Update patches a post with whatever fields are set.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.BlogPost, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`UPDATE blog_posts SET
			title = COALESCE($2, title),
			excerpt = COALESCE($3, excerpt),
			content = COALESCE($4, content),
			tags = COALESCE($5, tags),
			is_pinned = COALESCE($6, is_pinned),
			seo_title = COALESCE($7, seo_title),
			seo_description = COALESCE($8, seo_description),
			updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+postColumns,
		id, params.Title, params.Excerpt, params.Content, params.Tags,
		params.IsPinned, params.SEOTitle, params.SEODescription))
}

// SetPublished toggles publication. The first publish stamps published_at;
// later toggles keep the original date.
func (r *Repository) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.BlogPost, error) {
	return scanPost(r.pool.QueryRow(ctx,
		`UPDATE blog_posts SET
			is_published = $2,
			published_at = CASE WHEN $2 AND published_at IS NULL THEN NOW() ELSE published_at END,
			updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+postColumns, id, published))
}

// Delete removes a post.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
