package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calm-lily/backend/internal/models"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, role, concerns, how_heard,
	consent_data, consent_terms, consent_date, is_active, created_at, updated_at`

// Repository handles user persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Phone, &u.Role,
		&u.Concerns, &u.HowHeard, &u.ConsentData, &u.ConsentTerms, &u.ConsentDate,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail returns a user by email (lowercased).
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = LOWER($1)`, email))
}

// CreateUserParams holds registration fields beyond the credentials.
type CreateUserParams struct {
	FirstName    string
	LastName     string
	Phone        string
	Concerns     string
	HowHeard     string
	ConsentData  bool
	ConsentTerms bool
}

// Create inserts a new client user.
func (r *Repository) Create(ctx context.Context, email, passwordHash string, p CreateUserParams) (*models.User, error) {
	var consentDate *time.Time
	if p.ConsentData || p.ConsentTerms {
		now := time.Now()
		consentDate = &now
	}
	return scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, phone, concerns, how_heard,
			consent_data, consent_terms, consent_date)
		 VALUES (LOWER($1), $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+userColumns,
		email, passwordHash, p.FirstName, p.LastName, p.Phone, p.Concerns, p.HowHeard,
		p.ConsentData, p.ConsentTerms, consentDate))
}

// UpdateProfile updates the caller-editable profile fields.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, phone, concerns string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, phone = $3, concerns = $4, updated_at = NOW()
		 WHERE id = $5
		 RETURNING `+userColumns,
		firstName, lastName, phone, concerns, id))
}

// UpdatePassword replaces the stored password hash.
func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id)
	return err
}
