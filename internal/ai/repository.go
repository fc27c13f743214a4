package ai

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calm-lily/backend/internal/models"
)

// Repository handles assistant usage logging.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an AI usage repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// LogUsage records one exchange.
func (r *Repository) LogUsage(ctx context.Context, userID *uuid.UUID, sessionKey, prompt, reply string, tokens int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ai_usage_logs (user_id, session_key, prompt, response, tokens_used)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, sessionKey, prompt, reply, tokens)
	return err
}

// ListUsage returns recent exchanges, newest first.
func (r *Repository) ListUsage(ctx context.Context, limit int) ([]models.AIUsageLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, session_key, prompt, response, tokens_used, created_at
		 FROM ai_usage_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.AIUsageLog
	for rows.Next() {
		var l models.AIUsageLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.SessionKey, &l.Prompt, &l.Response, &l.TokensUsed, &l.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
