package models

import (
	"time"

	"github.com/google/uuid"
)

// AIUsageLog tracks one assistant exchange, keyed for rate limiting.
type AIUsageLog struct {
	ID         int64      `json:"id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	SessionKey string     `json:"session_key"`
	Prompt     string     `json:"prompt"`
	Response   string     `json:"response"`
	TokensUsed int        `json:"tokens_used"`
	CreatedAt  time.Time  `json:"created_at"`
}
