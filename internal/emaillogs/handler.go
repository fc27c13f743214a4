package emaillogs

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/calm-lily/backend/internal/models"
	"github.com/calm-lily/backend/pkg/queue"
	"github.com/calm-lily/backend/pkg/response"
)

// Handler exposes the admin email log endpoints.
type Handler struct {
	repo   *Repository
	queue  *queue.Queue
	logger *zap.Logger
}

// NewHandler creates an email logs handler.
func NewHandler(repo *Repository, q *queue.Queue, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, queue: q, logger: logger}
}

// List returns recent delivery attempts.
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list email logs", zap.Error(err))
		response.Internal(c, "failed to list email logs")
		return
	}
	if logs == nil {
		logs = []models.EmailLog{}
	}
	response.OK(c, gin.H{"results": logs})
}

// Resend re-enqueues a previously sent email using the stored body.
func (h *Handler) Resend(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid log id")
		return
	}
	entry, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "email log not found")
			return
		}
		h.logger.Error("failed to load email log", zap.Error(err), zap.Int64("log_id", id))
		response.Internal(c, "failed to load email log")
		return
	}
	if entry.BodyHTML == "" {
		response.BadRequest(c, "email body not retained, cannot resend")
		return
	}
	err = h.queue.EnqueueEmail(c.Request.Context(), queue.EmailPayload{
		EmailType:      entry.EmailType,
		BookingID:      entry.BookingID,
		RecipientEmail: entry.Recipient,
		Subject:        entry.Subject,
		BodyHTML:       entry.BodyHTML,
	})
	if err != nil {
		h.logger.Error("failed to enqueue resend", zap.Error(err), zap.Int64("log_id", id))
		response.Internal(c, "failed to enqueue resend")
		return
	}
	response.OK(c, gin.H{"queued": true})
}
