package notes

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/calm-lily/backend/internal/middleware"
	"github.com/calm-lily/backend/internal/models"
	"github.com/calm-lily/backend/pkg/response"
)

// Handler exposes the session note endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a notes handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// List returns the caller's notes.
func (h *Handler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	list, err := h.repo.ListByClient(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list notes", zap.Error(err))
		response.Internal(c, "failed to list notes")
		return
	}
	if list == nil {
		list = []models.SessionNote{}
	}
	response.OK(c, gin.H{"results": list})
}

// Get returns one of the caller's notes.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid note id")
		return
	}
	userID, _ := middleware.UserID(c)
	note, err := h.repo.Get(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "note not found")
			return
		}
		h.logger.Error("failed to load note", zap.Error(err))
		response.Internal(c, "failed to load note")
		return
	}
	response.OK(c, note)
}

// CreateRequest is the create-note body.
type CreateRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content" binding:"required"`
	BookingID *string `json:"booking_id"`
}

// Create saves a note for the caller, optionally linked to a booking.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "content is required")
		return
	}
	userID, _ := middleware.UserID(c)
	note := &models.SessionNote{ClientID: userID, Title: req.Title, Content: req.Content}
	if req.BookingID != nil {
		bookingID, err := uuid.Parse(*req.BookingID)
		if err != nil {
			response.BadRequest(c, "invalid booking id")
			return
		}
		note.BookingID = &bookingID
	}
	if err := h.repo.Create(c.Request.Context(), note); err != nil {
		h.logger.Error("failed to create note", zap.Error(err))
		response.Internal(c, "failed to create note")
		return
	}
	response.Created(c, note)
}

// PatchRequest carries partial note updates.
type PatchRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Patch updates one of the caller's notes.
func (h *Handler) Patch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid note id")
		return
	}
	var req PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	userID, _ := middleware.UserID(c)
	note, err := h.repo.Update(c.Request.Context(), id, userID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "note not found")
			return
		}
		h.logger.Error("failed to update note", zap.Error(err))
		response.Internal(c, "failed to update note")
		return
	}
	response.OK(c, note)
}

// Delete removes one of the caller's notes.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid note id")
		return
	}
	userID, _ := middleware.UserID(c)
	deleted, err := h.repo.Delete(c.Request.Context(), id, userID)
	if err != nil {
		h.logger.Error("failed to delete note", zap.Error(err))
		response.Internal(c, "failed to delete note")
		return
	}
	if !deleted {
		response.NotFound(c, "note not found")
		return
	}
	response.NoContent(c)
}
