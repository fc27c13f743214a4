package goals

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/calm-lily/backend/internal/middleware"
	"github.com/calm-lily/backend/internal/models"
	"github.com/calm-lily/backend/pkg/response"
)

const dateLayout = "2006-01-02"

// Handler exposes the coaching goal endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a goals handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// ListMine returns the caller's goals.
func (h *Handler) ListMine(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	list, err := h.repo.ListByClient(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list goals", zap.Error(err))
		response.Internal(c, "failed to list goals")
		return
	}
	if list == nil {
		list = []models.Goal{}
	}
	response.OK(c, gin.H{"results": list})
}

// GetMine returns one of the caller's goals. Goals of other clients look
// like they do not exist.
func (h *Handler) GetMine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid goal id")
		return
	}
	goal, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "goal not found")
			return
		}
		h.logger.Error("failed to load goal", zap.Error(err))
		response.Internal(c, "failed to load goal")
		return
	}
	userID, _ := middleware.UserID(c)
	if goal.ClientID != userID && !middleware.IsAdmin(c) {
		response.NotFound(c, "goal not found")
		return
	}
	response.OK(c, goal)
}

// CreateRequest is the admin create-goal body.
type CreateRequest struct {
	ClientID    string `json:"client_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	TargetDate  string `json:"target_date"`
}

func validStatus(s string) bool {
	switch s {
	case "active", "completed", "paused":
		return true
	}
	return false
}

// AdminCreate creates a goal for a client.
func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "client_id and title are required")
		return
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}
	if req.Status == "" {
		req.Status = "active"
	}
	if !validStatus(req.Status) {
		response.BadRequest(c, "status must be active, completed or paused")
		return
	}
	if req.Progress < 0 || req.Progress > 100 {
		response.BadRequest(c, "progress must be between 0 and 100")
		return
	}
	var targetDate *time.Time
	if req.TargetDate != "" {
		d, err := time.Parse(dateLayout, req.TargetDate)
		if err != nil {
			response.BadRequest(c, "target_date must be YYYY-MM-DD")
			return
		}
		targetDate = &d
	}
	goal := &models.Goal{
		ClientID:    clientID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Progress:    req.Progress,
		TargetDate:  targetDate,
	}
	if err := h.repo.Create(c.Request.Context(), goal, targetDate); err != nil {
		h.logger.Error("failed to create goal", zap.Error(err))
		response.Internal(c, "failed to create goal")
		return
	}
	response.Created(c, goal)
}

// PatchRequest carries partial goal updates.
type PatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Progress    *int    `json:"progress"`
	TargetDate  *string `json:"target_date"`
}

// AdminPatch updates whatever fields the body sets.
func (h *Handler) AdminPatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid goal id")
		return
	}
	var req PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if req.Status != nil && !validStatus(*req.Status) {
		response.BadRequest(c, "status must be active, completed or paused")
		return
	}
	if req.Progress != nil && (*req.Progress < 0 || *req.Progress > 100) {
		response.BadRequest(c, "progress must be between 0 and 100")
		return
	}
	params := UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Progress:    req.Progress,
	}
	if req.TargetDate != nil {
		d, err := time.Parse(dateLayout, *req.TargetDate)
		if err != nil {
			response.BadRequest(c, "target_date must be YYYY-MM-DD")
			return
		}
		params.TargetDate = &d
	}
	goal, err := h.repo.Update(c.Request.Context(), id, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "goal not found")
			return
		}
		h.logger.Error("failed to update goal", zap.Error(err))
		response.Internal(c, "failed to update goal")
		return
	}
	response.OK(c, goal)
}

// AdminListForClient returns a client's goals.
func (h *Handler) AdminListForClient(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}
	list, err := h.repo.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.logger.Error("failed to list goals", zap.Error(err))
		response.Internal(c, "failed to list goals")
		return
	}
	if list == nil {
		list = []models.Goal{}
	}
	response.OK(c, gin.H{"results": list})
}

// AdminDelete removes a goal.
func (h *Handler) AdminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid goal id")
		return
	}
	deleted, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete goal", zap.Error(err))
		response.Internal(c, "failed to delete goal")
		return
	}
	if !deleted {
		response.NotFound(c, "goal not found")
		return
	}
	response.NoContent(c)
}
