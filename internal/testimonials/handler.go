package testimonials

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/calm-lily/backend/internal/models"
	"github.com/calm-lily/backend/pkg/response"
)

// Handler exposes the testimonials endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a testimonials handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// List returns published testimonials, featured first.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.ListPublished(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list testimonials", zap.Error(err))
		response.Internal(c, "failed to list testimonials")
		return
	}
	if list == nil {
		list = []models.Testimonial{}
	}
	response.OK(c, gin.H{"results": list})
}

// AdminList returns every testimonial including unpublished ones.
func (h *Handler) AdminList(c *gin.Context) {
	list, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list testimonials", zap.Error(err))
		response.Internal(c, "failed to list testimonials")
		return
	}
	if list == nil {
		list = []models.Testimonial{}
	}
	response.OK(c, gin.H{"results": list})
}

// CreateRequest is the admin create-testimonial body.
type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Role        string `json:"role"`
	Content     string `json:"content" binding:"required"`
	Rating      int    `json:"rating"`
	IsFeatured  bool   `json:"is_featured"`
	IsPublished *bool  `json:"is_published"`
}

// AdminCreate creates a testimonial.
func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name and content are required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		req.Rating = 5
	}
	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}
	t := &models.Testimonial{
		Name:        req.Name,
		Role:        req.Role,
		Content:     req.Content,
		Rating:      req.Rating,
		IsFeatured:  req.IsFeatured,
		IsPublished: published,
	}
	if err := h.repo.Create(c.Request.Context(), t); err != nil {
		h.logger.Error("failed to create testimonial", zap.Error(err))
		response.Internal(c, "failed to create testimonial")
		return
	}
	response.Created(c, t)
}

// AdminDelete removes a testimonial.
func (h *Handler) AdminDelete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid testimonial id")
		return
	}
	deleted, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete testimonial", zap.Error(err))
		response.Internal(c, "failed to delete testimonial")
		return
	}
	if !deleted {
		response.NotFound(c, "testimonial not found")
		return
	}
	response.NoContent(c)
}
