package resources

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/calm-lily/backend/internal/middleware"
	"github.com/calm-lily/backend/internal/models"
	"github.com/calm-lily/backend/pkg/response"
	"github.com/calm-lily/backend/pkg/utils"
)

// Handler exposes the resource hub endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a resources handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// ListCategories returns every category.
func (h *Handler) ListCategories(c *gin.Context) {
	list, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		response.Internal(c, "failed to list categories")
		return
	}
	if list == nil {
		list = []models.ResourceCategory{}
	}
	response.OK(c, gin.H{"results": list})
}

// List returns published resources; ?category= and ?type= filter.
func (h *Handler) List(c *gin.Context) {
	resourceType := c.Query("type")
	if resourceType != "" && !validResourceType(resourceType) {
		response.BadRequest(c, "invalid resource type")
		return
	}
	list, err := h.repo.ListPublished(c.Request.Context(), c.Query("category"), resourceType)
	if err != nil {
		h.logger.Error("failed to list resources", zap.Error(err))
		response.Internal(c, "failed to list resources")
		return
	}
	if list == nil {
		list = []models.Resource{}
	}
	response.OK(c, gin.H{"results": list})
}

func validResourceType(t string) bool {
	switch t {
	case "pdf", "audio", "video", "link", "guide":
		return true
	}
	return false
}

// Get returns one published resource by slug. Premium resources require a
// logged-in caller; the route carries optional auth.
func (h *Handler) Get(c *gin.Context) {
	res, err := h.repo.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "resource not found")
			return
		}
		h.logger.Error("failed to load resource", zap.Error(err))
		response.Internal(c, "failed to load resource")
		return
	}
	if res.IsPremium {
		if _, ok := middleware.UserID(c); !ok {
			response.Unauthorized(c, "sign in to access this resource")
			return
		}
	}
	response.OK(c, res)
}

// Download records a download and returns the resource URL.
func (h *Handler) Download(c *gin.Context) {
	res, err := h.repo.TrackDownload(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "resource not found")
			return
		}
		h.logger.Error("failed to track download", zap.Error(err))
		response.Internal(c, "failed to track download")
		return
	}
	if res.IsPremium {
		if _, ok := middleware.UserID(c); !ok {
			response.Unauthorized(c, "sign in to access this resource")
			return
		}
	}
	response.OK(c, gin.H{"url": res.ExternalURL, "download_count": res.DownloadCount})
}

// CategoryRequest is the admin create-category body.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"order"`
}

// AdminCreateCategory creates a category with a slug derived from the name.
func (h *Handler) AdminCreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name is required")
		return
	}
	if req.Icon == "" {
		req.Icon = "FileText"
	}
	cat := &models.ResourceCategory{
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
		Icon:        req.Icon,
		SortOrder:   req.SortOrder,
	}
	if err := h.repo.CreateCategory(c.Request.Context(), cat); err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		response.Internal(c, "failed to create category")
		return
	}
	response.Created(c, cat)
}

// AdminDeleteCategory removes a category.
func (h *Handler) AdminDeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}
	deleted, err := h.repo.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete category", zap.Error(err))
		response.Internal(c, "failed to delete category")
		return
	}
	if !deleted {
		response.NotFound(c, "category not found")
		return
	}
	response.NoContent(c)
}

// CreateRequest is the admin create-resource body.
type CreateRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	CategoryID   *int64 `json:"category_id"`
	ResourceType string `json:"resource_type" binding:"required"`
	ExternalURL  string `json:"external_url"`
	Content      string `json:"content"`
	IsPublished  *bool  `json:"is_published"`
	IsPremium    bool   `json:"is_premium"`
}

// AdminCreate creates a resource.
func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "title and resource_type are required")
		return
	}
	if !validResourceType(req.ResourceType) {
		response.BadRequest(c, "invalid resource type")
		return
	}
	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}
	res := &models.Resource{
		Title:        req.Title,
		Slug:         utils.Slugify(req.Title),
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		ResourceType: req.ResourceType,
		ExternalURL:  req.ExternalURL,
		Content:      req.Content,
		IsPublished:  published,
		IsPremium:    req.IsPremium,
	}
	if err := h.repo.Create(c.Request.Context(), res); err != nil {
		h.logger.Error("failed to create resource", zap.Error(err))
		response.Internal(c, "failed to create resource")
		return
	}
	response.Created(c, res)
}

// PatchRequest carries partial resource updates.
type PatchRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	CategoryID   *int64  `json:"category_id"`
	ResourceType *string `json:"resource_type"`
	ExternalURL  *string `json:"external_url"`
	Content      *string `json:"content"`
	IsPublished  *bool   `json:"is_published"`
	IsPremium    *bool   `json:"is_premium"`
}

// AdminPatch updates whatever fields the body sets.
func (h *Handler) AdminPatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid resource id")
		return
	}
	var req PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if req.ResourceType != nil && !validResourceType(*req.ResourceType) {
		response.BadRequest(c, "invalid resource type")
		return
	}
	res, err := h.repo.Update(c.Request.Context(), id, UpdateParams{
		Title:        req.Title,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		ResourceType: req.ResourceType,
		ExternalURL:  req.ExternalURL,
		Content:      req.Content,
		IsPublished:  req.IsPublished,
		IsPremium:    req.IsPremium,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "resource not found")
			return
		}
		h.logger.Error("failed to update resource", zap.Error(err))
		response.Internal(c, "failed to update resource")
		return
	}
	response.OK(c, res)
}

// AdminDelete removes a resource.
func (h *Handler) AdminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid resource id")
		return
	}
	deleted, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete resource", zap.Error(err))
		response.Internal(c, "failed to delete resource")
		return
	}
	if !deleted {
		response.NotFound(c, "resource not found")
		return
	}
	response.NoContent(c)
}
