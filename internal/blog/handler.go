package blog

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

const (
	publicPageSize = 12
	adminPageSize  = 50
)

// Handler exposes the blog endpoints.
type Handler struct {
	repo    *Repository
	siteURL string
	logger  *zap.Logger
}

// NewHandler creates a blog handler.
func NewHandler(repo *Repository, siteURL string, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, siteURL: siteURL, logger: logger}
}

func pageParam(c *gin.Context) int {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return page
}

func paginated(results any, total, page, perPage int) gin.H {
	totalPages := (total + perPage - 1) / perPage
	return gin.H{
		"results":     results,
		"count":       total,
		"page":        page,
		"total_pages": totalPages,
	}
}

// postView adds the derived reading time to a post.
type postView struct {
	models.BlogPost
	ReadingTime int `json:"reading_time"`
}

func toViews(posts []models.BlogPost) []postView {
	views := make([]postView, 0, len(posts))
	for i := range posts {
		views = append(views, postView{BlogPost: posts[i], ReadingTime: posts[i].ReadingTime()})
	}
	return views
}

// List returns published posts with optional tag and search filters.
func (h *Handler) List(c *gin.Context) {
	page := pageParam(c)
	posts, total, err := h.repo.ListPublished(c.Request.Context(), c.Query("tag"), c.Query("search"), page, publicPageSize)
	if err != nil {
		h.logger.Error("failed to list posts", zap.Error(err))
		response.Internal(c, "failed to list posts")
		return
	}
	response.OK(c, paginated(toViews(posts), total, page, publicPageSize))
}

// Pinned returns the pinned published posts.
func (h *Handler) Pinned(c *gin.Context) {
	posts, err := h.repo.ListPinned(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list pinned posts", zap.Error(err))
		response.Internal(c, "failed to list pinned posts")
		return
	}
	response.OK(c, gin.H{"results": toViews(posts)})
}

// Tags returns the distinct tag set across published posts.
func (h *Handler) Tags(c *gin.Context) {
	tags, err := h.repo.Tags(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list tags", zap.Error(err))
		response.Internal(c, "failed to list tags")
		return
	}
	if tags == nil {
		tags = []string{}
	}
	response.OK(c, gin.H{"tags": tags})
}

// Get returns one published post by slug and counts the view.
func (h *Handler) Get(c *gin.Context) {
	post, err := h.repo.GetPublishedBySlugAndView(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "post not found")
			return
		}
		h.logger.Error("failed to load post", zap.Error(err))
		response.Internal(c, "failed to load post")
		return
	}
	response.OK(c, postView{BlogPost: *post, ReadingTime: post.ReadingTime()})
}

// Meta returns the Open Graph metadata for a published post.
func (h *Handler) Meta(c *gin.Context) {
	post, err := h.repo.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "post not found")
			return
		}
		h.logger.Error("failed to load post", zap.Error(err))
		response.Internal(c, "failed to load post")
		return
	}
	title := post.SEOTitle
	if title == "" {
		title = post.Title
	}
	description := post.SEODescription
	if description == "" {
		description = post.Excerpt
	}
	response.OK(c, gin.H{
		"title":       title,
		"description": description,
		"url":         h.siteURL + "/blog/" + post.Slug,
		"type":        "article",
		"author":      post.AuthorName,
	})
}

// CreateRequest is the admin create-post body.
type CreateRequest struct {
	Title          string   `json:"title" binding:"required"`
	Excerpt        string   `json:"excerpt"`
	Content        string   `json:"content" binding:"required"`
	Tags           []string `json:"tags"`
	IsPublished    bool     `json:"is_published"`
	IsPinned       bool     `json:"is_pinned"`
	SEOTitle       string   `json:"seo_title"`
	SEODescription string   `json:"seo_description"`
}

// AdminList returns all posts including drafts.
func (h *Handler) AdminList(c *gin.Context) {
	page := pageParam(c)
	posts, total, err := h.repo.ListAll(c.Request.Context(), page, adminPageSize)
	if err != nil {
		h.logger.Error("failed to list posts", zap.Error(err))
		response.Internal(c, "failed to list posts")
		return
	}
	response.OK(c, paginated(toViews(posts), total, page, adminPageSize))
}

// AdminCreate creates a post with a slug derived from the title.
func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "title and content are required")
		return
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}
	post := &models.BlogPost{
		Title:          req.Title,
		Slug:           utils.Slugify(req.Title),
		Excerpt:        req.Excerpt,
		Content:        req.Content,
		Tags:           req.Tags,
		IsPublished:    req.IsPublished,
		IsPinned:       req.IsPinned,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
	}
	if userID, ok := middleware.UserID(c); ok {
		post.AuthorID = &userID
	}
	if err := h.repo.Create(c.Request.Context(), post); err != nil {
		h.logger.Error("failed to create post", zap.Error(err))
		response.Internal(c, "failed to create post")
		return
	}
	response.Created(c, post)
}

// AdminGet returns one post by ID, draft or not.
func (h *Handler) AdminGet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	post, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "post not found")
			return
		}
		h.logger.Error("failed to load post", zap.Error(err))
		response.Internal(c, "failed to load post")
		return
	}
	response.OK(c, post)
}

// PatchRequest carries partial post updates.
type PatchRequest struct {
	Title          *string   `json:"title"`
	Excerpt        *string   `json:"excerpt"`
	Content        *string   `json:"content"`
	Tags           *[]string `json:"tags"`
	IsPinned       *bool     `json:"is_pinned"`
	SEOTitle       *string   `json:"seo_title"`
	SEODescription *string   `json:"seo_description"`
}

// AdminPatch updates whatever fields the body sets.
func (h *Handler) AdminPatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	var req PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	post, err := h.repo.Update(c.Request.Context(), id, UpdateParams{
		Title:          req.Title,
		Excerpt:        req.Excerpt,
		Content:        req.Content,
		Tags:           req.Tags,
		IsPinned:       req.IsPinned,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "post not found")
			return
		}
		h.logger.Error("failed to update post", zap.Error(err))
		response.Internal(c, "failed to update post")
		return
	}
	response.OK(c, post)
}

// PublishRequest toggles a post's publication state.
type PublishRequest struct {
	IsPublished *bool `json:"is_published" binding:"required"`
}

// AdminSetPublished publishes or unpublishes a post.
func (h *Handler) AdminSetPublished(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "is_published is required")
		return
	}
	post, err := h.repo.SetPublished(c.Request.Context(), id, *req.IsPublished)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "post not found")
			return
		}
		h.logger.Error("failed to toggle publication", zap.Error(err))
		response.Internal(c, "failed to toggle publication")
		return
	}
	response.OK(c, post)
}

// AdminDelete removes a post.
func (h *Handler) AdminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	deleted, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete post", zap.Error(err))
		response.Internal(c, "failed to delete post")
		return
	}
	if !deleted {
		response.NotFound(c, "post not found")
		return
	}
	response.NoContent(c)
}
