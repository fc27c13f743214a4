package events

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/calm-lily/backend/internal/models"
	"github.com/calm-lily/backend/pkg/response"
)

const dateLayout = "2006-01-02"

// Handler exposes the events endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// eventView adds the derived remaining capacity to an event.
type eventView struct {
	models.Event
	SpotsRemaining *int `json:"spots_remaining"`
}

func toViews(list []models.Event) []eventView {
	views := make([]eventView, 0, len(list))
	for i := range list {
		views = append(views, eventView{Event: list[i], SpotsRemaining: list[i].SpotsRemaining()})
	}
	return views
}

// List returns published upcoming events; ?include_past=true adds past ones.
func (h *Handler) List(c *gin.Context) {
	includePast := c.Query("include_past") == "true"
	list, err := h.repo.ListPublished(c.Request.Context(), includePast)
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, gin.H{"results": toViews(list)})
}

// Get returns one published event.
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	event, err := h.repo.GetPublished(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "event not found")
			return
		}
		h.logger.Error("failed to load event", zap.Error(err))
		response.Internal(c, "failed to load event")
		return
	}
	response.OK(c, eventView{Event: *event, SpotsRemaining: event.SpotsRemaining()})
}

// CreateRequest is the admin create-event body.
type CreateRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Date        string  `json:"date" binding:"required"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     *string `json:"end_time"`
	Location    string  `json:"location"`
	IsOnline    bool    `json:"is_online"`
	TicketURL   string  `json:"ticket_url"`
	Price       float64 `json:"price"`
	MaxSpots    int     `json:"max_spots"`
	IsPublished *bool   `json:"is_published"`
}

// AdminList returns all events including drafts.
func (h *Handler) AdminList(c *gin.Context) {
	list, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, gin.H{"results": toViews(list)})
}

// AdminCreate creates an event.
func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "title, date and start_time are required")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}
	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}
	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		IsOnline:    req.IsOnline,
		TicketURL:   req.TicketURL,
		Price:       req.Price,
		MaxSpots:    req.MaxSpots,
		IsPublished: published,
	}
	if err := h.repo.Create(c.Request.Context(), event, date); err != nil {
		h.logger.Error("failed to create event", zap.Error(err))
		response.Internal(c, "failed to create event")
		return
	}
	response.Created(c, event)
}

// PatchRequest carries partial event updates.
type PatchRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
	Location    *string  `json:"location"`
	IsOnline    *bool    `json:"is_online"`
	TicketURL   *string  `json:"ticket_url"`
	Price       *float64 `json:"price"`
	MaxSpots    *int     `json:"max_spots"`
	SpotsTaken  *int     `json:"spots_taken"`
	IsPublished *bool    `json:"is_published"`
}

// AdminPatch updates whatever fields the body sets.
func (h *Handler) AdminPatch(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	params := UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		IsOnline:    req.IsOnline,
		TicketURL:   req.TicketURL,
		Price:       req.Price,
		MaxSpots:    req.MaxSpots,
		SpotsTaken:  req.SpotsTaken,
		IsPublished: req.IsPublished,
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			response.BadRequest(c, "date must be YYYY-MM-DD")
			return
		}
		params.Date = &date
	}
	event, err := h.repo.Update(c.Request.Context(), id, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "event not found")
			return
		}
		h.logger.Error("failed to update event", zap.Error(err))
		response.Internal(c, "failed to update event")
		return
	}
	response.OK(c, event)
}

// AdminDelete removes an event.
func (h *Handler) AdminDelete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	deleted, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete event", zap.Error(err))
		response.Internal(c, "failed to delete event")
		return
	}
	if !deleted {
		response.NotFound(c, "event not found")
		return
	}
	response.NoContent(c)
}
