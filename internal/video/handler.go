package video

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pion/webrtc/v3"
	"go.uber.org/zap"

	"github.com/calm-lily/backend/internal/bookings"
	"github.com/calm-lily/backend/internal/middleware"
	"github.com/calm-lily/backend/internal/models"
	"github.com/calm-lily/backend/pkg/response"
)

// Handler exposes the session room and signalling endpoints.
type Handler struct {
	repo       *Repository
	bookings   *bookings.Repository
	iceServers []webrtc.ICEServer
	logger     *zap.Logger
}

// NewHandler creates a video handler.
func NewHandler(repo *Repository, bookingRepo *bookings.Repository, iceServers []webrtc.ICEServer, logger *zap.Logger) *Handler {
	if len(iceServers) == 0 {
		iceServers = []webrtc.ICEServer{{URLs: []string{"stun:stun.l.google.com:19302"}}}
	}
	return &Handler{repo: repo, bookings: bookingRepo, iceServers: iceServers, logger: logger}
}

// GetRoom returns the room behind a booking plus the ICE servers to dial
// with. The room only opens once the booking is confirmed, and only to the
// booking's client or an admin.
func (h *Handler) GetRoom(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}
	booking, err := h.bookings.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "booking not found")
			return
		}
		h.logger.Error("failed to load booking", zap.Error(err), zap.String("booking_id", bookingID.String()))
		response.Internal(c, "failed to load booking")
		return
	}
	userID, _ := middleware.UserID(c)
	if booking.ClientID != userID && !middleware.IsAdmin(c) {
		response.Forbidden(c, "not a participant of this session")
		return
	}
	if booking.Status != models.BookingConfirmed {
		response.BadRequest(c, "booking is not confirmed")
		return
	}
	response.OK(c, gin.H{
		"room_id":      booking.VideoRoomID,
		"booking_id":   booking.ID,
		"session_type": booking.SessionType,
		"ice_servers":  h.iceServers,
	})
}

// SendRequest is one signalling message from a participant.
type SendRequest struct {
	Type    string `json:"type" binding:"required"`
	Payload string `json:"payload" binding:"required"`
}

// Send stores a signal for the other participant to pick up.
func (h *Handler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "type and payload are required")
		return
	}
	roomID := c.Param("roomId")
	userID, _ := middleware.UserID(c)
	signal, err := h.repo.InsertSignal(c.Request.Context(), roomID, userID, req.Type, req.Payload)
	if err != nil {
		h.logger.Error("failed to store signal", zap.Error(err), zap.String("room_id", roomID))
		response.Internal(c, "failed to store signal")
		return
	}
	response.Created(c, signal)
}

// Poll drains the caller's mailbox: every pending signal in the room not
// sent by the caller, oldest first, each delivered exactly once.
func (h *Handler) Poll(c *gin.Context) {
	roomID := c.Param("roomId")
	userID, _ := middleware.UserID(c)
	signals, err := h.repo.ConsumeSignals(c.Request.Context(), roomID, userID)
	if err != nil {
		h.logger.Error("failed to poll signals", zap.Error(err), zap.String("room_id", roomID))
		response.Internal(c, "failed to poll signals")
		return
	}
	if signals == nil {
		signals = []models.Signal{}
	}
	response.OK(c, gin.H{"signals": signals})
}

// EventRequest records one connectivity event for the audit trail.
type EventRequest struct {
	EventType string `json:"event_type" binding:"required"`
}

// LogEvent appends a join/leave/reconnect event for a room.
func (h *Handler) LogEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "event_type is required")
		return
	}
	roomID := c.Param("roomId")
	userID, _ := middleware.UserID(c)
	if err := h.repo.InsertRoomEvent(c.Request.Context(), roomID, &userID, req.EventType); err != nil {
		h.logger.Error("failed to log room event", zap.Error(err), zap.String("room_id", roomID))
		response.Internal(c, "failed to log room event")
		return
	}
	response.Created(c, gin.H{"logged": true})
}

// AdminListEvents returns a room's audit trail.
func (h *Handler) AdminListEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	events, err := h.repo.ListRoomEvents(c.Request.Context(), c.Param("roomId"), limit)
	if err != nil {
		h.logger.Error("failed to list room events", zap.Error(err))
		response.Internal(c, "failed to list room events")
		return
	}
	if events == nil {
		events = []models.RoomEvent{}
	}
	response.OK(c, gin.H{"results": events})
}
