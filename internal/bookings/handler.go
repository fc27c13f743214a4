package bookings

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/calm-lily/backend/internal/auth"
	"github.com/calm-lily/backend/internal/middleware"
	"github.com/calm-lily/backend/internal/models"
	"github.com/calm-lily/backend/pkg/response"
)

// CreateBookingRequest is the body for POST /bookings/create/.
type CreateBookingRequest struct {
	SlotID      int64  `json:"slot_id" binding:"required"`
	SessionType string `json:"session_type" binding:"required"`
	Notes       string `json:"notes"`
}

// CreateSlotRequest is the body for POST /admin/bookings/slots/create/.
type CreateSlotRequest struct {
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	SessionType string `json:"session_type" binding:"required"`
}

// Handler handles booking HTTP endpoints.
type Handler struct {
	repo     *Repository
	users    *auth.Repository
	notifier *Notifier
	logger   *zap.Logger
}

// NewHandler creates a bookings handler.
func NewHandler(repo *Repository, users *auth.Repository, notifier *Notifier, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, users: users, notifier: notifier, logger: logger}
}

// ListAvailableSlots handles GET /bookings/slots/.
func (h *Handler) ListAvailableSlots(c *gin.Context) {
	sessionType := c.Query("session_type")
	if sessionType != "" && !models.ValidSessionType(sessionType) {
		response.BadRequest(c, "invalid session_type")
		return
	}
	slots, err := h.repo.ListAvailableSlots(c.Request.Context(), sessionType)
	if err != nil {
		h.logger.Error("list slots failed", zap.Error(err))
		response.Internal(c, "failed to list slots")
		return
	}
	if slots == nil {
		slots = []models.Slot{}
	}
	response.OK(c, slots)
}

// Create handles POST /bookings/create/.
func (h *Handler) Create(c *gin.Context) {
	clientID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "missing user context")
		return
	}
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !models.ValidSessionType(req.SessionType) {
		response.BadRequest(c, "invalid session_type")
		return
	}

	booking := &models.Booking{
		ClientID:    clientID,
		SlotID:      &req.SlotID,
		SessionType: models.SessionType(req.SessionType),
		Notes:       req.Notes,
		VideoRoomID: NewRoomID(),
	}
	if err := h.repo.CreateBooking(c.Request.Context(), booking); err != nil {
		if err == ErrSlotUnavailable {
			response.NotFound(c, "slot not found or no longer available")
			return
		}
		h.logger.Error("create booking failed", zap.Error(err))
		response.Internal(c, "failed to create booking")
		return
	}

	if slot, err := h.repo.GetSlot(c.Request.Context(), req.SlotID); err == nil {
		booking.Slot = slot
	}
	h.logger.Info("new booking",
		zap.String("booking_id", booking.ID.String()),
		zap.String("client_id", clientID.String()))

	// Fire-and-forget: the enqueue logs its own failures and must never
	// fail the request.
	if client, err := h.users.GetByID(c.Request.Context(), clientID); err == nil {
		h.notifier.NotifyAdminNewBooking(c.Request.Context(), booking, client)
	} else {
		h.logger.Error("client lookup for admin notification failed",
			zap.Error(err), zap.String("booking_id", booking.ID.String()))
	}

	response.Created(c, booking)
}

// ListMine handles GET /bookings/mine/.
func (h *Handler) ListMine(c *gin.Context) {
	clientID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "missing user context")
		return
	}
	list, err := h.repo.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.logger.Error("list bookings failed", zap.Error(err))
		response.Internal(c, "failed to list bookings")
		return
	}
	if list == nil {
		list = []models.Booking{}
	}
	response.OK(c, gin.H{"results": list})
}

// Cancel handles POST /bookings/:id/cancel/. A client may only cancel their
// own booking; admins may cancel any.
func (h *Handler) Cancel(c *gin.Context) {
	callerID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "missing user context")
		return
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	booking, err := h.repo.GetBooking(c.Request.Context(), bookingID)
	if err == pgx.ErrNoRows {
		response.NotFound(c, "booking not found")
		return
	}
	if err != nil {
		h.logger.Error("get booking failed", zap.Error(err))
		response.Internal(c, "failed to load booking")
		return
	}
	// Ownership failures read as not-found so booking IDs are not probeable.
	if booking.ClientID != callerID && !middleware.IsAdmin(c) {
		response.NotFound(c, "booking not found")
		return
	}

	cancelled, err := h.repo.Cancel(c.Request.Context(), bookingID)
	if err != nil {
		h.logger.Error("cancel booking failed", zap.Error(err))
		response.Internal(c, "failed to cancel booking")
		return
	}
	if !cancelled {
		response.BadRequest(c, "this booking can no longer be cancelled")
		return
	}

	h.logger.Info("booking cancelled", zap.String("booking_id", bookingID.String()))
	booking, err = h.repo.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.OK(c, gin.H{"status": models.BookingCancelled})
		return
	}
	response.OK(c, booking)
}

// AdminListAll handles GET /admin/bookings/.
func (h *Handler) AdminListAll(c *gin.Context) {
	list, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list all bookings failed", zap.Error(err))
		response.Internal(c, "failed to list bookings")
		return
	}
	if list == nil {
		list = []models.Booking{}
	}
	response.OK(c, gin.H{"results": list})
}

// AdminConfirm handles POST /admin/bookings/:id/confirm/. The confirmation
// email is sent synchronously; its failure does not undo the confirm.
func (h *Handler) AdminConfirm(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	booking, err := h.repo.GetBooking(c.Request.Context(), bookingID)
	if err == pgx.ErrNoRows {
		response.NotFound(c, "booking not found")
		return
	}
	if err != nil {
		response.Internal(c, "failed to load booking")
		return
	}

	confirmed, err := h.repo.Confirm(c.Request.Context(), bookingID)
	if err != nil {
		h.logger.Error("confirm booking failed", zap.Error(err))
		response.Internal(c, "failed to confirm booking")
		return
	}
	if !confirmed {
		response.BadRequest(c, "booking is already completed or cancelled")
		return
	}
	booking.Status = models.BookingConfirmed

	if client, err := h.users.GetByID(c.Request.Context(), booking.ClientID); err == nil {
		h.notifier.SendConfirmation(c.Request.Context(), booking, client)
	} else {
		h.logger.Error("client lookup for confirmation email failed",
			zap.Error(err), zap.String("booking_id", bookingID.String()))
		h.notifier.RecordConfirmationFailure(c.Request.Context(), booking, err)
	}

	h.logger.Info("booking confirmed", zap.String("booking_id", bookingID.String()))
	response.OK(c, booking)
}

// AdminListSlots handles GET /admin/bookings/slots/.
func (h *Handler) AdminListSlots(c *gin.Context) {
	slots, err := h.repo.ListUpcomingSlots(c.Request.Context())
	if err != nil {
		h.logger.Error("list upcoming slots failed", zap.Error(err))
		response.Internal(c, "failed to list slots")
		return
	}
	if slots == nil {
		slots = []models.Slot{}
	}
	response.OK(c, gin.H{"results": slots})
}

// AdminCreateSlot handles POST /admin/bookings/slots/create/.
func (h *Handler) AdminCreateSlot(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		response.BadRequest(c, errBadDate.Error())
		return
	}
	if _, err := time.Parse(timeLayout, req.StartTime); err != nil {
		response.BadRequest(c, errBadTime.Error())
		return
	}
	if _, err := time.Parse(timeLayout, req.EndTime); err != nil {
		response.BadRequest(c, errBadTime.Error())
		return
	}
	if !models.ValidSessionType(req.SessionType) {
		response.BadRequest(c, errBadSessionType.Error())
		return
	}

	slot, err := h.repo.CreateSlot(c.Request.Context(), date, req.StartTime, req.EndTime, req.SessionType)
	if err != nil {
		// The unique constraint on (date, start, end, type) fires here.
		response.Conflict(c, "an identical slot already exists")
		return
	}
	h.logger.Info("slot created", zap.Int64("slot_id", slot.ID))
	response.Created(c, slot)
}

// AdminBulkCreateSlots handles POST /admin/bookings/slots/bulk/.
// Idempotent: re-running an identical request creates zero new slots.
func (h *Handler) AdminBulkCreateSlots(c *gin.Context) {
	var req BulkSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	dates, err := req.ExpandDates()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created := []models.Slot{}
	for _, d := range dates {
		slot, err := h.repo.InsertSlotIfAbsent(c.Request.Context(), d, req.StartTime, req.EndTime, req.SessionType)
		if err != nil {
			h.logger.Error("bulk slot insert failed", zap.Error(err), zap.Time("date", d))
			response.Internal(c, "failed to create slots")
			return
		}
		if slot != nil {
			created = append(created, *slot)
		}
	}

	h.logger.Info("bulk slot creation", zap.Int("created", len(created)))
	response.Created(c, gin.H{"created_count": len(created), "slots": created})
}

// AdminDeleteSlot handles DELETE /admin/bookings/slots/:id/delete/.
func (h *Handler) AdminDeleteSlot(c *gin.Context) {
	slotID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid slot id")
		return
	}

	if _, err := h.repo.GetSlot(c.Request.Context(), slotID); err == pgx.ErrNoRows {
		response.NotFound(c, "slot not found")
		return
	} else if err != nil {
		response.Internal(c, "failed to load slot")
		return
	}

	active, err := h.repo.HasActiveBookingForSlot(c.Request.Context(), slotID)
	if err != nil {
		response.Internal(c, "failed to check slot bookings")
		return
	}
	if active {
		response.Conflict(c, "cannot delete: an active booking is linked to this slot")
		return
	}

	deleted, err := h.repo.DeleteSlot(c.Request.Context(), slotID)
	if err != nil {
		response.Internal(c, "failed to delete slot")
		return
	}
	if !deleted {
		response.NotFound(c, "slot not found")
		return
	}
	h.logger.Info("slot deleted", zap.Int64("slot_id", slotID))
	response.NoContent(c)
}
