package leads

import (
	"fmt"
	"html"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/calm-lily/backend/internal/models"
	"github.com/calm-lily/backend/pkg/mailer"
	"github.com/calm-lily/backend/pkg/queue"
	"github.com/calm-lily/backend/pkg/response"
)

// Handler exposes the lead magnet and contact form endpoints.
type Handler struct {
	repo       *Repository
	queue      *queue.Queue
	adminEmail string
	siteURL    string
	logger     *zap.Logger
}

// NewHandler creates a leads handler.
func NewHandler(repo *Repository, q *queue.Queue, adminEmail, siteURL string, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, queue: q, adminEmail: adminEmail, siteURL: siteURL, logger: logger}
}

// LeadMagnetRequest is the free-download signup body.
type LeadMagnetRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Consent   bool   `json:"consent"`
}

// SubmitLeadMagnet signs a visitor up for the free recording. A repeat
// signup with the same email gets the same friendly response and no new row.
func (h *Handler) SubmitLeadMagnet(c *gin.Context) {
	var req LeadMagnetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "first_name and a valid email are required")
		return
	}
	if !req.Consent {
		response.BadRequest(c, "consent is required")
		return
	}
	ctx := c.Request.Context()
	exists, err := h.repo.EmailExists(ctx, req.Email)
	if err != nil {
		h.logger.Error("failed to check lead email", zap.Error(err))
		response.Internal(c, "failed to process signup")
		return
	}
	if exists {
		response.OK(c, gin.H{"message": "Check your inbox, your recording is on its way."})
		return
	}
	entry := &models.LeadMagnetEntry{FirstName: req.FirstName, Email: req.Email, Consent: req.Consent}
	if err := h.repo.CreateEntry(ctx, entry); err != nil {
		h.logger.Error("failed to save lead entry", zap.Error(err))
		response.Internal(c, "failed to process signup")
		return
	}
	body := mailer.WrapHTML("Your free relaxation recording",
		fmt.Sprintf(`<p>Hi %s,</p><p>Thank you for signing up. Your free relaxation
		recording is ready for you here:</p>
		<p><a href="%s/resources/free-relaxation-recording">Listen to your recording</a></p>
		<p>Warmly,<br>Lily</p>`, html.EscapeString(entry.FirstName), h.siteURL))
	err = h.queue.EnqueueEmail(ctx, queue.EmailPayload{
		EmailType:      "lead_magnet_delivery",
		RecipientEmail: entry.Email,
		Subject:        "Your free relaxation recording",
		BodyHTML:       body,
	})
	if err != nil {
		h.logger.Error("failed to enqueue lead delivery", zap.Error(err), zap.Int64("entry_id", entry.ID))
	} else if err := h.repo.MarkDelivered(ctx, entry.ID); err != nil {
		h.logger.Error("failed to mark lead delivered", zap.Error(err), zap.Int64("entry_id", entry.ID))
	}
	response.Created(c, gin.H{"message": "Check your inbox, your recording is on its way."})
}

// ContactRequest is the contact form body.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact stores a contact message and notifies the admin by email.
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name, email and message are required")
		return
	}
	ctx := c.Request.Context()
	msg := &models.ContactMessage{Name: req.Name, Email: req.Email, Phone: req.Phone, Message: req.Message}
	if err := h.repo.CreateMessage(ctx, msg); err != nil {
		h.logger.Error("failed to save contact message", zap.Error(err))
		response.Internal(c, "failed to send message")
		return
	}
	body := mailer.WrapHTML("New contact message",
		fmt.Sprintf(`<p><strong>%s</strong> (%s, %s) wrote:</p><blockquote>%s</blockquote>`,
			html.EscapeString(msg.Name), html.EscapeString(msg.Email),
			html.EscapeString(msg.Phone), html.EscapeString(msg.Message)))
	err := h.queue.EnqueueEmail(ctx, queue.EmailPayload{
		EmailType:      "contact_notification",
		RecipientEmail: h.adminEmail,
		Subject:        "New contact message from " + msg.Name,
		BodyHTML:       body,
	})
	if err != nil {
		h.logger.Error("failed to enqueue contact notification", zap.Error(err), zap.Int64("message_id", msg.ID))
	}
	response.Created(c, gin.H{"message": "Thank you, I will get back to you soon."})
}

// AdminListLeads returns every lead magnet signup.
func (h *Handler) AdminListLeads(c *gin.Context) {
	list, err := h.repo.ListEntries(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list leads", zap.Error(err))
		response.Internal(c, "failed to list leads")
		return
	}
	if list == nil {
		list = []models.LeadMagnetEntry{}
	}
	response.OK(c, gin.H{"results": list})
}

// AdminListMessages returns contact messages, unread first.
func (h *Handler) AdminListMessages(c *gin.Context) {
	list, err := h.repo.ListMessages(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list messages", zap.Error(err))
		response.Internal(c, "failed to list messages")
		return
	}
	if list == nil {
		list = []models.ContactMessage{}
	}
	response.OK(c, gin.H{"results": list})
}

// AdminMarkMessageRead flags a contact message as handled.
func (h *Handler) AdminMarkMessageRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid message id")
		return
	}
	ok, err := h.repo.MarkMessageRead(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to mark message read", zap.Error(err))
		response.Internal(c, "failed to mark message read")
		return
	}
	if !ok {
		response.NotFound(c, "message not found")
		return
	}
	response.OK(c, gin.H{"read": true})
}
