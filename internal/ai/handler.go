package ai

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calm-lily/backend/internal/middleware"
	"github.com/calm-lily/backend/internal/models"
	"github.com/calm-lily/backend/internal/settings"
	"github.com/calm-lily/backend/pkg/response"
)

// Handler exposes the assistant endpoints.
type Handler struct {
	client   Client
	limiter  *Limiter
	repo     *Repository
	settings *settings.Store
	logger   *zap.Logger
}

// NewHandler creates an AI handler. client may be nil when the assistant is
// unconfigured; the runtime enabled flag lives in the settings store.
func NewHandler(client Client, limiter *Limiter, repo *Repository, store *settings.Store, logger *zap.Logger) *Handler {
	return &Handler{client: client, limiter: limiter, repo: repo, settings: store, logger: logger}
}

// enabled checks the settings store on every call so an admin toggle takes
// effect without a restart.
func (h *Handler) enabled() bool {
	return h.settings.Snapshot().AIEnabled && h.client != nil
}

// Status reports whether the assistant is available.
func (h *Handler) Status(c *gin.Context) {
	response.OK(c, gin.H{"enabled": h.enabled()})
}

// callerKey identifies the caller for rate limiting: the user ID when
// authenticated, a hash of IP and user agent otherwise.
func callerKey(c *gin.Context) string {
	if userID, ok := middleware.UserID(c); ok {
		return UserKey(userID.String())
	}
	return AnonKey(c.ClientIP(), c.Request.UserAgent())
}

// ChatRequest is one assistant prompt.
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// Chat proxies one message to the assistant.
func (h *Handler) Chat(c *gin.Context) {
	if !h.enabled() {
		response.ServiceUnavailable(c, "assistant is not available")
		return
	}
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "message is required (max 2000 characters)")
		return
	}
	ctx := c.Request.Context()
	key := callerKey(c)
	allowed, retryAfter, err := h.limiter.Allow(ctx, key)
	if err != nil {
		h.logger.Error("rate limit check failed", zap.Error(err))
		response.Internal(c, "failed to process message")
		return
	}
	if !allowed {
		response.TooManyRequests(c, "assistant rate limit reached", retryAfter)
		return
	}
	reply, tokens, err := h.client.Generate(ctx, req.Message)
	if err != nil {
		h.logger.Error("assistant generate failed", zap.Error(err))
		response.BadGateway(c, "assistant is temporarily unavailable")
		return
	}
	var uid *uuid.UUID
	if id, ok := middleware.UserID(c); ok {
		uid = &id
	}
	if err := h.repo.LogUsage(ctx, uid, key, req.Message, reply, tokens); err != nil {
		h.logger.Error("failed to log assistant usage", zap.Error(err))
	}
	response.OK(c, gin.H{"reply": reply, "tokens_used": tokens})
}

// AdminTest sends a canned prompt to verify provider connectivity.
func (h *Handler) AdminTest(c *gin.Context) {
	if !h.enabled() {
		response.ServiceUnavailable(c, "assistant is not available")
		return
	}
	reply, tokens, err := h.client.Generate(c.Request.Context(), "Reply with the single word: ok")
	if err != nil {
		h.logger.Error("assistant test failed", zap.Error(err))
		response.BadGateway(c, "assistant is temporarily unavailable")
		return
	}
	response.OK(c, gin.H{"reply": reply, "tokens_used": tokens})
}

// AdminListUsage returns recent assistant exchanges.
func (h *Handler) AdminListUsage(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	list, err := h.repo.ListUsage(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list assistant usage", zap.Error(err))
		response.Internal(c, "failed to list assistant usage")
		return
	}
	if list == nil {
		list = []models.AIUsageLog{}
	}
	response.OK(c, gin.H{"results": list})
}
