package profile

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/calm-lily/backend/internal/auth"
	"github.com/calm-lily/backend/internal/middleware"
	"github.com/calm-lily/backend/pkg/response"
	"github.com/calm-lily/backend/pkg/utils"
)

// Handler exposes the profile endpoints.
type Handler struct {
	users  *auth.Repository
	logger *zap.Logger
}

// NewHandler creates a profile handler.
func NewHandler(users *auth.Repository, logger *zap.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// UpdateRequest is the profile update body.
type UpdateRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	Concerns  string `json:"concerns"`
}

// Update changes the caller's profile fields.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "first_name and last_name are required")
		return
	}
	userID, _ := middleware.UserID(c)
	user, err := h.users.UpdateProfile(c.Request.Context(), userID, req.FirstName, req.LastName, req.Phone, req.Concerns)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "user not found")
			return
		}
		h.logger.Error("failed to update profile", zap.Error(err))
		response.Internal(c, "failed to update profile")
		return
	}
	response.OK(c, user)
}

// PasswordRequest is the password change body.
type PasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword replaces the caller's password after verifying the
// current one.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "current_password and new_password (min 8 chars) are required")
		return
	}
	userID, _ := middleware.UserID(c)
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "user not found")
			return
		}
		h.logger.Error("failed to load user", zap.Error(err))
		response.Internal(c, "failed to change password")
		return
	}
	if !utils.CheckPassword(req.CurrentPassword, user.Password) {
		response.Forbidden(c, "current password is incorrect")
		return
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		response.Internal(c, "failed to change password")
		return
	}
	if err := h.users.UpdatePassword(c.Request.Context(), userID, hash); err != nil {
		h.logger.Error("failed to update password", zap.Error(err))
		response.Internal(c, "failed to change password")
		return
	}
	response.OK(c, gin.H{"changed": true})
}
