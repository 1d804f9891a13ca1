package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sk192011s/2d-backup/internal/middleware"
	"github.com/Sk192011s/2d-backup/internal/services"
)

// UserHandler handles the authenticated account surface.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me handles GET /user/me
func (h *UserHandler) Me(c *gin.Context) {
	username := c.GetString(middleware.ContextUsername)

	account, err := h.userService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load account"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// UpdateAvatarRequest is the body for PUT /user/avatar.
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// UpdateAvatar handles PUT /user/avatar
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	var req UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := c.GetString(middleware.ContextUsername)
	if err := h.userService.UpdateAvatar(c.Request.Context(), username, req.Avatar); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "avatar updated"})
}

// Transactions handles GET /user/transactions
func (h *UserHandler) Transactions(c *gin.Context) {
	username := c.GetString(middleware.ContextUsername)

	txs, err := h.userService.Transactions(c.Request.Context(), username, 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
