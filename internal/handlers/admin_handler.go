package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sk192011s/2d-backup/internal/market"
	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/services"
)

// AdminHandler handles the operator-only API surface.
type AdminHandler struct {
	adminService      *services.AdminService
	settlementService *services.SettlementService
	blocklistService  *services.BlocklistService
	historyService    *services.HistoryService
	wagerService      *services.WagerService
	authService       *services.AuthService
	clock             market.Clock
}

func NewAdminHandler(
	adminService *services.AdminService,
	settlementService *services.SettlementService,
	blocklistService *services.BlocklistService,
	historyService *services.HistoryService,
	wagerService *services.WagerService,
	authService *services.AuthService,
	clock market.Clock,
) *AdminHandler {
	return &AdminHandler{
		adminService:      adminService,
		settlementService: settlementService,
		blocklistService:  blocklistService,
		historyService:    historyService,
		wagerService:      wagerService,
		authService:       authService,
		clock:             clock,
	}
}

// TopUpRequest is the body for POST /admin/topup.
type TopUpRequest struct {
	Username string `json:"username" binding:"required"`
	Amount   int64  `json:"amount" binding:"required"`
}

// TopUp handles POST /admin/topup
func (h *AdminHandler) TopUp(c *gin.Context) {
	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminService.TopUp(c.Request.Context(), req.Username, req.Amount); err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "top-up applied"})
}

// SettleRequest is the body for POST /admin/settle.
type SettleRequest struct {
	WinningNumber string `json:"winningNumber" binding:"required"`
	Session       string `json:"session" binding:"required"`
}

// Settle handles POST /admin/settle
func (h *AdminHandler) Settle(c *gin.Context) {
	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, ok := market.ParseSession(req.Session)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session must be MORNING or EVENING"})
		return
	}

	summary, err := h.settlementService.Settle(c.Request.Context(), req.WinningNumber, session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "settlement failed"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// BlockRequest is the body for POST /admin/blocks.
type BlockRequest struct {
	Kind  string `json:"kind" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// AddBlock handles POST /admin/blocks
func (h *AdminHandler) AddBlock(c *gin.Context) {
	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := models.BlockKind(req.Kind)
	switch kind {
	case models.BlockDirect, models.BlockHead, models.BlockTail:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be direct, head or tail"})
		return
	}

	blocked, err := h.blocklistService.Block(c.Request.Context(), kind, req.Value)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add block entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocked": blocked})
}

// RemoveBlock handles DELETE /admin/blocks/:number
func (h *AdminHandler) RemoveBlock(c *gin.Context) {
	number := c.Param("number")
	if err := h.blocklistService.Unblock(c.Request.Context(), number); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove block entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "block entry removed"})
}

// ClearBlocks handles DELETE /admin/blocks
func (h *AdminHandler) ClearBlocks(c *gin.Context) {
	if err := h.blocklistService.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear block entries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "blocklist cleared"})
}

// ListBlocks handles GET /admin/blocks
func (h *AdminHandler) ListBlocks(c *gin.Context) {
	numbers, err := h.blocklistService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list block entries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": numbers})
}

// UpdateSettings handles PUT /admin/settings
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req services.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminService.UpdateSettings(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "settings updated"})
}

// ManualHistoryRequest is the body for POST /admin/history.
type ManualHistoryRequest struct {
	Date    string `json:"date" binding:"required"`
	Morning string `json:"morning"`
	Evening string `json:"evening"`
}

// AddHistory handles POST /admin/history
func (h *AdminHandler) AddHistory(c *gin.Context) {
	var req ManualHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.historyService.AddManual(c.Request.Context(), req.Date, req.Morning, req.Evening); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "history record saved"})
}

// RecentWagers handles GET /admin/wagers
func (h *AdminHandler) RecentWagers(c *gin.Context) {
	wagers, err := h.wagerService.RecentWagers(c.Request.Context(), 500)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch wagers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wagers": wagers})
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.StatsForDay(c.Request.Context(), h.clock.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute daily stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ResetPasswordRequest is the body for POST /admin/reset-password.
type ResetPasswordRequest struct {
	Username    string `json:"username" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// ResetPassword handles POST /admin/reset-password
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), req.Username, req.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset"})
}
