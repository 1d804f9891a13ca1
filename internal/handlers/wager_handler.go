package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sk192011s/2d-backup/internal/market"
	"github.com/Sk192011s/2d-backup/internal/middleware"
	"github.com/Sk192011s/2d-backup/internal/services"
)

// WagerHandler handles wager placement and history requests.
type WagerHandler struct {
	wagerService *services.WagerService
	clock        market.Clock
}

func NewWagerHandler(wagerService *services.WagerService, clock market.Clock) *WagerHandler {
	return &WagerHandler{wagerService: wagerService, clock: clock}
}

// PlaceWagerRequest is the body for POST /wagers.
type PlaceWagerRequest struct {
	Numbers []string `json:"numbers" binding:"required"`
	Amount  int64    `json:"amount"`
}

var placementStatusCodes = map[services.PlacementStatus]int{
	services.PlacementSuccess:           http.StatusOK,
	services.PlacementClosed:            http.StatusForbidden,
	services.PlacementInvalidAmount:     http.StatusUnprocessableEntity,
	services.PlacementBlocked:           http.StatusUnprocessableEntity,
	services.PlacementInsufficientFunds: http.StatusPaymentRequired,
	services.PlacementRetry:             http.StatusConflict,
}

// PlaceWager handles POST /wagers
func (h *WagerHandler) PlaceWager(c *gin.Context) {
	var req PlaceWagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := c.GetString(middleware.ContextUsername)
	result, err := h.wagerService.PlaceWager(c.Request.Context(), username, req.Numbers, req.Amount, h.clock.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place wager"})
		return
	}

	code, ok := placementStatusCodes[result.Status]
	if !ok {
		code = http.StatusOK
	}
	c.JSON(code, result)
}

// MarketState handles GET /market
func (h *WagerHandler) MarketState(c *gin.Context) {
	now := h.clock.Now()
	mins := market.MinutesSinceMidnight(now)
	c.JSON(http.StatusOK, gin.H{
		"state":   market.StateOf(mins),
		"session": market.SessionOf(mins),
		"minutes": mins,
	})
}

// MyWagers handles GET /wagers
func (h *WagerHandler) MyWagers(c *gin.Context) {
	username := c.GetString(middleware.ContextUsername)
	wagers, err := h.wagerService.WagersByUsername(c.Request.Context(), username, 200)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch wagers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wagers": wagers})
}

// ClearSettled handles DELETE /wagers/settled
func (h *WagerHandler) ClearSettled(c *gin.Context) {
	username := c.GetString(middleware.ContextUsername)
	deleted, err := h.wagerService.ClearSettled(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear settled wagers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
