package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sk192011s/2d-backup/internal/services"
)

// HistoryHandler serves the public result history and configuration.
type HistoryHandler struct {
	historyService *services.HistoryService
	adminService   *services.AdminService
}

func NewHistoryHandler(historyService *services.HistoryService, adminService *services.AdminService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService, adminService: adminService}
}

// Recent handles GET /history
func (h *HistoryHandler) Recent(c *gin.Context) {
	records, err := h.historyService.Recent(c.Request.Context(), 31)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records})
}

// Settings handles GET /config
func (h *HistoryHandler) Settings(c *gin.Context) {
	settings, err := h.adminService.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}
