package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
	"github.com/yourusername/survivor-api/internal/service"
)

// SyncHandler обрабатывает внутренние запросы синхронизации игр
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler создает новый обработчик синхронизации
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// SyncESPN запускает немедленную синхронизацию игр недели из ESPN
// POST /internal/sync-games/espn?year=&week=
func (h *SyncHandler) SyncESPN(c *gin.Context) {
	year, errYear := strconv.Atoi(c.Query("year"))
	week, errWeek := strconv.Atoi(c.Query("week"))
	if errYear != nil || errWeek != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and week query params are required"})
		return
	}

	result, err := h.syncService.SyncESPNGames(c.Request.Context(), year, week)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"created":        result.Created,
		"total_incoming": result.TotalIncoming,
	})
}
