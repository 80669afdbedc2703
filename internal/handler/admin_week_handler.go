package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/survivor-api/internal/service"
)

// AdminWeekHandler обрабатывает админские операции над неделями
type AdminWeekHandler struct {
	finalizeService *service.FinalizeService
}

// NewAdminWeekHandler создает новый обработчик админских недель
func NewAdminWeekHandler(finalizeService *service.FinalizeService) *AdminWeekHandler {
	return &AdminWeekHandler{finalizeService: finalizeService}
}

// FinalizeScoresRequest — батч финальных счетов недели
type FinalizeScoresRequest struct {
	Games []service.GameScoreInput `json:"games"`
}

// FinalizeScores фиксирует счета игр недели и разрешает пики
// POST /api/admin/weeks/:id/finalize-scores
func (h *AdminWeekHandler) FinalizeScores(c *gin.Context) {
	weekID := c.MustGet("weekID").(uint)

	var req FinalizeScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Неразобранное тело отсекаем до каких-либо записей в БД
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrFinalizeMalformedPayload.Error()})
		return
	}

	result, err := h.finalizeService.FinalizeWeek(weekID, req.Games)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFinalizeWeekNotFound),
			errors.Is(err, service.ErrFinalizeGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrFinalizeMalformedPayload),
			errors.Is(err, service.ErrFinalizeInvalidScore):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[AdminWeekHandler] Ошибка финализации недели ID=%d: %v", weekID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize week"})
		}
		return
	}

	log.Printf("[AdminWeekHandler] Неделя ID=%d финализирована: %d игр, %d пиков",
		weekID, result.ProcessedGames, result.ProcessedPicks)
	c.JSON(http.StatusOK, result)
}
