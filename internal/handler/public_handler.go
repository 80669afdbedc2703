package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/survivor-api/internal/service"
)

// PublicHandler обрабатывает публичные запросы без аутентификации
type PublicHandler struct {
	revealService *service.RevealService
}

// NewPublicHandler создает новый публичный обработчик
func NewPublicHandler(revealService *service.RevealService) *PublicHandler {
	return &PublicHandler{revealService: revealService}
}

// Health — проверка живости сервиса
func (h *PublicHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SiteTime возвращает серверное время (ISO 8601, UTC)
func (h *PublicHandler) SiteTime(c *gin.Context) {
	now := time.Now().UTC()
	c.JSON(http.StatusOK, gin.H{
		"server_time": now.Format(time.RFC3339),
		"timezone":    "UTC",
	})
}

// PreReveal возвращает минимальный вид недели до reveal
func (h *PublicHandler) PreReveal(c *gin.Context) {
	weekID := c.MustGet("weekID").(uint)

	view, err := h.revealService.GetPreReveal(weekID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RevealSnapshot возвращает снимок недели: до lock_time минимальный,
// после — с распределением пиков и сводкой
func (h *PublicHandler) RevealSnapshot(c *gin.Context) {
	weekID := c.MustGet("weekID").(uint)

	snapshot, err := h.revealService.GetRevealSnapshot(weekID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
