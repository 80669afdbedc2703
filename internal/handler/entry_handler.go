package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
	"github.com/yourusername/survivor-api/internal/service"
)

// EntryHandler обрабатывает запросы к заявкам
type EntryHandler struct {
	entryService *service.EntryService
}

// NewEntryHandler создает новый обработчик заявок
func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// EntryCreateRequest — запрос на создание заявки
type EntryCreateRequest struct {
	WeekID uint            `json:"week_id" binding:"required"`
	Name   string          `json:"name" binding:"required"`
	Picks  json.RawMessage `json:"picks"`
}

// EntryUpdateRequest — частичное обновление заявки
type EntryUpdateRequest struct {
	Name  *string         `json:"name"`
	Picks json.RawMessage `json:"picks"`
}

// Create создает заявку текущего пользователя
func (h *EntryHandler) Create(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	var req EntryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.entryService.CreateEntry(userID, req.WeekID, req.Name, req.Picks)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": entry.ID})
}

// ListUserEntries возвращает заявки пользователя (публичный список)
func (h *EntryHandler) ListUserEntries(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	entries, err := h.entryService.ListUserEntries(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, gin.H{"id": e.ID, "week_id": e.WeekID, "picks": e.Picks})
	}
	c.JSON(http.StatusOK, out)
}

// Update обновляет заявку владельца
func (h *EntryHandler) Update(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	entryID := c.MustGet("entryID").(uint)

	var req EntryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.entryService.UpdateEntry(entryID, userID, service.EntryUpdateInput{
		Name:  req.Name,
		Picks: req.Picks,
	})
	if err != nil {
		// Закрытая неделя для заявок — 400, не 403: исторический контракт
		if errors.Is(err, apperrors.ErrWeekLocked) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": entry.ID})
}

// Delete удаляет заявку владельца
func (h *EntryHandler) Delete(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	entryID := c.MustGet("entryID").(uint)

	if err := h.entryService.DeleteEntry(entryID, userID); err != nil {
		if errors.Is(err, apperrors.ErrWeekLocked) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
