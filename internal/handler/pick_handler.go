package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/survivor-api/internal/service"
)

// PickHandler обрабатывает запросы к пикам
type PickHandler struct {
	pickService *service.PickService
}

// NewPickHandler создает новый обработчик пиков
func NewPickHandler(pickService *service.PickService) *PickHandler {
	return &PickHandler{pickService: pickService}
}

// PickCreateRequest — запрос на создание пика
type PickCreateRequest struct {
	EntryID uint `json:"entry_id" binding:"required"`
	WeekID  uint `json:"week_id" binding:"required"`
	TeamID  uint `json:"team_id" binding:"required"`
}

// PickUpdateRequest — запрос на смену команды пика
type PickUpdateRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
}

// Create создает пик для заявки
func (h *PickHandler) Create(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	var req PickCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pick, err := h.pickService.CreatePick(userID, req.EntryID, req.WeekID, req.TeamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": pick.ID})
}

// Update меняет команду существующего пика
func (h *PickHandler) Update(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}
	pickID := c.MustGet("pickID").(uint)

	var req PickUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pick, err := h.pickService.UpdatePick(userID, pickID, req.TeamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": pick.ID})
}
