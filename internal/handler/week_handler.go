package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/service"
)

// WeekHandler обрабатывает запросы к неделям сезона
type WeekHandler struct {
	weekService *service.WeekService
}

// NewWeekHandler создает новый обработчик недель
func NewWeekHandler(weekService *service.WeekService) *WeekHandler {
	return &WeekHandler{weekService: weekService}
}

// WeekCreateRequest — запрос на создание недели
type WeekCreateRequest struct {
	SeasonYear      int        `json:"season_year" binding:"required"`
	WeekNumber      int        `json:"week_number" binding:"required"`
	LockTime        *time.Time `json:"lock_time"`
	IneligibleTeams []string   `json:"ineligible_teams"`
	LockedGames     []uint     `json:"locked_games"`
}

// WeekUpdateRequest — частичное обновление недели
type WeekUpdateRequest struct {
	LockTime        *time.Time `json:"lock_time"`
	IneligibleTeams []string   `json:"ineligible_teams"`
	LockedGames     []uint     `json:"locked_games"`
	IsCurrent       *bool      `json:"is_current"`
}

// Create создает новую неделю (admin)
func (h *WeekHandler) Create(c *gin.Context) {
	var req WeekCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	week := &entity.Week{
		SeasonYear:      req.SeasonYear,
		WeekNumber:      req.WeekNumber,
		LockTime:        req.LockTime,
		IneligibleTeams: req.IneligibleTeams,
		LockedGames:     req.LockedGames,
	}
	if err := h.weekService.CreateWeek(week); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, week)
}

// List возвращает все недели
func (h *WeekHandler) List(c *gin.Context) {
	weeks, err := h.weekService.ListWeeks()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, weeks)
}

// Update применяет частичное обновление недели (admin)
func (h *WeekHandler) Update(c *gin.Context) {
	weekID := c.MustGet("weekID").(uint)

	var req WeekUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	week, err := h.weekService.UpdateWeek(weekID, service.WeekUpdateInput{
		LockTime:        req.LockTime,
		IneligibleTeams: req.IneligibleTeams,
		LockedGames:     req.LockedGames,
		IsCurrent:       req.IsCurrent,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

// SetCurrent делает неделю текущей (admin). ID недели передается
// query-параметром week_id.
func (h *WeekHandler) SetCurrent(c *gin.Context) {
	weekIDStr := c.Query("week_id")
	weekID, err := strconv.ParseUint(weekIDStr, 10, 32)
	if err != nil || weekID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid week_id"})
		return
	}

	if err := h.weekService.SetCurrentWeek(uint(weekID)); err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[WeekHandler] Неделя ID=%d помечена текущей", weekID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "week_id": weekID})
}
