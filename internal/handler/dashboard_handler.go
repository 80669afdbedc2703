package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/survivor-api/internal/service"
)

// DashboardHandler обрабатывает запросы к дашборду пользователя
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler создает новый обработчик дашборда
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get возвращает дашборд текущего пользователя
func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
