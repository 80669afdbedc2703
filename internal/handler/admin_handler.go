package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/survivor-api/internal/handler/dto"
	"github.com/yourusername/survivor-api/internal/service"
)

// AdminHandler обрабатывает административные запросы
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler создает новый админский обработчик
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// UserPatchRequest — частичное обновление флагов пользователя
type UserPatchRequest struct {
	IsActive *bool `json:"is_active"`
	IsAdmin  *bool `json:"is_admin"`
}

// EntryPaymentRequest — установка флага оплаты
type EntryPaymentRequest struct {
	IsPaid *bool `json:"is_paid" binding:"required"`
}

// EntryEliminationRequest — админская установка флага вылета
type EntryEliminationRequest struct {
	IsEliminated *bool `json:"is_eliminated" binding:"required"`
}

// BroadcastRequest — запрос на рассылку когорте
type BroadcastRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
	Filter  string `json:"filter" binding:"required,oneof=all active paid unpaid"`
}

// ListUsers возвращает всех пользователей
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UsersFromEntities(users))
}

// PatchUser обновляет флаги пользователя
func (h *AdminHandler) PatchUser(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req UserPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.adminService.PatchUser(userID, service.UserPatchInput{
		IsActive: req.IsActive,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromEntity(user))
}

// ListEntries возвращает заявки с админскими фильтрами
// GET /api/admin/entries?user_id=&show_eliminated=
func (h *AdminHandler) ListEntries(c *gin.Context) {
	var filter service.AdminEntryFilter

	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
			return
		}
		uid := uint(id)
		filter.UserID = &uid
	}
	if raw := c.Query("show_eliminated"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid show_eliminated"})
			return
		}
		filter.ShowEliminated = &v
	}

	entries, err := h.adminService.ListEntries(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, gin.H{
			"id":            e.ID,
			"user_id":       e.UserID,
			"name":          e.Name,
			"is_eliminated": e.IsEliminated,
			"is_paid":       e.IsPaid,
		})
	}
	c.JSON(http.StatusOK, out)
}

// PatchEntryPayment проставляет флаг оплаты заявки
func (h *AdminHandler) PatchEntryPayment(c *gin.Context) {
	entryID := c.MustGet("entryID").(uint)

	var req EntryPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.adminService.SetEntryPayment(entryID, *req.IsPaid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": entry.ID, "is_paid": entry.IsPaid})
}

// PatchEntryElimination проставляет флаг вылета заявки
func (h *AdminHandler) PatchEntryElimination(c *gin.Context) {
	entryID := c.MustGet("entryID").(uint)

	var req EntryEliminationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.adminService.SetEntryElimination(entryID, *req.IsEliminated)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": entry.ID, "is_eliminated": entry.IsEliminated})
}

// Broadcast рассылает письмо выбранной когорте пользователей
func (h *AdminHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.adminService.Broadcast(c.Request.Context(), req.Filter, req.Subject, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
