package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
	"github.com/yourusername/survivor-api/internal/service"
)

// PasswordResetHandler обрабатывает запросы сброса пароля
type PasswordResetHandler struct {
	resetService *service.PasswordResetService
}

// NewPasswordResetHandler создает новый обработчик сброса пароля
func NewPasswordResetHandler(resetService *service.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resetService: resetService}
}

// ResetRequestBody — запрос на выдачу токена сброса
type ResetRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetSubmitBody — запрос на установку нового пароля по токену
type ResetSubmitBody struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// Request выдает токен сброса. Ответ одинаков для любого email.
func (h *PasswordResetHandler) Request(c *gin.Context) {
	var req ResetRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resetService.RequestReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Submit устанавливает новый пароль по токену
func (h *PasswordResetHandler) Submit(c *gin.Context) {
	var req ResetSubmitBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resetService.SubmitReset(req.Token, req.NewPassword); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
