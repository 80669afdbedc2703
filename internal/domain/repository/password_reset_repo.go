package repository

import (
	"time"

	"github.com/yourusername/survivor-api/internal/domain/entity"
)

// PasswordResetTokenRepository определяет методы для токенов сброса пароля
type PasswordResetTokenRepository interface {
	Create(token *entity.PasswordResetToken) error
	GetByTokenHash(tokenHash string) (*entity.PasswordResetToken, error)
	Delete(id uint) error
	// DeleteExpired удаляет токены с истекшим сроком и возвращает их количество
	DeleteExpired(now time.Time) (int64, error)
}
