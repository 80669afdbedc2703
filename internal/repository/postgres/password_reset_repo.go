package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// PasswordResetRepo реализует repository.PasswordResetTokenRepository
type PasswordResetRepo struct {
	db *gorm.DB
}

// NewPasswordResetRepo создает новый репозиторий токенов сброса пароля
func NewPasswordResetRepo(db *gorm.DB) *PasswordResetRepo {
	return &PasswordResetRepo{db: db}
}

// Create сохраняет новый токен
func (r *PasswordResetRepo) Create(token *entity.PasswordResetToken) error {
	return r.db.Create(token).Error
}

// GetByTokenHash возвращает токен по его sha256-хешу
func (r *PasswordResetRepo) GetByTokenHash(tokenHash string) (*entity.PasswordResetToken, error) {
	var token entity.PasswordResetToken
	err := r.db.Where("token_hash = ?", tokenHash).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// Delete удаляет токен
func (r *PasswordResetRepo) Delete(id uint) error {
	return r.db.Delete(&entity.PasswordResetToken{}, id).Error
}

// DeleteExpired удаляет истекшие токены и возвращает их количество
func (r *PasswordResetRepo) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", now).Delete(&entity.PasswordResetToken{})
	return result.RowsAffected, result.Error
}
