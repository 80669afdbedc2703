package entity

import "time"

// PasswordResetToken хранит sha256-хеш одноразового токена сброса пароля.
// Сырой токен уходит пользователю в письме и в БД не попадает.
type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TokenHash string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// TableName определяет имя таблицы для GORM
func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// IsExpired возвращает true, если срок действия токена истек
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.UTC().After(t.ExpiresAt.UTC())
}
