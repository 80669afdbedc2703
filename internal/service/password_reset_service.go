package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

const resetTokenLifetime = time.Hour

// PasswordResetService выдает и погашает одноразовые токены сброса пароля.
// В БД хранится только sha256-хеш токена; сырой токен уходит в письме.
type PasswordResetService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.PasswordResetTokenRepository
	email     EmailService
	// база для ссылки в письме, например https://pool.example.com/reset-password
	resetBaseURL string
}

// NewPasswordResetService создает новый сервис сброса пароля
func NewPasswordResetService(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	email EmailService,
	resetBaseURL string,
) *PasswordResetService {
	return &PasswordResetService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		email:        email,
		resetBaseURL: resetBaseURL,
	}
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RequestReset создает токен и отправляет письмо. Для неизвестного email
// возвращает nil без каких-либо действий — ответ наружу всегда одинаковый,
// чтобы не раскрывать, какие адреса зарегистрированы.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	rawToken := base64.RawURLEncoding.EncodeToString(raw)

	token := &entity.PasswordResetToken{
		TokenHash: hashResetToken(rawToken),
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(resetTokenLifetime),
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s?token=%s", s.resetBaseURL, rawToken)
	body := fmt.Sprintf("Click the link to reset your password: %s\nThis link expires in 1 hour.", resetLink)

	if err := s.email.Send(ctx, user.Email, "Password reset", body); err != nil {
		// Письмо не ушло — токен остается валидным, пользователь может
		// запросить повторно. Наружу ошибку не поднимаем.
		log.Printf("[PasswordResetService] Не удалось отправить письмо сброса для user=%d: %v", user.ID, err)
	}

	return nil
}

// SubmitReset проверяет токен и устанавливает новый пароль
func (s *PasswordResetService) SubmitReset(token, newPassword string) error {
	if token == "" || newPassword == "" {
		return fmt.Errorf("%w: token and new password are required", apperrors.ErrValidation)
	}

	record, err := s.tokenRepo.GetByTokenHash(hashResetToken(token))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired token", apperrors.ErrValidation)
		}
		return err
	}
	if record.IsExpired(time.Now()) {
		return fmt.Errorf("%w: invalid or expired token", apperrors.ErrValidation)
	}

	if err := s.userRepo.UpdatePassword(record.UserID, newPassword); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: invalid token", apperrors.ErrValidation)
		}
		return err
	}

	// Токен одноразовый
	if err := s.tokenRepo.Delete(record.ID); err != nil {
		log.Printf("[PasswordResetService] Не удалось удалить использованный токен id=%d: %v", record.ID, err)
	}

	return nil
}

// CleanupExpired удаляет истекшие токены (периодическая фоновая задача)
func (s *PasswordResetService) CleanupExpired() error {
	removed, err := s.tokenRepo.DeleteExpired(time.Now().UTC())
	if err != nil {
		return err
	}
	if removed > 0 {
		log.Printf("[PasswordResetService] Удалено истекших токенов сброса: %d", removed)
	}
	return nil
}
