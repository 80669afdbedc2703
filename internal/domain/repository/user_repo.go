package repository

import (
	"github.com/yourusername/survivor-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	UpdatePassword(userID uint, newPassword string) error
	// List возвращает всех пользователей (админский список и рассылки)
	List() ([]entity.User, error)
}
