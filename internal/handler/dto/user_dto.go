package dto

import (
	"time"

	"github.com/yourusername/survivor-api/internal/domain/entity"
)

// UserDTO — публичное представление пользователя
type UserDTO struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromEntity конвертирует entity.User в DTO
func UserFromEntity(u *entity.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

// UsersFromEntities конвертирует список пользователей
func UsersFromEntities(users []entity.User) []*UserDTO {
	out := make([]*UserDTO, 0, len(users))
	for i := range users {
		out = append(out, UserFromEntity(&users[i]))
	}
	return out
}
