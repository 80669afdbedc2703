package repository

import (
	"github.com/yourusername/survivor-api/internal/domain/entity"
)

// EntryListFilter задает необязательные фильтры для выборки заявок
type EntryListFilter struct {
	UserID     *uint
	Eliminated *bool
	Paid       *bool
	SeasonYear *int
}

// EntryRepository определяет методы для работы с заявками
type EntryRepository interface {
	Create(entry *entity.Entry) error
	GetByID(id uint) (*entity.Entry, error)
	// GetByUserWeek возвращает заявку пользователя за конкретную неделю
	GetByUserWeek(userID, weekID uint) (*entity.Entry, error)
	// GetByUserSeasonName проверяет уникальность имени заявки в сезоне
	GetByUserSeasonName(userID uint, seasonYear int, name string) (*entity.Entry, error)
	ListByUser(userID uint) ([]entity.Entry, error)
	List(filter EntryListFilter) ([]entity.Entry, error)
	Update(entry *entity.Entry) error
	Delete(id uint) error
}
