package repository

import (
	"github.com/yourusername/survivor-api/internal/domain/entity"
)

// FinalizeStore — операции хранилища, доступные финализации недели.
// Все методы выполняются внутри одной транзакции, границы которой
// задает FinalizeUnitOfWork.
type FinalizeStore interface {
	GetWeek(id uint) (*entity.Week, error)
	GetGame(id uint) (*entity.Game, error)
	SaveGame(game *entity.Game) error
	// GetTeamByAbbreviation возвращает ErrNotFound для неизвестной аббревиатуры
	GetTeamByAbbreviation(abbr string) (*entity.Team, error)
	ListPicksByWeek(weekID uint) ([]entity.Pick, error)
	SavePick(pick *entity.Pick) error
	GetEntry(id uint) (*entity.Entry, error)
	SaveEntry(entry *entity.Entry) error
}

// FinalizeUnitOfWork исполняет fn в границах одной транзакции хранилища.
// Ошибка fn откатывает транзакцию целиком; финализатор при этом не знает,
// является ли он внешней границей транзакции (вложенность решает реализация).
type FinalizeUnitOfWork interface {
	Execute(fn func(store FinalizeStore) error) error
}
