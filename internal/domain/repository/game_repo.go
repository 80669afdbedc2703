package repository

import (
	"github.com/yourusername/survivor-api/internal/domain/entity"
)

// GameRepository определяет методы для работы с играми недели
type GameRepository interface {
	GetByID(id uint) (*entity.Game, error)
	// ListByWeek возвращает игры недели, отсортированные по времени начала
	ListByWeek(weekID uint) ([]entity.Game, error)
	// ReplaceWeekGames атомарно удаляет существующие игры недели и вставляет
	// новый набор. Возвращает число вставленных игр.
	ReplaceWeekGames(weekID uint, games []entity.Game) (int, error)
}
