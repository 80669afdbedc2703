package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// GameRepo реализует repository.GameRepository
type GameRepo struct {
	db *gorm.DB
}

// NewGameRepo создает новый репозиторий игр
func NewGameRepo(db *gorm.DB) *GameRepo {
	return &GameRepo{db: db}
}

// GetByID возвращает игру по ID
func (r *GameRepo) GetByID(id uint) (*entity.Game, error) {
	var game entity.Game
	err := r.db.First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// ListByWeek возвращает игры недели, отсортированные по времени начала
func (r *GameRepo) ListByWeek(weekID uint) ([]entity.Game, error) {
	var games []entity.Game
	err := r.db.Where("week_id = ?", weekID).Order("start_time").Find(&games).Error
	return games, err
}

// ReplaceWeekGames атомарно заменяет набор игр недели (delete + insert).
// Используется синхронизацией расписания из внешнего фида.
func (r *GameRepo) ReplaceWeekGames(weekID uint, games []entity.Game) (int, error) {
	created := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("week_id = ?", weekID).Delete(&entity.Game{}).Error; err != nil {
			return err
		}
		for i := range games {
			games[i].WeekID = weekID
			if err := tx.Create(&games[i]).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
