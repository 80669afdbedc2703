package repository

import (
	"github.com/yourusername/survivor-api/internal/domain/entity"
)

// WeekRepository определяет методы для работы с неделями сезона
type WeekRepository interface {
	Create(week *entity.Week) error
	GetByID(id uint) (*entity.Week, error)
	// List возвращает недели, отсортированные по сезону и номеру (по убыванию)
	List() ([]entity.Week, error)
	Update(week *entity.Week) error
	// GetCurrent возвращает текущую неделю (is_current = true)
	GetCurrent() (*entity.Week, error)
	// SetCurrent атомарно снимает флаг is_current со всех недель
	// и устанавливает его указанной неделе
	SetCurrent(weekID uint) error
	// LatestBySeasonWeek возвращает неделю с максимальным id среди совпадающих
	// по (season_year, week_number) и общее число совпадений. В корректной БД
	// совпадение одно; дубликаты встречаются в dev-базах.
	LatestBySeasonWeek(seasonYear, weekNumber int) (*entity.Week, int64, error)
}
