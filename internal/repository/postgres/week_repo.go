package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// WeekRepo реализует repository.WeekRepository
type WeekRepo struct {
	db *gorm.DB
}

// NewWeekRepo создает новый репозиторий недель
func NewWeekRepo(db *gorm.DB) *WeekRepo {
	return &WeekRepo{db: db}
}

// Create создает новую неделю
func (r *WeekRepo) Create(week *entity.Week) error {
	return r.db.Create(week).Error
}

// GetByID возвращает неделю по ID
func (r *WeekRepo) GetByID(id uint) (*entity.Week, error) {
	var week entity.Week
	err := r.db.First(&week, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &week, nil
}

// List возвращает недели, отсортированные по сезону и номеру по убыванию
func (r *WeekRepo) List() ([]entity.Week, error) {
	var weeks []entity.Week
	err := r.db.Order("season_year DESC, week_number DESC").Find(&weeks).Error
	return weeks, err
}

// Update обновляет неделю
func (r *WeekRepo) Update(week *entity.Week) error {
	return r.db.Save(week).Error
}

// GetCurrent возвращает текущую неделю
func (r *WeekRepo) GetCurrent() (*entity.Week, error) {
	var week entity.Week
	err := r.db.Where("is_current = ?", true).First(&week).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &week, nil
}

// SetCurrent атомарно переключает флаг is_current на указанную неделю.
// Инвариант "не более одной текущей недели" обеспечивается транзакцией.
func (r *WeekRepo) SetCurrent(weekID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Week{}).
			Where("is_current = ?", true).
			Update("is_current", false).Error; err != nil {
			return err
		}

		result := tx.Model(&entity.Week{}).
			Where("id = ?", weekID).
			Update("is_current", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// LatestBySeasonWeek возвращает неделю с максимальным id среди совпадающих
// по (season_year, week_number) и общее число совпадений
func (r *WeekRepo) LatestBySeasonWeek(seasonYear, weekNumber int) (*entity.Week, int64, error) {
	var total int64
	query := r.db.Model(&entity.Week{}).
		Where("season_year = ? AND week_number = ?", seasonYear, weekNumber)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, apperrors.ErrNotFound
	}

	var week entity.Week
	err := r.db.Where("season_year = ? AND week_number = ?", seasonYear, weekNumber).
		Order("id DESC").
		First(&week).Error
	if err != nil {
		return nil, 0, err
	}
	return &week, total, nil
}
