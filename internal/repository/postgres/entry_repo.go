package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// EntryRepo реализует repository.EntryRepository
type EntryRepo struct {
	db *gorm.DB
}

// NewEntryRepo создает новый репозиторий заявок
func NewEntryRepo(db *gorm.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

// Create создает новую заявку
func (r *EntryRepo) Create(entry *entity.Entry) error {
	return r.db.Create(entry).Error
}

// GetByID возвращает заявку по ID
func (r *EntryRepo) GetByID(id uint) (*entity.Entry, error) {
	var entry entity.Entry
	err := r.db.First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetByUserWeek возвращает заявку пользователя за неделю
func (r *EntryRepo) GetByUserWeek(userID, weekID uint) (*entity.Entry, error) {
	var entry entity.Entry
	err := r.db.Where("user_id = ? AND week_id = ?", userID, weekID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetByUserSeasonName возвращает заявку по уникальному имени в сезоне
func (r *EntryRepo) GetByUserSeasonName(userID uint, seasonYear int, name string) (*entity.Entry, error) {
	var entry entity.Entry
	err := r.db.Where("user_id = ? AND season_year = ? AND name = ?", userID, seasonYear, name).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// ListByUser возвращает заявки пользователя
func (r *EntryRepo) ListByUser(userID uint) ([]entity.Entry, error) {
	var entries []entity.Entry
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&entries).Error
	return entries, err
}

// List возвращает заявки с необязательными фильтрами
func (r *EntryRepo) List(filter repository.EntryListFilter) ([]entity.Entry, error) {
	query := r.db.Model(&entity.Entry{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Eliminated != nil {
		query = query.Where("is_eliminated = ?", *filter.Eliminated)
	}
	if filter.Paid != nil {
		query = query.Where("is_paid = ?", *filter.Paid)
	}
	if filter.SeasonYear != nil {
		query = query.Where("season_year = ?", *filter.SeasonYear)
	}

	var entries []entity.Entry
	err := query.Order("id").Find(&entries).Error
	return entries, err
}

// Update обновляет заявку
func (r *EntryRepo) Update(entry *entity.Entry) error {
	return r.db.Save(entry).Error
}

// Delete удаляет заявку
func (r *EntryRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Entry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
