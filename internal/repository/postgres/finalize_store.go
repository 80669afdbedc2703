package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// FinalizeUnitOfWork реализует repository.FinalizeUnitOfWork поверх
// gorm-транзакции. GORM сам открывает SAVEPOINT при вложенном вызове,
// поэтому финализатору не важно, является ли он внешней границей транзакции.
type FinalizeUnitOfWork struct {
	db *gorm.DB
}

// NewFinalizeUnitOfWork создает unit of work для финализации
func NewFinalizeUnitOfWork(db *gorm.DB) *FinalizeUnitOfWork {
	return &FinalizeUnitOfWork{db: db}
}

// Execute исполняет fn внутри одной транзакции; ошибка откатывает все изменения
func (u *FinalizeUnitOfWork) Execute(fn func(store repository.FinalizeStore) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(&finalizeStore{tx: tx})
	})
}

// finalizeStore — операции финализации, привязанные к транзакции tx
type finalizeStore struct {
	tx *gorm.DB
}

func (s *finalizeStore) GetWeek(id uint) (*entity.Week, error) {
	var week entity.Week
	if err := s.tx.First(&week, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &week, nil
}

func (s *finalizeStore) GetGame(id uint) (*entity.Game, error) {
	var game entity.Game
	if err := s.tx.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

func (s *finalizeStore) SaveGame(game *entity.Game) error {
	return s.tx.Save(game).Error
}

func (s *finalizeStore) GetTeamByAbbreviation(abbr string) (*entity.Team, error) {
	var team entity.Team
	if err := s.tx.Where("abbreviation = ?", abbr).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (s *finalizeStore) ListPicksByWeek(weekID uint) ([]entity.Pick, error) {
	var picks []entity.Pick
	err := s.tx.Where("week_id = ?", weekID).Find(&picks).Error
	return picks, err
}

func (s *finalizeStore) SavePick(pick *entity.Pick) error {
	return s.tx.Save(pick).Error
}

func (s *finalizeStore) GetEntry(id uint) (*entity.Entry, error) {
	var entry entity.Entry
	if err := s.tx.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (s *finalizeStore) SaveEntry(entry *entity.Entry) error {
	return s.tx.Save(entry).Error
}
