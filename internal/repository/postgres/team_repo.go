package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// TeamRepo реализует repository.TeamRepository
type TeamRepo struct {
	db *gorm.DB
}

// NewTeamRepo создает новый репозиторий команд
func NewTeamRepo(db *gorm.DB) *TeamRepo {
	return &TeamRepo{db: db}
}

// GetByID возвращает команду по ID
func (r *TeamRepo) GetByID(id uint) (*entity.Team, error) {
	var team entity.Team
	err := r.db.First(&team, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetByAbbreviation возвращает команду по аббревиатуре
func (r *TeamRepo) GetByAbbreviation(abbr string) (*entity.Team, error) {
	var team entity.Team
	err := r.db.Where("abbreviation = ?", abbr).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// List возвращает все команды
func (r *TeamRepo) List() ([]entity.Team, error) {
	var teams []entity.Team
	err := r.db.Order("abbreviation").Find(&teams).Error
	return teams, err
}

// ListByAbbreviations возвращает команды по набору аббревиатур
func (r *TeamRepo) ListByAbbreviations(abbrs []string) ([]entity.Team, error) {
	if len(abbrs) == 0 {
		return nil, nil
	}
	var teams []entity.Team
	err := r.db.Where("abbreviation IN ?", abbrs).Find(&teams).Error
	return teams, err
}
