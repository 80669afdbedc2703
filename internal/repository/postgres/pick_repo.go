package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// PickRepo реализует repository.PickRepository
type PickRepo struct {
	db *gorm.DB
}

// NewPickRepo создает новый репозиторий пиков
func NewPickRepo(db *gorm.DB) *PickRepo {
	return &PickRepo{db: db}
}

// Create создает новый пик
func (r *PickRepo) Create(pick *entity.Pick) error {
	return r.db.Create(pick).Error
}

// GetByID возвращает пик по ID
func (r *PickRepo) GetByID(id uint) (*entity.Pick, error) {
	var pick entity.Pick
	err := r.db.First(&pick, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &pick, nil
}

// GetByEntryWeek возвращает пик заявки за неделю
func (r *PickRepo) GetByEntryWeek(entryID, weekID uint) (*entity.Pick, error) {
	var pick entity.Pick
	err := r.db.Where("entry_id = ? AND week_id = ?", entryID, weekID).First(&pick).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &pick, nil
}

// ListByWeek возвращает все пики недели
func (r *PickRepo) ListByWeek(weekID uint) ([]entity.Pick, error) {
	var picks []entity.Pick
	err := r.db.Where("week_id = ?", weekID).Find(&picks).Error
	return picks, err
}

// ListWithTeams возвращает пики указанных заявок за неделю вместе с командами
// одним запросом (join picks -> teams)
func (r *PickRepo) ListWithTeams(entryIDs []uint, weekID uint) ([]repository.PickWithTeam, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}

	type row struct {
		entity.Pick
		JoinedAbbr string
		JoinedName string
	}

	var rows []row
	err := r.db.Model(&entity.Pick{}).
		Select("picks.*, teams.abbreviation AS joined_abbr, teams.name AS joined_name").
		Joins("JOIN teams ON teams.id = picks.team_id").
		Where("picks.entry_id IN ? AND picks.week_id = ?", entryIDs, weekID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]repository.PickWithTeam, len(rows))
	for i, r := range rows {
		result[i] = repository.PickWithTeam{
			Pick:     r.Pick,
			TeamAbbr: r.JoinedAbbr,
			TeamName: r.JoinedName,
		}
	}
	return result, nil
}

// FindSeasonTeamUsage ищет пик того же пользователя на ту же команду в сезоне
func (r *PickRepo) FindSeasonTeamUsage(userID uint, seasonYear int, teamID uint, excludePickID uint) (*entity.Pick, error) {
	query := r.db.Model(&entity.Pick{}).
		Joins("JOIN entries ON entries.id = picks.entry_id").
		Where("entries.user_id = ? AND entries.season_year = ? AND picks.team_id = ?",
			userID, seasonYear, teamID)
	if excludePickID != 0 {
		query = query.Where("picks.id <> ?", excludePickID)
	}

	var pick entity.Pick
	err := query.First(&pick).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &pick, nil
}

// Update обновляет пик
func (r *PickRepo) Update(pick *entity.Pick) error {
	return r.db.Save(pick).Error
}

// CountByTeam агрегирует пики недели по командам
func (r *PickRepo) CountByTeam(weekID uint) ([]repository.TeamPickCount, error) {
	var counts []repository.TeamPickCount
	err := r.db.Model(&entity.Pick{}).
		Select("team_id, COUNT(*) AS count").
		Where("week_id = ? AND team_id IS NOT NULL", weekID).
		Group("team_id").
		Scan(&counts).Error
	return counts, err
}

// CountDistinctEntries возвращает число заявок с пиком за неделю
func (r *PickRepo) CountDistinctEntries(weekID uint) (int64, error) {
	var total int64
	err := r.db.Model(&entity.Pick{}).
		Where("week_id = ?", weekID).
		Distinct("entry_id").
		Count(&total).Error
	return total, err
}

// ListMatrixRows возвращает плоскую историю пиков (одна строка на пик),
// отсортированную по entry_id, затем week_number
func (r *PickRepo) ListMatrixRows(seasonYear *int) ([]repository.MatrixRow, error) {
	query := r.db.Model(&entity.Pick{}).
		Select("entries.id AS entry_id, entries.name AS entry_name, weeks.id AS week_id, weeks.week_number, picks.team_id").
		Joins("JOIN entries ON entries.id = picks.entry_id").
		Joins("JOIN weeks ON weeks.id = picks.week_id")
	if seasonYear != nil {
		query = query.Where("entries.season_year = ?", *seasonYear)
	}

	var rows []repository.MatrixRow
	err := query.Order("entries.id, weeks.week_number").Scan(&rows).Error
	return rows, err
}
