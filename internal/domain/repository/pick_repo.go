package repository

import (
	"github.com/yourusername/survivor-api/internal/domain/entity"
)

// PickWithTeam — пик вместе с данными выбранной команды (join picks -> teams)
type PickWithTeam struct {
	Pick     entity.Pick
	TeamAbbr string
	TeamName string
}

// TeamPickCount — количество пиков на команду за неделю
type TeamPickCount struct {
	TeamID uint
	Count  int64
}

// MatrixRow — плоская запись истории: одна строка на пик
type MatrixRow struct {
	EntryID    uint
	EntryName  string
	WeekID     uint
	WeekNumber int
	TeamID     *uint
}

// PickRepository определяет методы для работы с пиками
type PickRepository interface {
	Create(pick *entity.Pick) error
	GetByID(id uint) (*entity.Pick, error)
	GetByEntryWeek(entryID, weekID uint) (*entity.Pick, error)
	ListByWeek(weekID uint) ([]entity.Pick, error)
	// ListWithTeams возвращает пики указанных заявок за неделю вместе с командами
	ListWithTeams(entryIDs []uint, weekID uint) ([]PickWithTeam, error)
	// FindSeasonTeamUsage ищет пик того же пользователя на ту же команду
	// в рамках сезона, исключая excludePickID (0 — не исключать).
	// Нужен для правила "одна команда за сезон".
	FindSeasonTeamUsage(userID uint, seasonYear int, teamID uint, excludePickID uint) (*entity.Pick, error)
	Update(pick *entity.Pick) error
	// CountByTeam агрегирует пики недели по командам (reveal)
	CountByTeam(weekID uint) ([]TeamPickCount, error)
	// CountDistinctEntries возвращает число заявок с пиком за неделю
	CountDistinctEntries(weekID uint) (int64, error)
	// ListMatrixRows возвращает плоскую историю пиков (entries x weeks),
	// отсортированную по entry_id, затем week_number
	ListMatrixRows(seasonYear *int) ([]MatrixRow, error)
}
