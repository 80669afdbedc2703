package repository

import (
	"github.com/yourusername/survivor-api/internal/domain/entity"
)

// TeamRepository определяет методы для справочника команд
type TeamRepository interface {
	GetByID(id uint) (*entity.Team, error)
	GetByAbbreviation(abbr string) (*entity.Team, error)
	List() ([]entity.Team, error)
	// ListByAbbreviations возвращает команды по набору аббревиатур
	ListByAbbreviations(abbrs []string) ([]entity.Team, error)
}
