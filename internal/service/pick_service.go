package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// PickService управляет пиками. Правило survivor-пула: одна команда
// на пользователя за сезон, один пик на заявку за неделю, изменения
// только до lock_time недели.
type PickService struct {
	pickRepo  repository.PickRepository
	entryRepo repository.EntryRepository
	weekRepo  repository.WeekRepository
	teamRepo  repository.TeamRepository
}

// NewPickService создает новый сервис пиков
func NewPickService(
	pickRepo repository.PickRepository,
	entryRepo repository.EntryRepository,
	weekRepo repository.WeekRepository,
	teamRepo repository.TeamRepository,
) *PickService {
	return &PickService{
		pickRepo:  pickRepo,
		entryRepo: entryRepo,
		weekRepo:  weekRepo,
		teamRepo:  teamRepo,
	}
}

// CreatePick создает пик для заявки на неделю
func (s *PickService) CreatePick(userID, entryID, weekID, teamID uint) (*entity.Pick, error) {
	entry, err := s.entryRepo.GetByID(entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: entry not found", apperrors.ErrValidation)
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, fmt.Errorf("%w: not authorized to pick for this entry", apperrors.ErrValidation)
	}

	week, err := s.weekRepo.GetByID(weekID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: week not found", apperrors.ErrValidation)
		}
		return nil, err
	}
	if week.IsLocked(time.Now()) {
		return nil, fmt.Errorf("%w: cannot submit picks", apperrors.ErrWeekLocked)
	}
	if entry.WeekID != weekID {
		return nil, fmt.Errorf("%w: entry does not belong to the provided week", apperrors.ErrValidation)
	}

	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: team not found", apperrors.ErrValidation)
		}
		return nil, err
	}

	if err := s.checkSeasonTeamReuse(entry.UserID, entry.SeasonYear, teamID, 0); err != nil {
		return nil, err
	}

	if _, err := s.pickRepo.GetByEntryWeek(entryID, weekID); err == nil {
		return nil, fmt.Errorf("%w: pick for this entry and week already exists; use PATCH to update", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	pick := &entity.Pick{
		EntryID:  entryID,
		WeekID:   weekID,
		TeamID:   &team.ID,
		TeamAbbr: team.Abbreviation,
	}
	if err := s.pickRepo.Create(pick); err != nil {
		return nil, err
	}
	return pick, nil
}

// UpdatePick меняет команду существующего пика. Result здесь
// не изменяется никогда — его проставляет только финализация.
func (s *PickService) UpdatePick(userID, pickID, teamID uint) (*entity.Pick, error) {
	pick, err := s.pickRepo.GetByID(pickID)
	if err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.GetByID(pick.EntryID)
	if err != nil || entry.UserID != userID {
		return nil, fmt.Errorf("%w: not authorized to modify this pick", apperrors.ErrValidation)
	}

	week, err := s.weekRepo.GetByID(pick.WeekID)
	if err != nil {
		return nil, err
	}
	if week.IsLocked(time.Now()) {
		return nil, fmt.Errorf("%w: cannot modify picks", apperrors.ErrWeekLocked)
	}

	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: team not found", apperrors.ErrValidation)
		}
		return nil, err
	}

	if err := s.checkSeasonTeamReuse(entry.UserID, entry.SeasonYear, teamID, pick.ID); err != nil {
		return nil, err
	}

	pick.TeamID = &team.ID
	pick.TeamAbbr = team.Abbreviation
	if err := s.pickRepo.Update(pick); err != nil {
		return nil, err
	}
	return pick, nil
}

func (s *PickService) checkSeasonTeamReuse(userID uint, seasonYear int, teamID uint, excludePickID uint) error {
	_, err := s.pickRepo.FindSeasonTeamUsage(userID, seasonYear, teamID, excludePickID)
	if err == nil {
		return fmt.Errorf("%w: team already picked by this entry in the season", apperrors.ErrConflict)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}
