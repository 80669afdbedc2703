package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// EntryUpdateInput — частичное обновление заявки владельцем
type EntryUpdateInput struct {
	Name  *string
	Picks json.RawMessage
}

// EntryService управляет заявками пользователей
type EntryService struct {
	entryRepo repository.EntryRepository
	weekRepo  repository.WeekRepository
}

// NewEntryService создает новый сервис заявок
func NewEntryService(entryRepo repository.EntryRepository, weekRepo repository.WeekRepository) *EntryService {
	return &EntryService{
		entryRepo: entryRepo,
		weekRepo:  weekRepo,
	}
}

// CreateEntry создает заявку пользователя на неделю. Имя обязательно и
// уникально в рамках (user, season). Если у пользователя уже есть заявка
// на эту неделю, перезаписывается ее снимок picks — legacy-поведение,
// на которое завязаны старые клиенты.
func (s *EntryService) CreateEntry(userID, weekID uint, name string, picks json.RawMessage) (*entity.Entry, error) {
	week, err := s.weekRepo.GetByID(weekID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: week not found", apperrors.ErrNotFound)
		}
		return nil, err
	}

	if name == "" {
		return nil, fmt.Errorf("%w: entry name is required", apperrors.ErrValidation)
	}

	if _, err := s.entryRepo.GetByUserSeasonName(userID, week.SeasonYear, name); err == nil {
		return nil, fmt.Errorf("%w: entry name already exists for this user in the season", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if picks == nil {
		picks = json.RawMessage("[]")
	}

	existing, err := s.entryRepo.GetByUserWeek(userID, weekID)
	if err == nil {
		existing.Picks = picks
		if err := s.entryRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	entry := &entity.Entry{
		UserID:     userID,
		WeekID:     weekID,
		Name:       name,
		SeasonYear: week.SeasonYear,
		Picks:      picks,
	}
	if err := s.entryRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListUserEntries возвращает заявки пользователя
func (s *EntryService) ListUserEntries(userID uint) ([]entity.Entry, error) {
	return s.entryRepo.ListByUser(userID)
}

// UpdateEntry обновляет заявку владельца. Чужая или отсутствующая заявка
// неразличимы для клиента — и то и другое ErrNotFound.
func (s *EntryService) UpdateEntry(entryID, userID uint, input EntryUpdateInput) (*entity.Entry, error) {
	entry, err := s.entryRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, fmt.Errorf("%w: entry not found", apperrors.ErrNotFound)
	}

	week, err := s.weekRepo.GetByID(entry.WeekID)
	if err != nil {
		return nil, err
	}
	if week.IsLocked(time.Now()) {
		return nil, fmt.Errorf("%w: cannot modify entries", apperrors.ErrWeekLocked)
	}

	if input.Name != nil && *input.Name != "" && *input.Name != entry.Name {
		if _, err := s.entryRepo.GetByUserSeasonName(userID, entry.SeasonYear, *input.Name); err == nil {
			return nil, fmt.Errorf("%w: entry name already exists for this user in the season", apperrors.ErrConflict)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		entry.Name = *input.Name
	}
	if input.Picks != nil {
		entry.Picks = input.Picks
	}

	if err := s.entryRepo.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry удаляет заявку владельца, если ее неделя не заблокирована
func (s *EntryService) DeleteEntry(entryID, userID uint) error {
	entry, err := s.entryRepo.GetByID(entryID)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return fmt.Errorf("%w: entry not found", apperrors.ErrNotFound)
	}

	week, err := s.weekRepo.GetByID(entry.WeekID)
	if err != nil {
		return err
	}
	if week.IsLocked(time.Now()) {
		return fmt.Errorf("%w: cannot delete entries", apperrors.ErrWeekLocked)
	}

	return s.entryRepo.Delete(entryID)
}
