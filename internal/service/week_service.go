package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// WeekUpdateInput — частичное обновление недели. nil-поля не трогаются.
type WeekUpdateInput struct {
	LockTime        *time.Time
	IneligibleTeams []string
	LockedGames     []uint
	IsCurrent       *bool
}

// WeekService управляет неделями сезона
type WeekService struct {
	weekRepo repository.WeekRepository
	cache    repository.CacheRepository
}

// NewWeekService создает новый сервис недель
func NewWeekService(weekRepo repository.WeekRepository, cache repository.CacheRepository) *WeekService {
	return &WeekService{
		weekRepo: weekRepo,
		cache:    cache,
	}
}

// CreateWeek создает новую неделю сезона
func (s *WeekService) CreateWeek(week *entity.Week) error {
	if week.SeasonYear <= 0 || week.WeekNumber <= 0 {
		return fmt.Errorf("%w: season_year and week_number must be positive", apperrors.ErrValidation)
	}
	if week.IneligibleTeams == nil {
		week.IneligibleTeams = []string{}
	}
	if week.LockedGames == nil {
		week.LockedGames = []uint{}
	}
	if err := s.weekRepo.Create(week); err != nil {
		return err
	}
	log.Printf("[WeekService] Создана неделя id=%d (сезон %d, номер %d)", week.ID, week.SeasonYear, week.WeekNumber)
	return nil
}

// GetWeek возвращает неделю по ID
func (s *WeekService) GetWeek(id uint) (*entity.Week, error) {
	return s.weekRepo.GetByID(id)
}

// ListWeeks возвращает все недели (сезон и номер по убыванию)
func (s *WeekService) ListWeeks() ([]entity.Week, error) {
	return s.weekRepo.List()
}

// UpdateWeek применяет частичное обновление недели
func (s *WeekService) UpdateWeek(id uint, input WeekUpdateInput) (*entity.Week, error) {
	week, err := s.weekRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.LockTime != nil {
		week.LockTime = input.LockTime
	}
	if input.IneligibleTeams != nil {
		week.IneligibleTeams = input.IneligibleTeams
	}
	if input.LockedGames != nil {
		week.LockedGames = input.LockedGames
	}
	if input.IsCurrent != nil {
		week.IsCurrent = *input.IsCurrent
	}

	if err := s.weekRepo.Update(week); err != nil {
		return nil, err
	}
	s.invalidateCurrentWeekCache()
	return week, nil
}

// SetCurrentWeek атомарно делает указанную неделю текущей
func (s *WeekService) SetCurrentWeek(weekID uint) error {
	if err := s.weekRepo.SetCurrent(weekID); err != nil {
		return err
	}
	s.invalidateCurrentWeekCache()
	log.Printf("[WeekService] Текущая неделя переключена на id=%d", weekID)
	return nil
}

// GetCurrentWeek возвращает текущую неделю
func (s *WeekService) GetCurrentWeek() (*entity.Week, error) {
	return s.weekRepo.GetCurrent()
}

func (s *WeekService) invalidateCurrentWeekCache() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(currentWeekCacheKey); err != nil {
		log.Printf("[WeekService] Не удалось сбросить кеш текущей недели: %v", err)
	}
}
