package service

import (
	"errors"
	"log"
	"time"

	"github.com/yourusername/survivor-api/internal/domain/repository"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

const currentWeekCacheKey = "dashboard:current_week"

// CurrentWeekInfo — краткая информация о текущей неделе для дашборда.
// Кешируется в redis с настраиваемым TTL.
type CurrentWeekInfo struct {
	WeekID           uint       `json:"week_id"`
	WeekNumber       int        `json:"week_number"`
	LockTime         *time.Time `json:"lock_time"`
	CountdownSeconds *int       `json:"countdown_seconds"`
}

// EntryPick — пик заявки на текущую неделю
type EntryPick struct {
	TeamID   *uint  `json:"team_id"`
	TeamAbbr string `json:"team_abbr"`
	TeamName string `json:"team_name"`
}

// EntrySummary — заявка в дашборде
type EntrySummary struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	IsEliminated bool       `json:"is_eliminated"`
	CurrentPick  *EntryPick `json:"current_pick"`
}

// Dashboard — ответ GET /api/dashboard
type Dashboard struct {
	UserID      uint             `json:"user_id"`
	Entries     []EntrySummary   `json:"entries"`
	CurrentWeek *CurrentWeekInfo `json:"current_week"`
}

// DashboardService собирает персональный дашборд пользователя
type DashboardService struct {
	entryRepo repository.EntryRepository
	weekRepo  repository.WeekRepository
	pickRepo  repository.PickRepository
	cache     repository.CacheRepository
	cacheTTL  time.Duration
}

// NewDashboardService создает новый сервис дашборда
func NewDashboardService(
	entryRepo repository.EntryRepository,
	weekRepo repository.WeekRepository,
	pickRepo repository.PickRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
) *DashboardService {
	return &DashboardService{
		entryRepo: entryRepo,
		weekRepo:  weekRepo,
		pickRepo:  pickRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// GetDashboard возвращает заявки пользователя с пиками на текущую неделю
func (s *DashboardService) GetDashboard(userID uint) (*Dashboard, error) {
	entries, err := s.entryRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	weekInfo, err := s.getCurrentWeekInfo()
	if err != nil {
		return nil, err
	}

	entryIDs := make([]uint, 0, len(entries))
	for _, e := range entries {
		entryIDs = append(entryIDs, e.ID)
	}

	picksByEntry := map[uint]*EntryPick{}
	if weekInfo != nil && len(entryIDs) > 0 {
		rows, err := s.pickRepo.ListWithTeams(entryIDs, weekInfo.WeekID)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			picksByEntry[row.Pick.EntryID] = &EntryPick{
				TeamID:   row.Pick.TeamID,
				TeamAbbr: row.TeamAbbr,
				TeamName: row.TeamName,
			}
		}
	}

	out := &Dashboard{
		UserID:      userID,
		Entries:     make([]EntrySummary, 0, len(entries)),
		CurrentWeek: weekInfo,
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, EntrySummary{
			ID:           e.ID,
			Name:         e.Name,
			IsEliminated: e.IsEliminated,
			CurrentPick:  picksByEntry[e.ID],
		})
	}
	return out, nil
}

// getCurrentWeekInfo читает информацию о текущей неделе через кеш.
// countdown_seconds пересчитывается на каждый запрос: кешировать неизменный
// снимок обратного отсчета нельзя.
func (s *DashboardService) getCurrentWeekInfo() (*CurrentWeekInfo, error) {
	now := time.Now()

	if s.cache != nil {
		var cached CurrentWeekInfo
		if err := s.cache.GetJSON(currentWeekCacheKey, &cached); err == nil {
			cached.CountdownSeconds = countdownFrom(cached.LockTime, now)
			return &cached, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[DashboardService] Ошибка чтения кеша текущей недели: %v", err)
		}
	}

	week, err := s.weekRepo.GetCurrent()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	info := &CurrentWeekInfo{
		WeekID:     week.ID,
		WeekNumber: week.WeekNumber,
		LockTime:   week.LockTime,
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(currentWeekCacheKey, info, s.cacheTTL); err != nil {
			log.Printf("[DashboardService] Ошибка записи кеша текущей недели: %v", err)
		}
	}

	info.CountdownSeconds = countdownFrom(week.LockTime, now)
	return info, nil
}

func countdownFrom(lockTime *time.Time, now time.Time) *int {
	if lockTime == nil {
		return nil
	}
	seconds := int(lockTime.UTC().Sub(now.UTC()).Seconds())
	return &seconds
}
