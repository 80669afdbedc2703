package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// SyncResult — итог синхронизации игр недели
type SyncResult struct {
	Created       int `json:"created"`
	TotalIncoming int `json:"total_incoming"`
}

// SyncService загружает расписание из ESPN и транзакционно замещает
// игры целевой недели
type SyncService struct {
	client   *ESPNClient
	weekRepo repository.WeekRepository
	gameRepo repository.GameRepository
	teamRepo repository.TeamRepository
}

// NewSyncService создает новый сервис синхронизации
func NewSyncService(
	client *ESPNClient,
	weekRepo repository.WeekRepository,
	gameRepo repository.GameRepository,
	teamRepo repository.TeamRepository,
) *SyncService {
	return &SyncService{
		client:   client,
		weekRepo: weekRepo,
		gameRepo: gameRepo,
		teamRepo: teamRepo,
	}
}

// SyncESPNGames загружает scoreboard и заменяет игры недели (year, week).
// Стратегия: удалить существующие игры недели, вставить новый набор,
// все в одной транзакции.
func (s *SyncService) SyncESPNGames(ctx context.Context, year, weekNumber int) (*SyncResult, error) {
	board, err := s.client.FetchScoreboard(ctx, year, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch espn scoreboard: %w", err)
	}

	normalized := TransformESPNScoreboard(board)

	week, matches, err := s.weekRepo.LatestBySeasonWeek(year, weekNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: week not found for season %d week %d", apperrors.ErrNotFound, year, weekNumber)
		}
		return nil, err
	}
	if matches > 1 {
		log.Printf("[SyncService] Найдено %d недель для %d-%d; используется последняя id=%d", matches, year, weekNumber, week.ID)
	}

	teamIDs, err := s.resolveTeamIDs(normalized)
	if err != nil {
		return nil, err
	}

	rows := make([]entity.Game, 0, len(normalized))
	for _, g := range normalized {
		startTime, err := parseESPNTime(g.StartTime)
		if err != nil {
			log.Printf("[SyncService] Пропущена игра %s-%s: непарсимое время %q", g.AwayTeamAbbr, g.HomeTeamAbbr, g.StartTime)
			continue
		}
		rows = append(rows, entity.Game{
			WeekID:       week.ID,
			StartTime:    startTime,
			HomeTeamAbbr: g.HomeTeamAbbr,
			AwayTeamAbbr: g.AwayTeamAbbr,
			HomeTeamID:   teamIDs[g.HomeTeamAbbr],
			AwayTeamID:   teamIDs[g.AwayTeamAbbr],
			Status:       g.Status,
			HomeScore:    g.HomeScore,
			AwayScore:    g.AwayScore,
			IsFinal:      g.Status == entity.GameStatusFinal,
		})
	}

	created, err := s.gameRepo.ReplaceWeekGames(week.ID, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to replace week games: %w", err)
	}

	log.Printf("[SyncService] Синхронизировано %d игр для %d-%d", created, year, weekNumber)
	return &SyncResult{Created: created, TotalIncoming: len(rows)}, nil
}

// resolveTeamIDs сопоставляет аббревиатуры игр со справочником команд.
// Неизвестная аббревиатура оставляет id пустым, это не ошибка.
func (s *SyncService) resolveTeamIDs(games []NormalizedGame) (map[string]*uint, error) {
	abbrSet := map[string]struct{}{}
	for _, g := range games {
		abbrSet[g.HomeTeamAbbr] = struct{}{}
		abbrSet[g.AwayTeamAbbr] = struct{}{}
	}
	if len(abbrSet) == 0 {
		return map[string]*uint{}, nil
	}

	abbrs := make([]string, 0, len(abbrSet))
	for abbr := range abbrSet {
		abbrs = append(abbrs, abbr)
	}
	teams, err := s.teamRepo.ListByAbbreviations(abbrs)
	if err != nil {
		return nil, err
	}

	out := make(map[string]*uint, len(teams))
	for i := range teams {
		out[teams[i].Abbreviation] = &teams[i].ID
	}
	return out, nil
}

func parseESPNTime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", value)
}
