package service

import (
	"errors"
	"time"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// RevealTeam — сторона игры в публичных ответах
type RevealTeam struct {
	ID   *uint   `json:"id"`
	Abbr string  `json:"abbr"`
	Name *string `json:"name"`
}

// RevealGame — игра в снимке reveal. Поля счета и распределения пиков
// заполняются только после lock_time недели.
type RevealGame struct {
	ID            uint           `json:"id"`
	StartTime     *string        `json:"start_time"`
	HomeTeam      RevealTeam     `json:"home_team"`
	AwayTeam      RevealTeam     `json:"away_team"`
	Status        string         `json:"status"`
	HomeScore     *int           `json:"home_score,omitempty"`
	AwayScore     *int           `json:"away_score,omitempty"`
	PickCounts    map[uint]int64 `json:"pick_counts,omitempty"`
	WinningTeamID *uint          `json:"winning_team_id,omitempty"`
}

// RevealSummary — счетчики выживших после закрытия недели
type RevealSummary struct {
	TotalEntries int64 `json:"total_entries"`
	Losers       int64 `json:"losers"`
	Survivors    int64 `json:"survivors"`
}

// RevealSnapshot — ответ GET /api/public/weeks/:id/reveal-snapshot
type RevealSnapshot struct {
	Exists  bool           `json:"exists"`
	WeekID  uint           `json:"week_id,omitempty"`
	Locked  bool           `json:"locked"`
	Games   []RevealGame   `json:"games"`
	Summary *RevealSummary `json:"summary,omitempty"`
}

// PreRevealGame — игра в минимальном публичном виде до reveal
type PreRevealGame struct {
	ID        uint    `json:"id"`
	StartTime *string `json:"start_time"`
	Home      string  `json:"home"`
	Away      string  `json:"away"`
	Status    string  `json:"status"`
}

// PreRevealView — ответ GET /api/public/pre-reveal/:id
type PreRevealView struct {
	WeekID uint            `json:"week_id"`
	Exists bool            `json:"exists"`
	Locked bool            `json:"locked,omitempty"`
	Games  []PreRevealGame `json:"games,omitempty"`
}

// RevealService строит публичные представления недели: минимальный
// pre-reveal и агрегированный снимок после lock_time
type RevealService struct {
	weekRepo repository.WeekRepository
	gameRepo repository.GameRepository
	teamRepo repository.TeamRepository
	pickRepo repository.PickRepository
}

// NewRevealService создает новый сервис reveal
func NewRevealService(
	weekRepo repository.WeekRepository,
	gameRepo repository.GameRepository,
	teamRepo repository.TeamRepository,
	pickRepo repository.PickRepository,
) *RevealService {
	return &RevealService{
		weekRepo: weekRepo,
		gameRepo: gameRepo,
		teamRepo: teamRepo,
		pickRepo: pickRepo,
	}
}

// GetPreReveal возвращает список игр недели без счетов и агрегатов
func (s *RevealService) GetPreReveal(weekID uint) (*PreRevealView, error) {
	week, err := s.weekRepo.GetByID(weekID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &PreRevealView{WeekID: weekID, Exists: false}, nil
		}
		return nil, err
	}

	games, err := s.gameRepo.ListByWeek(weekID)
	if err != nil {
		return nil, err
	}

	out := &PreRevealView{
		WeekID: weekID,
		Exists: true,
		Locked: week.IsLocked(time.Now()),
		Games:  make([]PreRevealGame, 0, len(games)),
	}
	for _, g := range games {
		out.Games = append(out.Games, PreRevealGame{
			ID:        g.ID,
			StartTime: isoTime(g.StartTime),
			Home:      g.HomeTeamAbbr,
			Away:      g.AwayTeamAbbr,
			Status:    g.Status,
		})
	}
	return out, nil
}

// GetRevealSnapshot возвращает снимок недели. До lock_time — минимальный
// список игр; после — распределение пиков, победители финальных игр
// и сводка выживших.
func (s *RevealService) GetRevealSnapshot(weekID uint) (*RevealSnapshot, error) {
	week, err := s.weekRepo.GetByID(weekID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &RevealSnapshot{Exists: false}, nil
		}
		return nil, err
	}

	games, err := s.gameRepo.ListByWeek(weekID)
	if err != nil {
		return nil, err
	}

	teamsByAbbr, teamsByID, err := s.loadGameTeams(games)
	if err != nil {
		return nil, err
	}

	snapshot := &RevealSnapshot{
		Exists: true,
		WeekID: weekID,
		Games:  make([]RevealGame, 0, len(games)),
	}

	if !week.IsLocked(time.Now()) {
		for _, g := range games {
			snapshot.Games = append(snapshot.Games, RevealGame{
				ID:        g.ID,
				StartTime: isoTime(g.StartTime),
				HomeTeam:  revealTeam(g.HomeTeamAbbr, teamsByAbbr),
				AwayTeam:  revealTeam(g.AwayTeamAbbr, teamsByAbbr),
				Status:    g.Status,
			})
		}
		return snapshot, nil
	}

	snapshot.Locked = true

	counts, err := s.pickRepo.CountByTeam(weekID)
	if err != nil {
		return nil, err
	}
	countByTeam := make(map[uint]int64, len(counts))
	for _, c := range counts {
		countByTeam[c.TeamID] = c.Count
	}

	// Победитель по аббревиатуре команды: обе стороны финальной игры
	// указывают на id победившей команды, ничья не дает победителя
	winnerByAbbr := map[string]*uint{}
	for _, g := range games {
		if !g.IsFinalWithScores() {
			continue
		}
		var winner *entity.Team
		if *g.HomeScore > *g.AwayScore {
			winner = teamsByAbbr[g.HomeTeamAbbr]
		} else if *g.AwayScore > *g.HomeScore {
			winner = teamsByAbbr[g.AwayTeamAbbr]
		}
		if winner != nil {
			winnerByAbbr[g.HomeTeamAbbr] = &winner.ID
			winnerByAbbr[g.AwayTeamAbbr] = &winner.ID
		}
	}

	for _, g := range games {
		home := revealTeam(g.HomeTeamAbbr, teamsByAbbr)
		away := revealTeam(g.AwayTeamAbbr, teamsByAbbr)

		pickCounts := map[uint]int64{}
		if home.ID != nil {
			pickCounts[*home.ID] = countByTeam[*home.ID]
		}
		if away.ID != nil {
			pickCounts[*away.ID] = countByTeam[*away.ID]
		}

		game := RevealGame{
			ID:         g.ID,
			StartTime:  isoTime(g.StartTime),
			HomeTeam:   home,
			AwayTeam:   away,
			Status:     g.Status,
			HomeScore:  g.HomeScore,
			AwayScore:  g.AwayScore,
			PickCounts: pickCounts,
		}
		if g.IsFinalWithScores() {
			if *g.HomeScore > *g.AwayScore {
				game.WinningTeamID = home.ID
			} else if *g.AwayScore > *g.HomeScore {
				game.WinningTeamID = away.ID
			}
		}
		snapshot.Games = append(snapshot.Games, game)
	}

	totalEntries, err := s.pickRepo.CountDistinctEntries(weekID)
	if err != nil {
		return nil, err
	}

	picks, err := s.pickRepo.ListByWeek(weekID)
	if err != nil {
		return nil, err
	}
	losers := map[uint]struct{}{}
	for _, p := range picks {
		if p.TeamID == nil {
			continue
		}
		team, ok := teamsByID[*p.TeamID]
		if !ok {
			continue
		}
		winnerID := winnerByAbbr[team.Abbreviation]
		if winnerID == nil {
			// игра не финальная или победитель неизвестен
			continue
		}
		if *winnerID != *p.TeamID {
			losers[p.EntryID] = struct{}{}
		}
	}

	losersCount := int64(len(losers))
	survivors := totalEntries - losersCount
	if survivors < 0 {
		survivors = 0
	}
	snapshot.Summary = &RevealSummary{
		TotalEntries: totalEntries,
		Losers:       losersCount,
		Survivors:    survivors,
	}
	return snapshot, nil
}

func (s *RevealService) loadGameTeams(games []entity.Game) (map[string]*entity.Team, map[uint]*entity.Team, error) {
	abbrSet := map[string]struct{}{}
	for _, g := range games {
		if g.HomeTeamAbbr != "" {
			abbrSet[g.HomeTeamAbbr] = struct{}{}
		}
		if g.AwayTeamAbbr != "" {
			abbrSet[g.AwayTeamAbbr] = struct{}{}
		}
	}

	byAbbr := map[string]*entity.Team{}
	byID := map[uint]*entity.Team{}
	if len(abbrSet) == 0 {
		return byAbbr, byID, nil
	}

	abbrs := make([]string, 0, len(abbrSet))
	for abbr := range abbrSet {
		abbrs = append(abbrs, abbr)
	}
	teams, err := s.teamRepo.ListByAbbreviations(abbrs)
	if err != nil {
		return nil, nil, err
	}
	for i := range teams {
		byAbbr[teams[i].Abbreviation] = &teams[i]
		byID[teams[i].ID] = &teams[i]
	}
	return byAbbr, byID, nil
}

func revealTeam(abbr string, teamsByAbbr map[string]*entity.Team) RevealTeam {
	out := RevealTeam{Abbr: abbr}
	if t, ok := teamsByAbbr[abbr]; ok {
		out.ID = &t.ID
		out.Name = &t.Name
	}
	return out
}

func isoTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
