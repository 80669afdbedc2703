package service

import (
	"strings"

	"github.com/yourusername/survivor-api/internal/domain/entity"
)

// ESPN использует несколько аббревиатур, отличающихся от канонических
var espnAbbrAliases = map[string]string{
	"WSH": "WAS",
	"JAC": "JAX",
	"LA":  "LAR",
}

// NormalizedGame — игра после нормализации ответа ESPN
type NormalizedGame struct {
	HomeTeamAbbr string
	AwayTeamAbbr string
	StartTime    string
	Status       string
	HomeScore    *int
	AwayScore    *int
}

func normalizeAbbr(abbr string) string {
	a := strings.ToUpper(strings.TrimSpace(abbr))
	if canonical, ok := espnAbbrAliases[a]; ok {
		return canonical
	}
	return a
}

func mapESPNStatus(state string) string {
	switch strings.ToLower(state) {
	case "pre", "pregame", "scheduled":
		return entity.GameStatusScheduled
	case "in", "inprogress":
		return entity.GameStatusInProgress
	case "post", "final":
		return entity.GameStatusFinal
	default:
		return entity.GameStatusScheduled
	}
}

// TransformESPNScoreboard превращает сырой scoreboard в список игр.
// Событие без двух сторон, без даты или с подозрительной аббревиатурой
// молча пропускается — битые данные не должны ронять синхронизацию.
func TransformESPNScoreboard(board *ESPNScoreboard) []NormalizedGame {
	if board == nil {
		return nil
	}

	games := make([]NormalizedGame, 0, len(board.Events))
	for _, ev := range board.Events {
		if len(ev.Competitions) == 0 {
			continue
		}
		competitors := ev.Competitions[0].Competitors
		if len(competitors) < 2 {
			continue
		}

		var home, away *ESPNCompetitor
		for i := range competitors {
			switch competitors[i].HomeAway {
			case "home":
				home = &competitors[i]
			case "away":
				away = &competitors[i]
			}
		}
		if home == nil || away == nil {
			continue
		}

		homeAbbr := normalizeAbbr(home.Team.Abbreviation)
		awayAbbr := normalizeAbbr(away.Team.Abbreviation)
		if !validAbbr(homeAbbr) || !validAbbr(awayAbbr) {
			continue
		}
		if ev.Date == "" {
			continue
		}

		games = append(games, NormalizedGame{
			HomeTeamAbbr: homeAbbr,
			AwayTeamAbbr: awayAbbr,
			StartTime:    ev.Date,
			Status:       mapESPNStatus(ev.Status.Type.State),
			HomeScore:    home.Score.Value,
			AwayScore:    away.Score.Value,
		})
	}
	return games
}

func validAbbr(abbr string) bool {
	return len(abbr) >= 2 && len(abbr) <= 4
}
