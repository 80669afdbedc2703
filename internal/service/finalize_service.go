package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// GameScoreInput — финальный счет одной игры в батче финализации
type GameScoreInput struct {
	GameID    uint `json:"game_id"`
	HomeScore int  `json:"home_score"`
	AwayScore int  `json:"away_score"`
}

// FinalizeResult — сводка успешной финализации
type FinalizeResult struct {
	Status         string `json:"status"`
	ProcessedGames int    `json:"processed_games"`
	ProcessedPicks int    `json:"processed_picks"`
}

// FinalizeService выполняет недельную финализацию: записывает финальные счета,
// вычисляет победителей, перепроставляет result всем пикам недели и помечает
// проигравшие заявки выбывшими. Вся работа идет в одной транзакции через
// переданный unit of work; любая ошибка откатывает батч целиком.
//
// Повторный вызов с теми же данными безопасен: результаты пересчитываются
// с нуля, а флаг выбывания монотонен (здесь он никогда не снимается,
// снять его может только административная правка заявки).
type FinalizeService struct {
	uow repository.FinalizeUnitOfWork
}

// NewFinalizeService создает новый сервис финализации
func NewFinalizeService(uow repository.FinalizeUnitOfWork) *FinalizeService {
	return &FinalizeService{uow: uow}
}

// FinalizeWeek финализирует игры недели и разрешает пики.
// games может быть nil — это легальный пустой батч.
func (s *FinalizeService) FinalizeWeek(weekID uint, games []GameScoreInput) (*FinalizeResult, error) {
	processedPicks := 0

	err := s.uow.Execute(func(store repository.FinalizeStore) error {
		// Неделя должна существовать; без нее не трогаем ничего
		if _, err := store.GetWeek(weekID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return ErrFinalizeWeekNotFound
			}
			return fmt.Errorf("%w: %v", ErrFinalizePersistence, err)
		}

		if err := s.applyGameUpdates(store, games); err != nil {
			return err
		}

		// Перечитываем обновленные игры и вычисляем победителя каждой
		gameWinners := make(map[uint]*uint, len(games))
		for _, g := range games {
			game, err := store.GetGame(g.GameID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("%w after update: %d", ErrFinalizeGameNotFound, g.GameID)
				}
				return fmt.Errorf("%w: %v", ErrFinalizePersistence, err)
			}
			winner, err := s.computeGameWinner(store, game)
			if err != nil {
				return err
			}
			gameWinners[g.GameID] = winner
		}

		// Перепроставляем результат ВСЕМ пикам недели, не только пикам
		// на команды из батча
		picks, err := store.ListPicksByWeek(weekID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFinalizePersistence, err)
		}

		for i := range picks {
			pick := &picks[i]

			isWin := false
			if pick.TeamID != nil {
				for _, winnerID := range gameWinners {
					if winnerID != nil && *winnerID == *pick.TeamID {
						isWin = true
						break
					}
				}
			}

			newResult := entity.PickResultLoss
			if isWin {
				newResult = entity.PickResultWin
			}

			// Пишем только при изменении, чтобы не плодить лишние UPDATE
			if pick.Result == nil || *pick.Result != newResult {
				result := newResult
				pick.Result = &result
				if err := store.SavePick(pick); err != nil {
					return fmt.Errorf("%w: %v", ErrFinalizePersistence, err)
				}
			}
			processedPicks++

			if !isWin {
				if err := s.eliminateEntry(store, pick.EntryID); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		processedPicks = 0
		return nil, err
	}

	log.Printf("[FinalizeService] Неделя %d финализирована: игр=%d, пиков=%d",
		weekID, len(games), processedPicks)

	return &FinalizeResult{
		Status:         "ok",
		ProcessedGames: len(games),
		ProcessedPicks: processedPicks,
	}, nil
}

// applyGameUpdates записывает финальные счета на игры батча
func (s *FinalizeService) applyGameUpdates(store repository.FinalizeStore, games []GameScoreInput) error {
	for _, g := range games {
		if g.GameID == 0 {
			return fmt.Errorf("%w: game_id is required for each game", ErrFinalizeMalformedPayload)
		}
		game, err := store.GetGame(g.GameID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %d", ErrFinalizeGameNotFound, g.GameID)
			}
			return fmt.Errorf("%w: %v", ErrFinalizePersistence, err)
		}

		if g.HomeScore < 0 || g.AwayScore < 0 {
			return fmt.Errorf("%w: game %d", ErrFinalizeInvalidScore, g.GameID)
		}

		homeScore, awayScore := g.HomeScore, g.AwayScore
		game.HomeScore = &homeScore
		game.AwayScore = &awayScore
		game.IsFinal = true
		game.Status = entity.GameStatusFinal

		if err := store.SaveGame(game); err != nil {
			return fmt.Errorf("%w: %v", ErrFinalizePersistence, err)
		}
	}
	return nil
}

// computeGameWinner возвращает id победившей команды или nil.
// Ничья трактуется как отсутствие победителя: обе стороны проигрывают.
// Это действующее правило пула, а не упущение (вопрос "ничья = пуш?"
// нужно решать с организаторами, не в коде).
func (s *FinalizeService) computeGameWinner(store repository.FinalizeStore, game *entity.Game) (*uint, error) {
	if game.HomeScore == nil || game.AwayScore == nil {
		return nil, nil
	}

	var winnerAbbr string
	switch {
	case *game.HomeScore > *game.AwayScore:
		winnerAbbr = game.HomeTeamAbbr
	case *game.AwayScore > *game.HomeScore:
		winnerAbbr = game.AwayTeamAbbr
	default:
		return nil, nil // ничья
	}

	team, err := store.GetTeamByAbbreviation(winnerAbbr)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Неизвестная аббревиатура — победителя нет, ошибки тоже нет
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrFinalizePersistence, err)
	}
	teamID := team.ID
	return &teamID, nil
}

// eliminateEntry помечает заявку выбывшей, если она еще не выбыла
func (s *FinalizeService) eliminateEntry(store repository.FinalizeStore, entryID uint) error {
	entry, err := store.GetEntry(entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrFinalizePersistence, err)
	}
	if entry.IsEliminated {
		return nil
	}
	entry.IsEliminated = true
	if err := store.SaveEntry(entry); err != nil {
		return fmt.Errorf("%w: %v", ErrFinalizePersistence, err)
	}
	return nil
}
