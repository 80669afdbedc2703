package service

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// fakeFinalizeStore — in-memory реализация FinalizeStore для тестов финализации.
// Счетчики сохранений позволяют проверять write-only-on-change.
type fakeFinalizeStore struct {
	weeks   map[uint]*entity.Week
	games   map[uint]*entity.Game
	teams   map[string]*entity.Team
	picks   map[uint]*entity.Pick
	entries map[uint]*entity.Entry

	pickSaves  int
	entrySaves int
}

func newFakeFinalizeStore() *fakeFinalizeStore {
	return &fakeFinalizeStore{
		weeks:   make(map[uint]*entity.Week),
		games:   make(map[uint]*entity.Game),
		teams:   make(map[string]*entity.Team),
		picks:   make(map[uint]*entity.Pick),
		entries: make(map[uint]*entity.Entry),
	}
}

func (s *fakeFinalizeStore) GetWeek(id uint) (*entity.Week, error) {
	w, ok := s.weeks[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return w, nil
}

func (s *fakeFinalizeStore) GetGame(id uint) (*entity.Game, error) {
	g, ok := s.games[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

func (s *fakeFinalizeStore) SaveGame(game *entity.Game) error {
	copied := *game
	s.games[game.ID] = &copied
	return nil
}

func (s *fakeFinalizeStore) GetTeamByAbbreviation(abbr string) (*entity.Team, error) {
	t, ok := s.teams[abbr]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return t, nil
}

func (s *fakeFinalizeStore) ListPicksByWeek(weekID uint) ([]entity.Pick, error) {
	// map не упорядочен; для детерминизма сортируем по id
	ids := make([]uint, 0, len(s.picks))
	for id := range s.picks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var result []entity.Pick
	for _, id := range ids {
		if p := s.picks[id]; p.WeekID == weekID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (s *fakeFinalizeStore) SavePick(pick *entity.Pick) error {
	copied := *pick
	s.picks[pick.ID] = &copied
	s.pickSaves++
	return nil
}

func (s *fakeFinalizeStore) GetEntry(id uint) (*entity.Entry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (s *fakeFinalizeStore) SaveEntry(entry *entity.Entry) error {
	copied := *entry
	s.entries[entry.ID] = &copied
	s.entrySaves++
	return nil
}

// clone снимает глубокую копию стора; копия играет роль транзакции
func (s *fakeFinalizeStore) clone() *fakeFinalizeStore {
	c := newFakeFinalizeStore()
	for id, w := range s.weeks {
		copied := *w
		c.weeks[id] = &copied
	}
	for id, g := range s.games {
		copied := *g
		c.games[id] = &copied
	}
	for abbr, tm := range s.teams {
		copied := *tm
		c.teams[abbr] = &copied
	}
	for id, p := range s.picks {
		copied := *p
		c.picks[id] = &copied
	}
	for id, e := range s.entries {
		copied := *e
		c.entries[id] = &copied
	}
	c.pickSaves = s.pickSaves
	c.entrySaves = s.entrySaves
	return c
}

// fakeFinalizeUoW имитирует транзакционность: fn исполняется над копией
// стора, изменения коммитятся в исходный стор только при успехе
type fakeFinalizeUoW struct {
	store *fakeFinalizeStore
}

func (u *fakeFinalizeUoW) Execute(fn func(store repository.FinalizeStore) error) error {
	tx := u.store.clone()
	if err := fn(tx); err != nil {
		return err
	}
	*u.store = *tx
	return nil
}

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

// newSurvivorFixture готовит неделю с двумя играми, четырьмя командами
// и тремя заявками, каждая со своим пиком
func newSurvivorFixture() *fakeFinalizeStore {
	store := newFakeFinalizeStore()
	store.weeks[1] = &entity.Week{ID: 1, SeasonYear: 2025, WeekNumber: 3}

	store.teams["KC"] = &entity.Team{ID: 10, Abbreviation: "KC", Name: "Chiefs"}
	store.teams["BUF"] = &entity.Team{ID: 11, Abbreviation: "BUF", Name: "Bills"}
	store.teams["DAL"] = &entity.Team{ID: 12, Abbreviation: "DAL", Name: "Cowboys"}
	store.teams["PHI"] = &entity.Team{ID: 13, Abbreviation: "PHI", Name: "Eagles"}

	store.games[100] = &entity.Game{ID: 100, WeekID: 1, HomeTeamAbbr: "KC", AwayTeamAbbr: "BUF", Status: entity.GameStatusScheduled}
	store.games[101] = &entity.Game{ID: 101, WeekID: 1, HomeTeamAbbr: "DAL", AwayTeamAbbr: "PHI", Status: entity.GameStatusScheduled}

	store.entries[1] = &entity.Entry{ID: 1, UserID: 1, WeekID: 1, Name: "Alpha", SeasonYear: 2025}
	store.entries[2] = &entity.Entry{ID: 2, UserID: 2, WeekID: 1, Name: "Beta", SeasonYear: 2025}
	store.entries[3] = &entity.Entry{ID: 3, UserID: 3, WeekID: 1, Name: "Gamma", SeasonYear: 2025}

	store.picks[1] = &entity.Pick{ID: 1, EntryID: 1, WeekID: 1, TeamID: uintPtr(10), TeamAbbr: "KC"}
	store.picks[2] = &entity.Pick{ID: 2, EntryID: 2, WeekID: 1, TeamID: uintPtr(11), TeamAbbr: "BUF"}
	store.picks[3] = &entity.Pick{ID: 3, EntryID: 3, WeekID: 1, TeamID: uintPtr(13), TeamAbbr: "PHI"}

	return store
}

func TestFinalizeWeek_ResolvesWinnersAndLosers(t *testing.T) {
	store := newSurvivorFixture()
	svc := NewFinalizeService(&fakeFinalizeUoW{store: store})

	// KC обыгрывает BUF, PHI обыгрывает DAL
	result, err := svc.FinalizeWeek(1, []GameScoreInput{
		{GameID: 100, HomeScore: 27, AwayScore: 20},
		{GameID: 101, HomeScore: 14, AwayScore: 31},
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, 2, result.ProcessedGames)
	assert.Equal(t, 3, result.ProcessedPicks)

	// Счета и статус записаны на игры
	game := store.games[100]
	assert.True(t, game.IsFinal)
	assert.Equal(t, entity.GameStatusFinal, game.Status)
	assert.Equal(t, 27, *game.HomeScore)
	assert.Equal(t, 20, *game.AwayScore)

	// Пики на победителей выигрывают, на проигравших — проигрывают
	assert.Equal(t, entity.PickResultWin, *store.picks[1].Result)
	assert.Equal(t, entity.PickResultLoss, *store.picks[2].Result)
	assert.Equal(t, entity.PickResultWin, *store.picks[3].Result)

	// Выбывает только заявка с проигравшим пиком
	assert.False(t, store.entries[1].IsEliminated)
	assert.True(t, store.entries[2].IsEliminated)
	assert.False(t, store.entries[3].IsEliminated)
}

func TestFinalizeWeek_TieEliminatesBothSides(t *testing.T) {
	store := newSurvivorFixture()
	svc := NewFinalizeService(&fakeFinalizeUoW{store: store})

	// Ничья в первой игре: у нее нет победителя, KC и BUF оба проигрывают
	result, err := svc.FinalizeWeek(1, []GameScoreInput{
		{GameID: 100, HomeScore: 21, AwayScore: 21},
		{GameID: 101, HomeScore: 14, AwayScore: 31},
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, result.ProcessedPicks)

	assert.Equal(t, entity.PickResultLoss, *store.picks[1].Result)
	assert.Equal(t, entity.PickResultLoss, *store.picks[2].Result)
	assert.Equal(t, entity.PickResultWin, *store.picks[3].Result)

	assert.True(t, store.entries[1].IsEliminated)
	assert.True(t, store.entries[2].IsEliminated)
	assert.False(t, store.entries[3].IsEliminated)
}

func TestFinalizeWeek_PickOnUnrelatedTeamLoses(t *testing.T) {
	store := newSurvivorFixture()
	// Пик заявки 3 на команду, которая в батче не играла
	store.picks[3].TeamID = uintPtr(99)
	store.picks[3].TeamAbbr = "SEA"
	svc := NewFinalizeService(&fakeFinalizeUoW{store: store})

	_, err := svc.FinalizeWeek(1, []GameScoreInput{
		{GameID: 100, HomeScore: 27, AwayScore: 20},
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.PickResultLoss, *store.picks[3].Result)
	assert.True(t, store.entries[3].IsEliminated)
}

func TestFinalizeWeek_UnknownWinnerAbbreviation(t *testing.T) {
	store := newSurvivorFixture()
	// Игра с аббревиатурой вне справочника команд: победитель не определяется,
	// но финализация не падает
	store.games[100].HomeTeamAbbr = "XXX"
	svc := NewFinalizeService(&fakeFinalizeUoW{store: store})

	_, err := svc.FinalizeWeek(1, []GameScoreInput{
		{GameID: 100, HomeScore: 27, AwayScore: 20},
	})

	assert.NoError(t, err)
	// Победителя нет — все пики недели проигрывают
	assert.Equal(t, entity.PickResultLoss, *store.picks[1].Result)
	assert.Equal(t, entity.PickResultLoss, *store.picks[2].Result)
}

func TestFinalizeWeek_EmptyBatchResolvesAllPicks(t *testing.T) {
	store := newSurvivorFixture()
	svc := NewFinalizeService(&fakeFinalizeUoW{store: store})

	// Пустой батч — легальный вызов: победителей нет,
	// все пики недели становятся проигрышными
	result, err := svc.FinalizeWeek(1, nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.ProcessedGames)
	assert.Equal(t, 3, result.ProcessedPicks)

	for id := uint(1); id <= 3; id++ {
		assert.Equal(t, entity.PickResultLoss, *store.picks[id].Result)
		assert.True(t, store.entries[id].IsEliminated)
	}
}

func TestFinalizeWeek_IdempotentRerun(t *testing.T) {
	store := newSurvivorFixture()
	svc := NewFinalizeService(&fakeFinalizeUoW{store: store})

	batch := []GameScoreInput{
		{GameID: 100, HomeScore: 27, AwayScore: 20},
		{GameID: 101, HomeScore: 14, AwayScore: 31},
	}

	first, err := svc.FinalizeWeek(1, batch)
	assert.NoError(t, err)
	savesAfterFirst := store.pickSaves

	second, err := svc.FinalizeWeek(1, batch)
	assert.NoError(t, err)

	// Сводка повторного запуска идентична
	assert.Equal(t, first.ProcessedPicks, second.ProcessedPicks)
	// Результаты не изменились, поэтому пики повторно не сохранялись
	assert.Equal(t, savesAfterFirst, store.pickSaves)
	assert.True(t, store.entries[2].IsEliminated)
}

func TestFinalizeWeek_EliminationIsMonotonic(t *testing.T) {
	store := newSurvivorFixture()
	// Заявка 1 уже выбыла ранее; победный пик не возвращает ее в игру
	store.entries[1].IsEliminated = true
	svc := NewFinalizeService(&fakeFinalizeUoW{store: store})

	_, err := svc.FinalizeWeek(1, []GameScoreInput{
		{GameID: 100, HomeScore: 27, AwayScore: 20},
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.PickResultWin, *store.picks[1].Result)
	assert.True(t, store.entries[1].IsEliminated)
}

func TestFinalizeWeek_ResultFlipsOnCorrectedScores(t *testing.T) {
	store := newSurvivorFixture()
	svc := NewFinalizeService(&fakeFinalizeUoW{store: store})

	_, err := svc.FinalizeWeek(1, []GameScoreInput{{GameID: 100, HomeScore: 27, AwayScore: 20}})
	assert.NoError(t, err)
	assert.Equal(t, entity.PickResultWin, *store.picks[1].Result)

	// Исправленный счет меняет победителя; результат пика пересчитывается,
	// но выбывшая ранее заявка 2 выбывшей и остается
	_, err = svc.FinalizeWeek(1, []GameScoreInput{{GameID: 100, HomeScore: 17, AwayScore: 20}})
	assert.NoError(t, err)
	assert.Equal(t, entity.PickResultLoss, *store.picks[1].Result)
	assert.Equal(t, entity.PickResultWin, *store.picks[2].Result)
	assert.True(t, store.entries[1].IsEliminated)
	assert.True(t, store.entries[2].IsEliminated)
}

func TestFinalizeWeek_WeekNotFound(t *testing.T) {
	store := newSurvivorFixture()
	svc := NewFinalizeService(&fakeFinalizeUoW{store: store})

	result, err := svc.FinalizeWeek(999, nil)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrFinalizeWeekNotFound)
}

func TestFinalizeWeek_GameNotFound(t *testing.T) {
	store := newSurvivorFixture()
	svc := NewFinalizeService(&fakeFinalizeUoW{store: store})

	result, err := svc.FinalizeWeek(1, []GameScoreInput{{GameID: 555, HomeScore: 10, AwayScore: 7}})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrFinalizeGameNotFound)
	// Пики нетронуты
	assert.Nil(t, store.picks[1].Result)
}

func TestFinalizeWeek_MissingGameRollsBackWholeBatch(t *testing.T) {
	store := newSurvivorFixture()
	svc := NewFinalizeService(&fakeFinalizeUoW{store: store})

	// Валидная игра идет в батче первой, но отсутствующая игра 555
	// откатывает весь вызов: счет первой игры не должен сохраниться
	result, err := svc.FinalizeWeek(1, []GameScoreInput{
		{GameID: 100, HomeScore: 27, AwayScore: 20},
		{GameID: 555, HomeScore: 10, AwayScore: 7},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrFinalizeGameNotFound)

	game := store.games[100]
	assert.False(t, game.IsFinal)
	assert.Equal(t, entity.GameStatusScheduled, game.Status)
	assert.Nil(t, game.HomeScore)
	assert.Nil(t, game.AwayScore)

	assert.Nil(t, store.picks[1].Result)
	assert.Equal(t, 0, store.pickSaves)
	assert.Equal(t, 0, store.entrySaves)
}

func TestFinalizeWeek_NegativeScoreRejected(t *testing.T) {
	store := newSurvivorFixture()
	svc := NewFinalizeService(&fakeFinalizeUoW{store: store})

	result, err := svc.FinalizeWeek(1, []GameScoreInput{{GameID: 100, HomeScore: -1, AwayScore: 7}})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrFinalizeInvalidScore)
}

func TestFinalizeWeek_ZeroGameIDRejected(t *testing.T) {
	store := newSurvivorFixture()
	svc := NewFinalizeService(&fakeFinalizeUoW{store: store})

	result, err := svc.FinalizeWeek(1, []GameScoreInput{{GameID: 0, HomeScore: 10, AwayScore: 7}})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrFinalizeMalformedPayload)
}
