package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/yourusername/survivor-api/internal/domain/entity"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

func TestEntryService_CreateEntry_Success(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	weekRepo := new(MockWeekRepository)
	svc := NewEntryService(entryRepo, weekRepo)

	week := &entity.Week{ID: 5, SeasonYear: 2025, WeekNumber: 1}
	weekRepo.On("GetByID", uint(5)).Return(week, nil)
	entryRepo.On("GetByUserSeasonName", uint(1), 2025, "My Entry").Return(nil, apperrors.ErrNotFound)
	entryRepo.On("GetByUserWeek", uint(1), uint(5)).Return(nil, apperrors.ErrNotFound)
	entryRepo.On("Create", mock.AnythingOfType("*entity.Entry")).Return(nil)

	entry, err := svc.CreateEntry(1, 5, "My Entry", nil)

	assert.NoError(t, err)
	assert.Equal(t, uint(1), entry.UserID)
	assert.Equal(t, uint(5), entry.WeekID)
	assert.Equal(t, 2025, entry.SeasonYear)
	// Пустой снимок picks по умолчанию
	assert.Equal(t, json.RawMessage("[]"), entry.Picks)
	entryRepo.AssertExpectations(t)
}

func TestEntryService_CreateEntry_WeekNotFound(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	weekRepo := new(MockWeekRepository)
	svc := NewEntryService(entryRepo, weekRepo)

	weekRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	entry, err := svc.CreateEntry(1, 99, "My Entry", nil)

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	entryRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestEntryService_CreateEntry_EmptyName(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	weekRepo := new(MockWeekRepository)
	svc := NewEntryService(entryRepo, weekRepo)

	week := &entity.Week{ID: 5, SeasonYear: 2025}
	weekRepo.On("GetByID", uint(5)).Return(week, nil)

	entry, err := svc.CreateEntry(1, 5, "", nil)

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEntryService_CreateEntry_NameConflict(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	weekRepo := new(MockWeekRepository)
	svc := NewEntryService(entryRepo, weekRepo)

	week := &entity.Week{ID: 5, SeasonYear: 2025}
	weekRepo.On("GetByID", uint(5)).Return(week, nil)
	taken := &entity.Entry{ID: 7, UserID: 1, SeasonYear: 2025, Name: "Taken"}
	entryRepo.On("GetByUserSeasonName", uint(1), 2025, "Taken").Return(taken, nil)

	entry, err := svc.CreateEntry(1, 5, "Taken", nil)

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	// Конфликт имени проверяется до ветки перезаписи
	entryRepo.AssertNotCalled(t, "GetByUserWeek", mock.Anything, mock.Anything)
}

func TestEntryService_CreateEntry_OverwritesExistingWeekEntry(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	weekRepo := new(MockWeekRepository)
	svc := NewEntryService(entryRepo, weekRepo)

	week := &entity.Week{ID: 5, SeasonYear: 2025}
	weekRepo.On("GetByID", uint(5)).Return(week, nil)
	entryRepo.On("GetByUserSeasonName", uint(1), 2025, "Second").Return(nil, apperrors.ErrNotFound)

	existing := &entity.Entry{ID: 3, UserID: 1, WeekID: 5, Name: "First", SeasonYear: 2025, Picks: json.RawMessage(`[1]`)}
	entryRepo.On("GetByUserWeek", uint(1), uint(5)).Return(existing, nil)
	entryRepo.On("Update", existing).Return(nil)

	picks := json.RawMessage(`[10, 11]`)
	entry, err := svc.CreateEntry(1, 5, "Second", picks)

	assert.NoError(t, err)
	// Существующая заявка сохраняет id и имя, но получает новый снимок picks
	assert.Equal(t, uint(3), entry.ID)
	assert.Equal(t, "First", entry.Name)
	assert.Equal(t, picks, entry.Picks)
	entryRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestEntryService_UpdateEntry_NotOwnerMaskedAsNotFound(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	weekRepo := new(MockWeekRepository)
	svc := NewEntryService(entryRepo, weekRepo)

	entry := &entity.Entry{ID: 3, UserID: 2, WeekID: 5}
	entryRepo.On("GetByID", uint(3)).Return(entry, nil)

	updated, err := svc.UpdateEntry(3, 1, EntryUpdateInput{Name: strPtr("New")})

	assert.Nil(t, updated)
	// Чужая заявка неотличима от отсутствующей
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEntryService_UpdateEntry_WeekLocked(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	weekRepo := new(MockWeekRepository)
	svc := NewEntryService(entryRepo, weekRepo)

	entry := &entity.Entry{ID: 3, UserID: 1, WeekID: 5}
	entryRepo.On("GetByID", uint(3)).Return(entry, nil)

	past := time.Now().Add(-time.Hour)
	weekRepo.On("GetByID", uint(5)).Return(&entity.Week{ID: 5, LockTime: &past}, nil)

	updated, err := svc.UpdateEntry(3, 1, EntryUpdateInput{Name: strPtr("New")})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, apperrors.ErrWeekLocked)
}

func TestEntryService_UpdateEntry_RenameConflict(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	weekRepo := new(MockWeekRepository)
	svc := NewEntryService(entryRepo, weekRepo)

	entry := &entity.Entry{ID: 3, UserID: 1, WeekID: 5, Name: "Old", SeasonYear: 2025}
	entryRepo.On("GetByID", uint(3)).Return(entry, nil)
	future := time.Now().Add(time.Hour)
	weekRepo.On("GetByID", uint(5)).Return(&entity.Week{ID: 5, LockTime: &future}, nil)
	taken := &entity.Entry{ID: 9, UserID: 1, SeasonYear: 2025, Name: "Taken"}
	entryRepo.On("GetByUserSeasonName", uint(1), 2025, "Taken").Return(taken, nil)

	updated, err := svc.UpdateEntry(3, 1, EntryUpdateInput{Name: strPtr("Taken")})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestEntryService_UpdateEntry_RenameAndPicks(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	weekRepo := new(MockWeekRepository)
	svc := NewEntryService(entryRepo, weekRepo)

	entry := &entity.Entry{ID: 3, UserID: 1, WeekID: 5, Name: "Old", SeasonYear: 2025}
	entryRepo.On("GetByID", uint(3)).Return(entry, nil)
	weekRepo.On("GetByID", uint(5)).Return(&entity.Week{ID: 5}, nil)
	entryRepo.On("GetByUserSeasonName", uint(1), 2025, "New").Return(nil, apperrors.ErrNotFound)
	entryRepo.On("Update", entry).Return(nil)

	picks := json.RawMessage(`[4]`)
	updated, err := svc.UpdateEntry(3, 1, EntryUpdateInput{Name: strPtr("New"), Picks: picks})

	assert.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, picks, updated.Picks)
}

func TestEntryService_DeleteEntry_WeekLocked(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	weekRepo := new(MockWeekRepository)
	svc := NewEntryService(entryRepo, weekRepo)

	entry := &entity.Entry{ID: 3, UserID: 1, WeekID: 5}
	entryRepo.On("GetByID", uint(3)).Return(entry, nil)
	past := time.Now().Add(-time.Minute)
	weekRepo.On("GetByID", uint(5)).Return(&entity.Week{ID: 5, LockTime: &past}, nil)

	err := svc.DeleteEntry(3, 1)

	assert.ErrorIs(t, err, apperrors.ErrWeekLocked)
	entryRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestEntryService_DeleteEntry_Success(t *testing.T) {
	entryRepo := new(MockEntryRepository)
	weekRepo := new(MockWeekRepository)
	svc := NewEntryService(entryRepo, weekRepo)

	entry := &entity.Entry{ID: 3, UserID: 1, WeekID: 5}
	entryRepo.On("GetByID", uint(3)).Return(entry, nil)
	weekRepo.On("GetByID", uint(5)).Return(&entity.Week{ID: 5}, nil)
	entryRepo.On("Delete", uint(3)).Return(nil)

	err := svc.DeleteEntry(3, 1)

	assert.NoError(t, err)
	entryRepo.AssertExpectations(t)
}
