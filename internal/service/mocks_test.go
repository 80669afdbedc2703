package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
)

// ============================================================================
// Моки репозиториев для тестирования сервисов
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(userID uint, newPassword string) error {
	args := m.Called(userID, newPassword)
	return args.Error(0)
}

func (m *MockUserRepository) List() ([]entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

// MockWeekRepository реализует repository.WeekRepository
type MockWeekRepository struct {
	mock.Mock
}

func (m *MockWeekRepository) Create(week *entity.Week) error {
	args := m.Called(week)
	return args.Error(0)
}

func (m *MockWeekRepository) GetByID(id uint) (*entity.Week, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Week), args.Error(1)
}

func (m *MockWeekRepository) List() ([]entity.Week, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Week), args.Error(1)
}

func (m *MockWeekRepository) Update(week *entity.Week) error {
	args := m.Called(week)
	return args.Error(0)
}

func (m *MockWeekRepository) GetCurrent() (*entity.Week, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Week), args.Error(1)
}

func (m *MockWeekRepository) SetCurrent(weekID uint) error {
	args := m.Called(weekID)
	return args.Error(0)
}

func (m *MockWeekRepository) LatestBySeasonWeek(seasonYear, weekNumber int) (*entity.Week, int64, error) {
	args := m.Called(seasonYear, weekNumber)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).(*entity.Week), args.Get(1).(int64), args.Error(2)
}

// MockGameRepository реализует repository.GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) GetByID(id uint) (*entity.Game, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (m *MockGameRepository) ListByWeek(weekID uint) ([]entity.Game, error) {
	args := m.Called(weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Game), args.Error(1)
}

func (m *MockGameRepository) ReplaceWeekGames(weekID uint, games []entity.Game) (int, error) {
	args := m.Called(weekID, games)
	return args.Int(0), args.Error(1)
}

// MockTeamRepository реализует repository.TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) GetByID(id uint) (*entity.Team, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByAbbreviation(abbr string) (*entity.Team, error) {
	args := m.Called(abbr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Team), args.Error(1)
}

func (m *MockTeamRepository) List() ([]entity.Team, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Team), args.Error(1)
}

func (m *MockTeamRepository) ListByAbbreviations(abbrs []string) ([]entity.Team, error) {
	args := m.Called(abbrs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Team), args.Error(1)
}

// MockEntryRepository реализует repository.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Create(entry *entity.Entry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockEntryRepository) GetByID(id uint) (*entity.Entry, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entry), args.Error(1)
}

func (m *MockEntryRepository) GetByUserWeek(userID, weekID uint) (*entity.Entry, error) {
	args := m.Called(userID, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entry), args.Error(1)
}

func (m *MockEntryRepository) GetByUserSeasonName(userID uint, seasonYear int, name string) (*entity.Entry, error) {
	args := m.Called(userID, seasonYear, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListByUser(userID uint) ([]entity.Entry, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Entry), args.Error(1)
}

func (m *MockEntryRepository) List(filter repository.EntryListFilter) ([]entity.Entry, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Entry), args.Error(1)
}

func (m *MockEntryRepository) Update(entry *entity.Entry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockEntryRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPickRepository реализует repository.PickRepository
type MockPickRepository struct {
	mock.Mock
}

func (m *MockPickRepository) Create(pick *entity.Pick) error {
	args := m.Called(pick)
	return args.Error(0)
}

func (m *MockPickRepository) GetByID(id uint) (*entity.Pick, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Pick), args.Error(1)
}

func (m *MockPickRepository) GetByEntryWeek(entryID, weekID uint) (*entity.Pick, error) {
	args := m.Called(entryID, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Pick), args.Error(1)
}

func (m *MockPickRepository) ListByWeek(weekID uint) ([]entity.Pick, error) {
	args := m.Called(weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Pick), args.Error(1)
}

func (m *MockPickRepository) ListWithTeams(entryIDs []uint, weekID uint) ([]repository.PickWithTeam, error) {
	args := m.Called(entryIDs, weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PickWithTeam), args.Error(1)
}

func (m *MockPickRepository) FindSeasonTeamUsage(userID uint, seasonYear int, teamID uint, excludePickID uint) (*entity.Pick, error) {
	args := m.Called(userID, seasonYear, teamID, excludePickID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Pick), args.Error(1)
}

func (m *MockPickRepository) Update(pick *entity.Pick) error {
	args := m.Called(pick)
	return args.Error(0)
}

func (m *MockPickRepository) CountByTeam(weekID uint) ([]repository.TeamPickCount, error) {
	args := m.Called(weekID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TeamPickCount), args.Error(1)
}

func (m *MockPickRepository) CountDistinctEntries(weekID uint) (int64, error) {
	args := m.Called(weekID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPickRepository) ListMatrixRows(seasonYear *int) ([]repository.MatrixRow, error) {
	args := m.Called(seasonYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MatrixRow), args.Error(1)
}

// MockPasswordResetTokenRepository реализует repository.PasswordResetTokenRepository
type MockPasswordResetTokenRepository struct {
	mock.Mock
}

func (m *MockPasswordResetTokenRepository) Create(token *entity.PasswordResetToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockPasswordResetTokenRepository) GetByTokenHash(tokenHash string) (*entity.PasswordResetToken, error) {
	args := m.Called(tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PasswordResetToken), args.Error(1)
}

func (m *MockPasswordResetTokenRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPasswordResetTokenRepository) DeleteExpired(now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmailService реализует EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, toEmail, subject, body string) error {
	args := m.Called(ctx, toEmail, subject, body)
	return args.Error(0)
}

func (m *MockEmailService) SendBroadcast(ctx context.Context, recipients []string, subject, body string) (int, error) {
	args := m.Called(ctx, recipients, subject, body)
	return args.Int(0), args.Error(1)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}
