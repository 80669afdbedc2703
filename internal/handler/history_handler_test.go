package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
	"github.com/yourusername/survivor-api/internal/service"
)

// stubPickRepository отдает фиксированную историю пиков; остальные методы
// экспорту не нужны
type stubPickRepository struct {
	rows []repository.MatrixRow
}

func (s *stubPickRepository) Create(pick *entity.Pick) error                  { return nil }
func (s *stubPickRepository) GetByID(id uint) (*entity.Pick, error)           { return nil, nil }
func (s *stubPickRepository) GetByEntryWeek(e, w uint) (*entity.Pick, error)  { return nil, nil }
func (s *stubPickRepository) ListByWeek(weekID uint) ([]entity.Pick, error)   { return nil, nil }
func (s *stubPickRepository) Update(pick *entity.Pick) error                  { return nil }
func (s *stubPickRepository) CountDistinctEntries(weekID uint) (int64, error) { return 0, nil }

func (s *stubPickRepository) ListWithTeams(entryIDs []uint, weekID uint) ([]repository.PickWithTeam, error) {
	return nil, nil
}

func (s *stubPickRepository) FindSeasonTeamUsage(userID uint, seasonYear int, teamID uint, excludePickID uint) (*entity.Pick, error) {
	return nil, nil
}

func (s *stubPickRepository) CountByTeam(weekID uint) ([]repository.TeamPickCount, error) {
	return nil, nil
}

func (s *stubPickRepository) ListMatrixRows(seasonYear *int) ([]repository.MatrixRow, error) {
	return s.rows, nil
}

func newHistoryExportHandler(rows []repository.MatrixRow) *HistoryHandler {
	historyService := service.NewHistoryService(nil, nil, &stubPickRepository{rows: rows})
	return NewHistoryHandler(historyService)
}

func TestHistoryHandler_Export_CSV(t *testing.T) {
	teamID := uint(10)
	handler := newHistoryExportHandler([]repository.MatrixRow{
		{EntryID: 1, EntryName: "Alpha", WeekID: 1, WeekNumber: 1, TeamID: &teamID},
		{EntryID: 1, EntryName: "Alpha", WeekID: 2, WeekNumber: 2, TeamID: nil},
	})

	c, w := newTestGinContext(http.MethodGet, "/api/admin/history/export?format=csv", nil)
	handler.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := w.Body.String()
	// BOM в начале файла для Excel
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))
	assert.Contains(t, body, "entry_id,entry_name,week_number,team_id")
	assert.Contains(t, body, "1,Alpha,1,10")
	// Пропущенный пик — пустая ячейка
	assert.Contains(t, body, "1,Alpha,2,")
}

func TestHistoryHandler_Export_CSVSanitizesFormulas(t *testing.T) {
	handler := newHistoryExportHandler([]repository.MatrixRow{
		{EntryID: 1, EntryName: "=HYPERLINK(\"http://evil\")", WeekID: 1, WeekNumber: 1},
	})

	c, w := newTestGinContext(http.MethodGet, "/api/admin/history/export", nil)
	handler.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	// Имя, начинающееся с "=", получает защитный апостроф
	assert.Contains(t, w.Body.String(), "'=HYPERLINK")
}

func TestHistoryHandler_Export_XLSX(t *testing.T) {
	teamID := uint(10)
	handler := newHistoryExportHandler([]repository.MatrixRow{
		{EntryID: 1, EntryName: "Alpha", WeekID: 1, WeekNumber: 1, TeamID: &teamID},
	})

	c, w := newTestGinContext(http.MethodGet, "/api/admin/history/export?format=xlsx", nil)
	handler.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	// xlsx — это zip-архив, начинающийся с сигнатуры PK
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}

func TestHistoryHandler_Export_InvalidSeasonYear(t *testing.T) {
	handler := newHistoryExportHandler(nil)

	c, w := newTestGinContext(http.MethodGet, "/api/admin/history/export?season_year=abc", nil)
	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSanitizeForExcel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alpha", "Alpha"},
		{"", ""},
		{"=1+1", "'=1+1"},
		{"+SUM(A1)", "'+SUM(A1)"},
		{"-cmd", "'-cmd"},
		{"@import", "'@import"},
		{"\tindent", "'\tindent"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeForExcel(tt.in))
	}
}
