package service

import (
	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
)

// MatrixEntry — строка матрицы истории: заявка и ее пики по неделям.
// Индекс в Picks соответствует индексу номера недели в HistoryMatrix.Weeks;
// nil — пика на эту неделю не было.
type MatrixEntry struct {
	EntryID   uint    `json:"entry_id"`
	EntryName string  `json:"entry_name"`
	Picks     []*uint `json:"picks"`
}

// HistoryMatrix — ответ GET /api/history/matrix
type HistoryMatrix struct {
	Weeks   []int         `json:"weeks"`
	Entries []MatrixEntry `json:"entries"`
}

// HistoryRecord — плоская запись истории для экспорта (одна строка на пик)
type HistoryRecord struct {
	EntryID    uint
	EntryName  string
	WeekNumber int
	TeamID     *uint
}

// HistoryService строит матрицу истории пиков по сезону
type HistoryService struct {
	weekRepo  repository.WeekRepository
	entryRepo repository.EntryRepository
	pickRepo  repository.PickRepository
}

// NewHistoryService создает новый сервис истории
func NewHistoryService(
	weekRepo repository.WeekRepository,
	entryRepo repository.EntryRepository,
	pickRepo repository.PickRepository,
) *HistoryService {
	return &HistoryService{
		weekRepo:  weekRepo,
		entryRepo: entryRepo,
		pickRepo:  pickRepo,
	}
}

// GetMatrix возвращает матрицу заявки x недели. seasonYear == nil — без фильтра.
func (s *HistoryService) GetMatrix(seasonYear *int) (*HistoryMatrix, error) {
	weeks, err := s.weekRepo.List()
	if err != nil {
		return nil, err
	}
	// List отдает недели по убыванию; матрица строится по возрастанию
	ordered := make([]entity.Week, 0, len(weeks))
	for i := len(weeks) - 1; i >= 0; i-- {
		if seasonYear != nil && weeks[i].SeasonYear != *seasonYear {
			continue
		}
		ordered = append(ordered, weeks[i])
	}

	weekIndex := make(map[uint]int, len(ordered))
	weekNumbers := make([]int, 0, len(ordered))
	for i, w := range ordered {
		weekIndex[w.ID] = i
		weekNumbers = append(weekNumbers, w.WeekNumber)
	}

	filter := repository.EntryListFilter{SeasonYear: seasonYear}
	entries, err := s.entryRepo.List(filter)
	if err != nil {
		return nil, err
	}

	rows := make([]MatrixEntry, 0, len(entries))
	rowIndex := make(map[uint]int, len(entries))
	for _, e := range entries {
		rowIndex[e.ID] = len(rows)
		rows = append(rows, MatrixEntry{
			EntryID:   e.ID,
			EntryName: e.Name,
			Picks:     make([]*uint, len(ordered)),
		})
	}

	if len(ordered) > 0 && len(rows) > 0 {
		matrixRows, err := s.pickRepo.ListMatrixRows(seasonYear)
		if err != nil {
			return nil, err
		}
		for _, mr := range matrixRows {
			ri, ok := rowIndex[mr.EntryID]
			if !ok {
				continue
			}
			wi, ok := weekIndex[mr.WeekID]
			if !ok {
				continue
			}
			rows[ri].Picks[wi] = mr.TeamID
		}
	}

	return &HistoryMatrix{Weeks: weekNumbers, Entries: rows}, nil
}

// GetRawRecords возвращает плоскую историю пиков для экспорта,
// отсортированную по entry_id, затем week_number
func (s *HistoryService) GetRawRecords(seasonYear *int) ([]HistoryRecord, error) {
	matrixRows, err := s.pickRepo.ListMatrixRows(seasonYear)
	if err != nil {
		return nil, err
	}
	records := make([]HistoryRecord, 0, len(matrixRows))
	for _, mr := range matrixRows {
		records = append(records, HistoryRecord{
			EntryID:    mr.EntryID,
			EntryName:  mr.EntryName,
			WeekNumber: mr.WeekNumber,
			TeamID:     mr.TeamID,
		})
	}
	return records, nil
}
