package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/survivor-api/internal/service"
)

// HistoryHandler обрабатывает запросы к истории пиков
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler создает новый обработчик истории
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// Matrix возвращает матрицу истории сезона
// GET /api/history/matrix?season_year=
func (h *HistoryHandler) Matrix(c *gin.Context) {
	seasonYear, ok := optionalSeasonYear(c)
	if !ok {
		return
	}

	matrix, err := h.historyService.GetMatrix(seasonYear)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matrix)
}

// Export экспортирует плоскую историю пиков в CSV или Excel формате
// GET /api/admin/history/export?season_year=&format=csv|xlsx
func (h *HistoryHandler) Export(c *gin.Context) {
	seasonYear, ok := optionalSeasonYear(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "csv")

	records, err := h.historyService.GetRawRecords(seasonYear)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("picks_history_%s", time.Now().Format("2006-01-02"))
	if seasonYear != nil {
		filename = fmt.Sprintf("picks_history_%d_%s", *seasonYear, time.Now().Format("2006-01-02"))
	}

	switch format {
	case "xlsx":
		h.exportXLSX(c, records, filename)
	default:
		h.exportCSV(c, records, filename)
	}
}

// exportCSV пишет историю в CSV с правильным экранированием спецсимволов
func (h *HistoryHandler) exportCSV(c *gin.Context, records []service.HistoryRecord, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"entry_id", "entry_name", "week_number", "team_id"})
	for _, r := range records {
		teamID := ""
		if r.TeamID != nil {
			teamID = strconv.FormatUint(uint64(*r.TeamID), 10)
		}
		writer.Write([]string{
			strconv.FormatUint(uint64(r.EntryID), 10),
			sanitizeForExcel(r.EntryName),
			strconv.Itoa(r.WeekNumber),
			teamID,
		})
	}
}

// exportXLSX пишет историю в Excel через StreamWriter
func (h *HistoryHandler) exportXLSX(c *gin.Context, records []service.HistoryRecord, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "History"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[HistoryHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"entry_id", "entry_name", "week_number", "team_id"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[HistoryHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range records {
		cell := fmt.Sprintf("A%d", i+2)
		var teamID interface{}
		if r.TeamID != nil {
			teamID = *r.TeamID
		} else {
			teamID = ""
		}
		row := []interface{}{r.EntryID, sanitizeForExcel(r.EntryName), r.WeekNumber, teamID}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[HistoryHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[HistoryHandler] Ошибка при Flush: %v", err)
	}
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[HistoryHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// optionalSeasonYear читает необязательный query-параметр season_year
func optionalSeasonYear(c *gin.Context) (*int, bool) {
	raw := c.Query("season_year")
	if raw == "" {
		return nil, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid season_year"})
		return nil, false
	}
	return &year, true
}
