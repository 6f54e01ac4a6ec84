package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yourusername/quiz-app/internal/domain/entity"
	"github.com/yourusername/quiz-app/internal/handler/dto"
	"github.com/yourusername/quiz-app/internal/service"
	"github.com/yourusername/quiz-app/pkg/logger"
)

// exportDateLayout - формат даты в выгрузке истории
const exportDateLayout = "2006-01-02 15:04:05"

// HistoryHandler обрабатывает запросы, связанные с историей попыток
type HistoryHandler struct {
	historyService *service.HistoryService
	location       *time.Location
}

// NewHistoryHandler создает новый обработчик истории.
// loc задает часовой пояс дат в выгрузке; nil означает локальный.
func NewHistoryHandler(historyService *service.HistoryService, loc *time.Location) *HistoryHandler {
	if loc == nil {
		loc = time.Local
	}
	return &HistoryHandler{historyService: historyService, location: loc}
}

// ListHistory возвращает все записи истории
// GET /api/history
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	records, err := h.historyService.ListHistory(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// CreateHistory сохраняет попытку и возвращает ее id
// POST /api/history
func (h *HistoryHandler) CreateHistory(c *gin.Context) {
	var req dto.CreateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	id, err := h.historyService.RecordAttempt(c.Request.Context(), req.ToEntity())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.IDResponse{ID: id})
}

// DeleteHistory удаляет одну запись, 404 если ее нет
// DELETE /api/history/:id
func (h *HistoryHandler) DeleteHistory(c *gin.Context) {
	recordID := c.MustGet("historyID").(uint)

	if err := h.historyService.DeleteRecord(c.Request.Context(), recordID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ClearHistory удаляет всю историю
// DELETE /api/history
func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	if err := h.historyService.ClearHistory(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ExportHistory выгружает историю в CSV или XLSX
// GET /api/history/export?format=csv|xlsx
func (h *HistoryHandler) ExportHistory(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported format %q", format)})
		return
	}

	records, err := h.historyService.ListHistory(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("history_%s", time.Now().In(h.location).Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, records, filename)
	default:
		h.exportCSV(c, records, filename)
	}
}

var exportHeaders = []string{"ID", "User", "Test", "Score", "Date"}

func (h *HistoryHandler) exportRow(r entity.HistoryRecord) []string {
	return []string{
		strconv.FormatUint(uint64(r.ID), 10),
		sanitizeForExcel(r.User),
		sanitizeForExcel(r.TestTitle),
		strconv.Itoa(r.Score),
		r.Time().In(h.location).Format(exportDateLayout),
	}
}

// exportCSV пишет CSV с BOM, чтобы Excel открыл UTF-8 без искажений
func (h *HistoryHandler) exportCSV(c *gin.Context, records []entity.HistoryRecord, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	// заголовки уже отправлены, остается только залогировать
	if err := h.writeCSV(c.Writer, records); err != nil {
		logger.Log.Error("[HistoryHandler] Ошибка записи CSV в response", zap.Error(err))
	}
}

func (h *HistoryHandler) writeCSV(w io.Writer, records []entity.HistoryRecord) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := writer.Write(h.exportRow(r)); err != nil {
			return fmt.Errorf("write record %d: %w", r.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// exportXLSX пишет книгу через StreamWriter
func (h *HistoryHandler) exportXLSX(c *gin.Context, records []entity.HistoryRecord, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "History"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		logger.Log.Error("[HistoryHandler] Ошибка создания StreamWriter", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, v := range exportHeaders {
		headers[i] = v
	}
	if err := sw.SetRow("A1", headers); err != nil {
		logger.Log.Warn("[HistoryHandler] Ошибка записи заголовков", zap.Error(err))
	}

	for i, r := range records {
		rowNum := i + 2
		row := []interface{}{
			r.ID,
			sanitizeForExcel(r.User),
			sanitizeForExcel(r.TestTitle),
			r.Score,
			r.Time().In(h.location).Format(exportDateLayout),
		}
		if err := sw.SetRow(fmt.Sprintf("A%d", rowNum), row); err != nil {
			logger.Log.Warn("[HistoryHandler] Ошибка записи строки", zap.Int("row", rowNum), zap.Error(err))
		}
	}

	if err := sw.Flush(); err != nil {
		logger.Log.Error("[HistoryHandler] Ошибка при Flush", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		logger.Log.Error("[HistoryHandler] Ошибка записи Excel в response", zap.Error(err))
	}
}

// sanitizeForExcel экранирует ячейки, которые Excel принял бы за формулу
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
