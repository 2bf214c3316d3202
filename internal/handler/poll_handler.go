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

	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/handler/dto"
	"github.com/yourusername/pruve-api/internal/middleware"
	"github.com/yourusername/pruve-api/internal/service"
)

// PollHandler обрабатывает запросы, связанные с опросами
type PollHandler struct {
	pollService PollService
}

// NewPollHandler создает новый обработчик опросов
func NewPollHandler(pollService PollService) *PollHandler {
	return &PollHandler{
		pollService: pollService,
	}
}

// CreatePoll создает опрос с вариантами и ответом автора
// POST /create_polls
func (h *PollHandler) CreatePoll(c *gin.Context) {
	var req dto.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := middleware.AuthorizeActingUser(c, req.UserID); err != nil {
		handleError(c, "PollHandler", err)
		return
	}

	created, err := h.pollService.CreatePoll(service.CreatePollInput{
		UserID:   req.UserID,
		Question: req.Question,
		Options:  req.OptionTexts(),
		Answer:   req.Answer,
	})
	if err != nil {
		handleError(c, "PollHandler", err)
		return
	}

	resp := dto.CreatePollResponse{
		PollID:         created.PollID,
		Type:           entity.PollTypeWildcard,
		UserID:         req.UserID,
		Question:       created.Question,
		Options:        make([]dto.PollOptionDTO, len(created.Options)),
		AnswerOptionID: created.AnswerOptionID,
	}
	for i, o := range created.Options {
		resp.Options[i] = dto.PollOptionDTO{OptionID: o.ID, OptionText: o.OptionText}
		if o.ID == created.AnswerOptionID {
			resp.Answer = o.OptionText
		}
	}
	c.JSON(http.StatusCreated, resp)
}

// Vote регистрирует голос в опросе
// POST /polls/:id/vote
func (h *PollHandler) Vote(c *gin.Context) {
	pollID := c.MustGet("pollID").(uint)

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := middleware.AuthorizeActingUser(c, req.UserID); err != nil {
		handleError(c, "PollHandler", err)
		return
	}

	if err := h.pollService.Vote(pollID, req.OptionID, req.UserID); err != nil {
		handleError(c, "PollHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.VoteResponse{PollID: pollID, UserID: req.UserID, OptionID: req.OptionID})
}

// GetPoll возвращает результаты опроса с точки зрения user_id из query
// GET /polls/:id?user_id=
func (h *PollHandler) GetPoll(c *gin.Context) {
	pollID := c.MustGet("pollID").(uint)
	viewerID, err := optionalUintQuery(c, "user_id")
	if err != nil {
		handleError(c, "PollHandler", err)
		return
	}

	poll, err := h.pollService.GetPoll(pollID, viewerID)
	if err != nil {
		handleError(c, "PollHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPollResultsResponse(poll))
}

// ListFeed возвращает все опросы, новые первыми
// GET /polls?user_id=
func (h *PollHandler) ListFeed(c *gin.Context) {
	viewerID, err := optionalUintQuery(c, "user_id")
	if err != nil {
		handleError(c, "PollHandler", err)
		return
	}

	polls, err := h.pollService.ListFeed(viewerID)
	if err != nil {
		handleError(c, "PollHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPollResultsList(polls))
}

// ListUserPolls возвращает опросы, созданные пользователем
// GET /user/:id/polls
func (h *PollHandler) ListUserPolls(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	polls, err := h.pollService.ListUserPolls(userID)
	if err != nil {
		handleError(c, "PollHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPollResultsList(polls))
}

// ExportPollResults экспортирует результаты опроса в CSV или Excel формате
// GET /polls/:id/results/export?format=csv|xlsx
func (h *PollHandler) ExportPollResults(c *gin.Context) {
	pollID := c.MustGet("pollID").(uint)
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	poll, err := h.pollService.GetPoll(pollID, 0)
	if err != nil {
		handleError(c, "PollHandler", err)
		return
	}

	filename := fmt.Sprintf("poll_%d_results_%s", pollID, time.Now().Format("2006-01-02"))
	rows := exportRows(poll)

	switch format {
	case "xlsx":
		h.exportXLSX(c, rows, filename)
	default:
		h.exportCSV(c, rows, filename)
	}
}

var exportHeaders = []string{"Вариант", "Голоса", "Доля, %", "Ответ автора"}

type exportRow struct {
	option string
	votes  int
	share  float64
	answer bool
}

// exportRows готовит строки выгрузки: вариант, голоса, доля и отметку ответа автора
func exportRows(poll *entity.PollResults) []exportRow {
	rows := make([]exportRow, len(poll.Options))
	for i, o := range poll.Options {
		share := 0.0
		if poll.TotalVoteCount > 0 {
			share = float64(o.VoteCount) * 100 / float64(poll.TotalVoteCount)
		}
		rows[i] = exportRow{
			option: o.OptionText,
			votes:  o.VoteCount,
			share:  share,
			answer: poll.AuthorSelectedOptionID != nil && *poll.AuthorSelectedOptionID == o.OptionID,
		}
	}
	return rows
}

func yesNo(v bool) string {
	if v {
		return "Да"
	}
	return "Нет"
}

// exportCSV экспортирует результаты в CSV с правильным экранированием спецсимволов
func (h *PollHandler) exportCSV(c *gin.Context, rows []exportRow, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, r := range rows {
		writer.Write([]string{
			sanitizeForExcel(r.option),
			strconv.Itoa(r.votes),
			strconv.FormatFloat(r.share, 'f', 1, 64),
			yesNo(r.answer),
		})
	}
}

// exportXLSX экспортирует результаты в Excel с использованием StreamWriter
func (h *PollHandler) exportXLSX(c *gin.Context, rows []exportRow, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Результаты"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[PollHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		headers[i] = h
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[PollHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{sanitizeForExcel(r.option), r.votes, r.share, yesNo(r.answer)}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[PollHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[PollHandler] Ошибка при Flush: %v", err)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[PollHandler] Ошибка записи Excel в response: %v", err)
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
