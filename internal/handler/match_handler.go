package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/pruve-api/internal/handler/dto"
	"github.com/yourusername/pruve-api/internal/handler/helper"
	"github.com/yourusername/pruve-api/internal/middleware"
	"github.com/yourusername/pruve-api/internal/service"
)

// MatchHandler обрабатывает запросы расписания, голосов за команды и комментариев
type MatchHandler struct {
	matchService MatchService
}

// NewMatchHandler создает новый обработчик матчей
func NewMatchHandler(matchService MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// ListSchedule возвращает расписание матчей с голосами за команды
// GET /matchschedule
func (h *MatchHandler) ListSchedule(c *gin.Context) {
	cards, err := h.matchService.ListSchedule()
	if err != nil {
		handleError(c, "MatchHandler", err)
		return
	}
	c.JSON(http.StatusOK, helper.ConvertMatchCards(cards))
}

// ListMatchCards возвращает матчи, за которые пользователь еще не голосовал
// GET /:id/matchcards
func (h *MatchHandler) ListMatchCards(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	cards, err := h.matchService.ListMatchCards(userID)
	if err != nil {
		handleError(c, "MatchHandler", err)
		return
	}
	c.JSON(http.StatusOK, helper.ConvertMatchCards(cards))
}

// VoteAndComment сохраняет выбор команды и необязательный комментарий
// POST /:id/match_vote_and_comment
func (h *MatchHandler) VoteAndComment(c *gin.Context) {
	matchNumber := c.MustGet("matchNumber").(uint)

	var req dto.VoteAndCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := middleware.AuthorizeActingUser(c, req.UserID); err != nil {
		handleError(c, "MatchHandler", err)
		return
	}

	result, err := h.matchService.VoteAndComment(service.VoteAndCommentInput{
		MatchNumber: matchNumber,
		UserID:      req.UserID,
		TeamID:      req.TeamID,
		CommentText: req.CommentText,
	})
	if err != nil {
		handleError(c, "MatchHandler", err)
		return
	}

	resp := dto.VoteAndCommentResponse{
		Message:     "Vote recorded",
		VoteID:      result.Vote.ID,
		MatchNumber: result.Vote.MatchNumber,
		TeamID:      result.Vote.TeamID,
	}
	if result.Comment != nil {
		resp.Message = "Vote and comment recorded"
		resp.CommentID = &result.Comment.ID
	}
	c.JSON(http.StatusCreated, resp)
}

// ListComments возвращает комментарии к матчу, старые первыми
// GET /:id/comments
func (h *MatchHandler) ListComments(c *gin.Context) {
	matchNumber := c.MustGet("matchNumber").(uint)

	rows, err := h.matchService.ListComments(matchNumber)
	if err != nil {
		handleError(c, "MatchHandler", err)
		return
	}
	c.JSON(http.StatusOK, helper.ConvertComments(rows))
}

// ListAllComments возвращает ленту комментариев по всем матчам, новые первыми
// GET /comments
func (h *MatchHandler) ListAllComments(c *gin.Context) {
	rows, err := h.matchService.ListAllComments()
	if err != nil {
		handleError(c, "MatchHandler", err)
		return
	}
	c.JSON(http.StatusOK, helper.ConvertComments(rows))
}
