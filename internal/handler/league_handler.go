package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/pruve-api/internal/handler/dto"
	"github.com/yourusername/pruve-api/internal/middleware"
	"github.com/yourusername/pruve-api/internal/service"
)

// LeagueHandler обрабатывает запросы, связанные с лигами
type LeagueHandler struct {
	leagueService LeagueService
}

// NewLeagueHandler создает новый обработчик лиг
func NewLeagueHandler(leagueService LeagueService) *LeagueHandler {
	return &LeagueHandler{
		leagueService: leagueService,
	}
}

// CreateLeague создает лигу
// POST /leagues
func (h *LeagueHandler) CreateLeague(c *gin.Context) {
	var req dto.CreateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := middleware.AuthorizeActingUser(c, req.CreatorID); err != nil {
		handleError(c, "LeagueHandler", err)
		return
	}

	league, err := h.leagueService.CreateLeague(service.CreateLeagueInput{
		CreatorID:    req.CreatorID,
		Name:         req.Name,
		Description:  req.Description,
		IsPublic:     req.IsPublic,
		MemberIDs:    req.Users,
		MatchNumbers: req.MatchupIDs,
	})
	if err != nil {
		handleError(c, "LeagueHandler", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewLeagueDTO(league))
}

// ListUserLeagues возвращает лиги, в которых состоит пользователь
// GET /leagues/:id
func (h *LeagueHandler) ListUserLeagues(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	leagues, err := h.leagueService.ListUserLeagues(userID)
	if err != nil {
		handleError(c, "LeagueHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.UserLeaguesResponse{
		UserID:  userID,
		Leagues: dto.NewLeagueList(leagues),
	})
}

// ListNonMemberLeagues возвращает лиги, в которых пользователь не состоит
// GET /leagues/:id/non_member
func (h *LeagueHandler) ListNonMemberLeagues(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	leagues, err := h.leagueService.ListNonMemberLeagues(userID)
	if err != nil {
		handleError(c, "LeagueHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NonMemberLeaguesResponse{
		UserID:           userID,
		NonMemberLeagues: dto.NewLeagueList(leagues),
	})
}

// GetLeague возвращает лигу с участниками
// GET /leagues/:id/details
func (h *LeagueHandler) GetLeague(c *gin.Context) {
	leagueID := c.MustGet("leagueID").(uint)

	league, err := h.leagueService.GetLeague(leagueID)
	if err != nil {
		handleError(c, "LeagueHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLeagueDTO(league))
}

// JoinLeague добавляет пользователя в лигу
// POST /leagues/:id/join
func (h *LeagueHandler) JoinLeague(c *gin.Context) {
	leagueID := c.MustGet("leagueID").(uint)

	var req dto.JoinLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := middleware.AuthorizeActingUser(c, req.UserID); err != nil {
		handleError(c, "LeagueHandler", err)
		return
	}

	if err := h.leagueService.JoinLeague(leagueID, req.UserID); err != nil {
		handleError(c, "LeagueHandler", err)
		return
	}

	league, err := h.leagueService.GetLeague(leagueID)
	if err != nil {
		handleError(c, "LeagueHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLeagueDTO(league))
}
