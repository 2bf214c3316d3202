package dto

import "github.com/yourusername/pruve-api/internal/domain/entity"

// CreateLeagueRequest - запрос на создание лиги
type CreateLeagueRequest struct {
	Name        string `json:"name" binding:"required"`
	CreatorID   uint   `json:"creator_id" binding:"required"`
	Users       []uint `json:"users"`
	Description string `json:"description"`
	MatchupIDs  []uint `json:"matchup_id"`
	IsPublic    bool   `json:"is_public"`
}

// JoinLeagueRequest - запрос на вступление в лигу
type JoinLeagueRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// LeagueMemberDTO - участник лиги
type LeagueMemberDTO struct {
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
	Image    string `json:"image"`
	Role     string `json:"role"`
}

// LeagueDTO - лига с составом
type LeagueDTO struct {
	LeagueID          uint              `json:"league_id"`
	LeagueName        string            `json:"league_name"`
	LeagueDescription string            `json:"league_description"`
	IsPublic          bool              `json:"is_public"`
	CreatorID         uint              `json:"creator_id"`
	Users             []LeagueMemberDTO `json:"users"`
	MatchNumbers      []uint            `json:"matchup_id,omitempty"`
}

// UserLeaguesResponse - лиги, в которых состоит пользователь
type UserLeaguesResponse struct {
	UserID  uint        `json:"user_id"`
	Leagues []LeagueDTO `json:"leagues"`
}

// NonMemberLeaguesResponse - лиги, в которых пользователь не состоит
type NonMemberLeaguesResponse struct {
	UserID           uint        `json:"user_id"`
	NonMemberLeagues []LeagueDTO `json:"non_member_leagues"`
}

// NewLeagueDTO создает DTO лиги
func NewLeagueDTO(l *entity.LeagueWithRoster) LeagueDTO {
	users := make([]LeagueMemberDTO, len(l.Members))
	for i, m := range l.Members {
		users[i] = LeagueMemberDTO{UserID: m.UserID, UserName: m.Name, Image: m.Picture, Role: m.Role}
	}
	return LeagueDTO{
		LeagueID:          l.League.ID,
		LeagueName:        l.League.Name,
		LeagueDescription: l.League.Description,
		IsPublic:          l.League.IsPublic,
		CreatorID:         l.League.CreatorID,
		Users:             users,
		MatchNumbers:      l.MatchNumbers,
	}
}

// NewLeagueList создает список DTO лиг
func NewLeagueList(leagues []entity.LeagueWithRoster) []LeagueDTO {
	result := make([]LeagueDTO, len(leagues))
	for i := range leagues {
		result[i] = NewLeagueDTO(&leagues[i])
	}
	return result
}
