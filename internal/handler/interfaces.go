package handler

import (
	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/service"
)

// PollService - операции с опросами, которые использует PollHandler
type PollService interface {
	CreatePoll(input service.CreatePollInput) (*service.CreatedPoll, error)
	Vote(pollID, optionID, userID uint) error
	GetPoll(pollID, viewerID uint) (*entity.PollResults, error)
	ListUserPolls(userID uint) ([]entity.PollResults, error)
	ListFeed(viewerID uint) ([]entity.PollResults, error)
	LiveCounts(pollID uint) ([]entity.OptionVoteCount, error)
}

// UserService - операции с пользователями, которые использует UserHandler
type UserService interface {
	CreateOrFetchUser(email, name, picture string) (*entity.User, string, error)
	GetUser(userID uint) (*entity.User, error)
	SearchUsers(query string) ([]service.UserMatch, error)
}

// LeagueService - операции с лигами, которые использует LeagueHandler
type LeagueService interface {
	CreateLeague(input service.CreateLeagueInput) (*entity.LeagueWithRoster, error)
	GetLeague(leagueID uint) (*entity.LeagueWithRoster, error)
	ListUserLeagues(userID uint) ([]entity.LeagueWithRoster, error)
	ListNonMemberLeagues(userID uint) ([]entity.LeagueWithRoster, error)
	JoinLeague(leagueID, userID uint) error
}

// MatchService - операции с матчами, которые использует MatchHandler
type MatchService interface {
	ListSchedule() ([]entity.MatchCard, error)
	ListMatchCards(userID uint) ([]entity.MatchCard, error)
	VoteAndComment(input service.VoteAndCommentInput) (*service.VoteAndCommentResult, error)
	ListComments(matchNumber uint) ([]entity.CommentRow, error)
	ListAllComments() ([]entity.CommentRow, error)
}
