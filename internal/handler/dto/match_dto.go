package dto

import "time"

// VoteAndCommentRequest - выбор команды и необязательный комментарий
type VoteAndCommentRequest struct {
	UserID      uint   `json:"user_id" binding:"required"`
	TeamID      uint   `json:"team_id" binding:"required"`
	CommentText string `json:"comment_text"`
}

// VoteAndCommentResponse - сохраненный голос и комментарий
type VoteAndCommentResponse struct {
	Message     string `json:"message"`
	VoteID      uint   `json:"vote_id"`
	MatchNumber uint   `json:"match_number"`
	TeamID      uint   `json:"team_id"`
	CommentID   *uint  `json:"comment_id"`
}

// MatchCardDTO - карточка матча
type MatchCardDTO struct {
	MatchNumber uint      `json:"match_number"`
	Team1ID     uint      `json:"team1_id"`
	Team1Name   string    `json:"team1_name"`
	Team1Icon   string    `json:"team1_icon"`
	Team1Votes  int       `json:"team1_votes"`
	Team2ID     uint      `json:"team2_id"`
	Team2Name   string    `json:"team2_name"`
	Team2Icon   string    `json:"team2_icon"`
	Team2Votes  int       `json:"team2_votes"`
	MatchTime   time.Time `json:"match_time"`
	Venue       string    `json:"venue"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	BookTickets string    `json:"book_tickets"`
}

// CommentTeamDTO - команда матча и отметка выбора автора комментария
type CommentTeamDTO struct {
	NickName       string `json:"nickName"`
	IsUserSelected bool   `json:"isUserSelected"`
}

// CommentUserDTO - автор комментария
type CommentUserDTO struct {
	UID     uint   `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// CommentDTO - комментарий к матчу
type CommentDTO struct {
	CommentID   uint             `json:"comment_id"`
	Type        string           `json:"type"`
	MatchNumber uint             `json:"match_number"`
	UserDetails CommentUserDTO   `json:"user_details"`
	Time        string           `json:"time"`
	Teams       []CommentTeamDTO `json:"teams"`
	CommentText string           `json:"comment_text"`
}
