package entity

import (
	"time"
)

// CommentTypeConversation - тип комментария к матчу
const CommentTypeConversation = "conversation"

// Team представляет команду из справочника
type Team struct {
	ID       uint   `gorm:"primaryKey" json:"team_id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	NickName string `gorm:"column:nick_name;size:64;not null;default:''" json:"nickName"`
	Icon     string `gorm:"size:1024;not null;default:''" json:"icon"`
}

// TableName определяет имя таблицы для GORM
func (Team) TableName() string {
	return "teams"
}

// MatchSchedule представляет матч из расписания (справочные данные, в основном для чтения)
type MatchSchedule struct {
	MatchNumber uint      `gorm:"primaryKey;autoIncrement:false" json:"match_number"`
	Team1ID     uint      `gorm:"column:team1_id;not null" json:"team1_id"`
	Team2ID     uint      `gorm:"column:team2_id;not null" json:"team2_id"`
	MatchTime   time.Time `gorm:"not null;index" json:"match_time"`
	Venue       string    `gorm:"size:255;not null;default:''" json:"venue"`
	Type        string    `gorm:"size:32;not null;default:'match'" json:"type"`
	Description string    `gorm:"size:1024;not null;default:''" json:"description"`
	BookTickets string    `gorm:"size:1024;not null;default:''" json:"book_tickets"`
}

// TableName определяет имя таблицы для GORM
func (MatchSchedule) TableName() string {
	return "match_schedules"
}

// HasTeam проверяет, играет ли команда в матче
func (m *MatchSchedule) HasTeam(teamID uint) bool {
	return teamID != 0 && (m.Team1ID == teamID || m.Team2ID == teamID)
}

// MatchVote - выбор команды пользователем в матче. Один голос на матч.
type MatchVote struct {
	ID          uint      `gorm:"primaryKey" json:"vote_id"`
	TeamID      uint      `gorm:"not null" json:"team_id"`
	MatchNumber uint      `gorm:"not null;uniqueIndex:idx_match_votes_match_user" json:"match_number"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_match_votes_match_user" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (MatchVote) TableName() string {
	return "match_votes"
}

// Comment - комментарий к матчу, опционально привязанный к голосу за команду
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"comment_id"`
	Type        string    `gorm:"size:32;not null;default:'conversation'" json:"type"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	MatchNumber uint      `gorm:"not null;index" json:"match_number"`
	VoteID      *uint     `json:"vote_id,omitempty"`
	CommentText string    `gorm:"size:2048;not null" json:"comment_text"`
	CreatedAt   time.Time `json:"time"`
}

// TableName определяет имя таблицы для GORM
func (Comment) TableName() string {
	return "comments"
}

// MatchCard - матч вместе с данными обеих команд и голосами за каждую
type MatchCard struct {
	MatchNumber uint
	MatchTime   time.Time
	Venue       string
	Type        string
	Description string
	BookTickets string
	Team1ID     uint   `gorm:"column:team1_id"`
	Team1Name   string `gorm:"column:team1_name"`
	Team1Icon   string `gorm:"column:team1_icon"`
	Team1Votes  int    `gorm:"column:team1_votes"`
	Team2ID     uint   `gorm:"column:team2_id"`
	Team2Name   string `gorm:"column:team2_name"`
	Team2Icon   string `gorm:"column:team2_icon"`
	Team2Votes  int    `gorm:"column:team2_votes"`
}

// CommentRow - комментарий вместе с автором, командами матча и выбором автора
type CommentRow struct {
	CommentID     uint
	CommentType   string
	MatchNumber   uint
	CommentText   string
	CreatedAt     time.Time
	UserID        uint
	UserEmail     string
	UserName      string
	UserPicture   string
	VotedTeamID   *uint
	Team1ID       uint   `gorm:"column:team1_id"`
	Team1NickName string `gorm:"column:team1_nick_name"`
	Team2ID       uint   `gorm:"column:team2_id"`
	Team2NickName string `gorm:"column:team2_nick_name"`
}
