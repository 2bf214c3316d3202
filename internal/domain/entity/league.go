package entity

import (
	"time"
)

const (
	// LeagueTypeDefault - тип лиги по умолчанию
	LeagueTypeDefault = "league"

	// RoleAdmin - роль создателя лиги
	RoleAdmin = "admin"
	// RolePlayer - роль остальных участников
	RolePlayer = "role player"
)

// League представляет группу пользователей, объединенных вокруг матчей
type League struct {
	ID          uint      `gorm:"primaryKey" json:"league_id"`
	Name        string    `gorm:"size:255;not null" json:"league_name"`
	Description string    `gorm:"size:1024;not null;default:''" json:"league_description"`
	Type        string    `gorm:"size:32;not null;default:'league'" json:"type"`
	IsPublic    bool      `gorm:"not null" json:"is_public"`
	CreatorID   uint      `gorm:"not null;index" json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (League) TableName() string {
	return "leagues"
}

// LeagueMembership связывает пользователя с лигой
type LeagueMembership struct {
	LeagueID  uint      `gorm:"primaryKey;autoIncrement:false" json:"league_id"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	Role      string    `gorm:"size:32;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (LeagueMembership) TableName() string {
	return "league_memberships"
}

// LeagueMatchup прикрепляет матч из расписания к лиге
type LeagueMatchup struct {
	LeagueID    uint `gorm:"primaryKey;autoIncrement:false" json:"league_id"`
	MatchNumber uint `gorm:"primaryKey;autoIncrement:false" json:"match_number"`
}

// TableName определяет имя таблицы для GORM
func (LeagueMatchup) TableName() string {
	return "league_matchups"
}

// LeagueRosterRow - строка соединения лига x участник
type LeagueRosterRow struct {
	LeagueID          uint
	LeagueName        string
	LeagueDescription string
	IsPublic          bool
	CreatorID         uint
	UserID            uint
	UserName          string
	UserPicture       string
	Role              string
}

// LeagueMember - участник лиги в составе ростера
type LeagueMember struct {
	UserID  uint
	Name    string
	Picture string
	Role    string
}

// LeagueWithRoster - лига вместе с участниками и прикрепленными матчами
type LeagueWithRoster struct {
	League       League
	Members      []LeagueMember
	MatchNumbers []uint
}
