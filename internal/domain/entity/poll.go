package entity

import (
	"time"
)

// PollTypeWildcard - тип пользовательского опроса-прогноза
const PollTypeWildcard = "wildcard"

// Poll представляет опрос, созданный пользователем
type Poll struct {
	ID        uint         `gorm:"primaryKey" json:"poll_id"`
	Type      string       `gorm:"size:32;not null;default:'wildcard'" json:"type"`
	UserID    uint         `gorm:"not null;index" json:"user_id"`
	Question  string       `gorm:"size:1024;not null" json:"question"`
	CreatedAt time.Time    `gorm:"index" json:"created_at"`
	Options   []PollOption `gorm:"foreignKey:PollID" json:"options,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Poll) TableName() string {
	return "polls"
}

// PollOption представляет вариант ответа. Количество голосов не хранится,
// оно всегда вычисляется по строкам poll_votes.
type PollOption struct {
	ID         uint   `gorm:"primaryKey" json:"option_id"`
	PollID     uint   `gorm:"not null;index" json:"poll_id"`
	OptionText string `gorm:"size:512;not null" json:"option_text"`
}

// TableName определяет имя таблицы для GORM
func (PollOption) TableName() string {
	return "poll_options"
}

// PollAnswer хранит вариант, который автор опроса объявил правильным.
// На каждый опрос ровно один ответ.
type PollAnswer struct {
	ID         uint   `gorm:"primaryKey" json:"answer_id"`
	PollID     uint   `gorm:"not null;uniqueIndex" json:"poll_id"`
	CreatorID  uint   `gorm:"not null" json:"creator_id"`
	OptionID   uint   `gorm:"not null" json:"option_id"`
	AnswerText string `gorm:"size:512;not null" json:"answer_text"`
}

// TableName определяет имя таблицы для GORM
func (PollAnswer) TableName() string {
	return "poll_answers"
}

// PollVote представляет голос пользователя. Пара (poll_id, user_id) уникальна.
type PollVote struct {
	ID        uint      `gorm:"primaryKey" json:"vote_id"`
	PollID    uint      `gorm:"not null;uniqueIndex:idx_poll_votes_poll_user" json:"poll_id"`
	OptionID  uint      `gorm:"not null;index" json:"option_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_poll_votes_poll_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (PollVote) TableName() string {
	return "poll_votes"
}

// PollResultRow - плоская строка соединения опрос x вариант x голос.
// Из таких строк собираются PollResults.
type PollResultRow struct {
	PollID         uint
	PollType       string
	CreatorID      uint
	Question       string
	CreatedAt      time.Time
	CreatorName    string
	CreatorPicture string
	AnswerOptionID *uint
	OptionID       uint
	OptionText     string
	VoterID        *uint
	VoterName      *string
}

// OptionResult - вариант ответа с подсчитанными голосами
type OptionResult struct {
	OptionID   uint
	OptionText string
	VoteCount  int
}

// PollResults - опрос с агрегированными результатами с точки зрения конкретного зрителя
type PollResults struct {
	PollID                 uint
	Type                   string
	Question               string
	CreatedAt              time.Time
	CreatorID              uint
	CreatorName            string
	CreatorPicture         string
	AuthorSelectedOptionID *uint
	Options                []OptionResult
	UserSelected           *uint
	Voters                 []string
	TotalVoteCount         int
	PredictionAccuracy     int
}

// OptionVoteCount - количество голосов за вариант, без данных о зрителе
type OptionVoteCount struct {
	OptionID  uint `json:"option_id"`
	VoteCount int  `json:"vote_count"`
}
