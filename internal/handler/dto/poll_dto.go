package dto

import (
	"time"

	"github.com/yourusername/pruve-api/internal/domain/entity"
)

// PollOptionRequest - вариант ответа в запросе на создание опроса
type PollOptionRequest struct {
	OptionText string `json:"option_text"`
}

// CreatePollRequest - запрос на создание опроса
type CreatePollRequest struct {
	UserID   uint                `json:"user_id" binding:"required"`
	Question string              `json:"question" binding:"required"`
	Options  []PollOptionRequest `json:"options" binding:"required"`
	Answer   string              `json:"answer" binding:"required"`
}

// OptionTexts возвращает тексты вариантов в порядке запроса
func (r CreatePollRequest) OptionTexts() []string {
	texts := make([]string, len(r.Options))
	for i, o := range r.Options {
		texts[i] = o.OptionText
	}
	return texts
}

// PollOptionDTO - вариант ответа
type PollOptionDTO struct {
	OptionID   uint   `json:"option_id"`
	OptionText string `json:"option_text"`
}

// CreatePollResponse - созданный опрос
type CreatePollResponse struct {
	PollID         uint            `json:"poll_id"`
	Type           string          `json:"type"`
	UserID         uint            `json:"user_id"`
	Question       string          `json:"question"`
	Options        []PollOptionDTO `json:"options"`
	Answer         string          `json:"answer"`
	AnswerOptionID uint            `json:"answer_option_id"`
}

// VoteRequest - голос в опросе
type VoteRequest struct {
	UserID   uint `json:"user_id" binding:"required"`
	OptionID uint `json:"option_id" binding:"required"`
}

// VoteResponse - подтверждение голоса
type VoteResponse struct {
	PollID   uint `json:"poll_id"`
	UserID   uint `json:"user_id"`
	OptionID uint `json:"option_id"`
}

// OptionResultDTO - вариант с количеством голосов
type OptionResultDTO struct {
	OptionID   uint   `json:"option_id"`
	OptionText string `json:"option_text"`
	VoteCount  int    `json:"vote_count"`
}

// PollResultsResponse - опрос с результатами с точки зрения зрителя
type PollResultsResponse struct {
	PollID                 uint              `json:"poll_id"`
	Type                   string            `json:"type"`
	UserID                 uint              `json:"user_id"`
	Question               string            `json:"question"`
	AnswerID               *uint             `json:"answer_id"`
	CreatedAt              time.Time         `json:"created_at"`
	Creator                string            `json:"creator"`
	AuthorSelectedOptionID *uint             `json:"author_selected_option_id"`
	Options                []OptionResultDTO `json:"options"`
	UserSelected           *uint             `json:"user_selected"`
	Voters                 []string          `json:"voters"`
	PredictionAccuracy     int               `json:"predictionAccuracy"`
	Picture                string            `json:"picture"`
	TotalVoteCount         int               `json:"total_vote_count"`
}

// NewPollResultsResponse создает ответ из собранных результатов
func NewPollResultsResponse(p *entity.PollResults) PollResultsResponse {
	options := make([]OptionResultDTO, len(p.Options))
	for i, o := range p.Options {
		options[i] = OptionResultDTO{OptionID: o.OptionID, OptionText: o.OptionText, VoteCount: o.VoteCount}
	}
	voters := p.Voters
	if voters == nil {
		voters = []string{}
	}
	return PollResultsResponse{
		PollID:                 p.PollID,
		Type:                   p.Type,
		UserID:                 p.CreatorID,
		Question:               p.Question,
		AnswerID:               p.AuthorSelectedOptionID,
		CreatedAt:              p.CreatedAt,
		Creator:                p.CreatorName,
		AuthorSelectedOptionID: p.AuthorSelectedOptionID,
		Options:                options,
		UserSelected:           p.UserSelected,
		Voters:                 voters,
		PredictionAccuracy:     p.PredictionAccuracy,
		Picture:                p.CreatorPicture,
		TotalVoteCount:         p.TotalVoteCount,
	}
}

// NewPollResultsList создает список ответов
func NewPollResultsList(polls []entity.PollResults) []PollResultsResponse {
	result := make([]PollResultsResponse, len(polls))
	for i := range polls {
		result[i] = NewPollResultsResponse(&polls[i])
	}
	return result
}
