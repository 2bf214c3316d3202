package repository

import (
	"github.com/yourusername/pruve-api/internal/domain/entity"
)

// CommentFilter задает выборку комментариев. Нулевой MatchNumber означает все матчи.
type CommentFilter struct {
	MatchNumber uint
	NewestFirst bool
}

// MatchRepository определяет методы для работы с расписанием, голосами за команды и комментариями
type MatchRepository interface {
	Transaction(fn func(txRepo MatchRepository) error) error

	GetMatch(matchNumber uint) (*entity.MatchSchedule, error)
	// ListCards возвращает матчи с командами и голосами; если excludeVotedBy != 0,
	// матчи, где этот пользователь уже голосовал, пропускаются
	ListCards(excludeVotedBy uint) ([]entity.MatchCard, error)
	CountMatchesByNumbers(numbers []uint) (int64, error)

	// CreateVote возвращает apperrors.ErrConflict при повторном голосе за матч
	CreateVote(vote *entity.MatchVote) error
	CreateComment(comment *entity.Comment) error
	ListCommentRows(filter CommentFilter) ([]entity.CommentRow, error)
}
