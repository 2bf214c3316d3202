package repository

import (
	"github.com/yourusername/pruve-api/internal/domain/entity"
)

// PollFilter ограничивает выборку строк результатов. Нулевое поле не фильтрует.
type PollFilter struct {
	PollID    uint
	CreatorID uint
}

// PollRepository определяет методы для работы с опросами, вариантами, ответами и голосами
type PollRepository interface {
	// Transaction выполняет fn в одной транзакции; ошибка из fn откатывает все изменения
	Transaction(fn func(txRepo PollRepository) error) error

	CreatePoll(poll *entity.Poll) error
	// CreateOptions сохраняет варианты в переданном порядке и заполняет их ID
	CreateOptions(options []entity.PollOption) error
	CreateAnswer(answer *entity.PollAnswer) error
	// CreateVote возвращает apperrors.ErrConflict при повторном голосе пользователя
	CreateVote(vote *entity.PollVote) error

	Exists(pollID uint) (bool, error)
	OptionBelongsToPoll(pollID, optionID uint) (bool, error)
	HasUserVoted(pollID, userID uint) (bool, error)

	// GetResultRows возвращает плоские строки опрос x вариант x голос,
	// новые опросы первыми, варианты в порядке создания
	GetResultRows(filter PollFilter) ([]entity.PollResultRow, error)
	// CountVotesByOption возвращает количество голосов по каждому варианту опроса
	CountVotesByOption(pollID uint) ([]entity.OptionVoteCount, error)
}
