package postgres

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/domain/repository"
	apperrors "github.com/yourusername/pruve-api/internal/pkg/errors"
)

// PollRepo реализует repository.PollRepository
type PollRepo struct {
	db *gorm.DB
}

// NewPollRepo создает новый репозиторий опросов
func NewPollRepo(db *gorm.DB) *PollRepo {
	return &PollRepo{db: db}
}

// Transaction выполняет fn в транзакции, передавая репозиторий, привязанный к ней
func (r *PollRepo) Transaction(fn func(txRepo repository.PollRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&PollRepo{db: tx})
	})
}

// CreatePoll сохраняет опрос без вариантов
func (r *PollRepo) CreatePoll(poll *entity.Poll) error {
	return r.db.Omit(clause.Associations).Create(poll).Error
}

// CreateOptions сохраняет варианты по одному, чтобы сохранить порядок и получить ID каждого
func (r *PollRepo) CreateOptions(options []entity.PollOption) error {
	for i := range options {
		if err := r.db.Create(&options[i]).Error; err != nil {
			return fmt.Errorf("failed to create option %q: %w", options[i].OptionText, err)
		}
	}
	return nil
}

// CreateAnswer сохраняет ответ автора опроса
func (r *PollRepo) CreateAnswer(answer *entity.PollAnswer) error {
	if err := r.db.Create(answer).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("answer for poll %d: %w", answer.PollID, apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// CreateVote сохраняет голос. Уникальный индекс (poll_id, user_id) защищает от гонки
// между проверкой HasUserVoted и вставкой.
func (r *PollRepo) CreateVote(vote *entity.PollVote) error {
	if err := r.db.Create(vote).Error; err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("user %d already voted on poll %d: %w", vote.UserID, vote.PollID, apperrors.ErrConflict)
		case isForeignKeyViolation(err):
			return fmt.Errorf("option %d does not belong to poll %d: %w", vote.OptionID, vote.PollID, apperrors.ErrValidation)
		}
		return err
	}
	return nil
}

// Exists проверяет существование опроса
func (r *PollRepo) Exists(pollID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Poll{}).Where("id = ?", pollID).Count(&count).Error
	return count > 0, err
}

// OptionBelongsToPoll проверяет, что вариант существует именно в этом опросе
func (r *PollRepo) OptionBelongsToPoll(pollID, optionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.PollOption{}).
		Where("id = ? AND poll_id = ?", optionID, pollID).
		Count(&count).Error
	return count > 0, err
}

// HasUserVoted проверяет, голосовал ли пользователь в опросе
func (r *PollRepo) HasUserVoted(pollID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.PollVote{}).
		Where("poll_id = ? AND user_id = ?", pollID, userID).
		Count(&count).Error
	return count > 0, err
}

// GetResultRows возвращает плоское соединение опросов с вариантами и голосами
func (r *PollRepo) GetResultRows(filter repository.PollFilter) ([]entity.PollResultRow, error) {
	query := r.db.Table("polls AS p").
		Select(`p.id AS poll_id, p.type AS poll_type, p.user_id AS creator_id, p.question, p.created_at,
			u.name AS creator_name, u.picture AS creator_picture,
			a.option_id AS answer_option_id,
			o.id AS option_id, o.option_text,
			v.user_id AS voter_id, vu.name AS voter_name`).
		Joins("JOIN users u ON u.id = p.user_id").
		Joins("JOIN poll_options o ON o.poll_id = p.id").
		Joins("LEFT JOIN poll_answers a ON a.poll_id = p.id").
		Joins("LEFT JOIN poll_votes v ON v.option_id = o.id AND v.poll_id = p.id").
		Joins("LEFT JOIN users vu ON vu.id = v.user_id")

	if filter.PollID != 0 {
		query = query.Where("p.id = ?", filter.PollID)
	}
	if filter.CreatorID != 0 {
		query = query.Where("p.user_id = ?", filter.CreatorID)
	}

	var rows []entity.PollResultRow
	err := query.
		Order("p.created_at DESC").
		Order("p.id DESC").
		Order("o.id ASC").
		Order("v.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountVotesByOption возвращает количество голосов по вариантам опроса, включая варианты без голосов
func (r *PollRepo) CountVotesByOption(pollID uint) ([]entity.OptionVoteCount, error) {
	var counts []entity.OptionVoteCount
	err := r.db.Table("poll_options AS o").
		Select("o.id AS option_id, COUNT(v.id) AS vote_count").
		Joins("LEFT JOIN poll_votes v ON v.option_id = o.id AND v.poll_id = o.poll_id").
		Where("o.poll_id = ?", pollID).
		Group("o.id").
		Order("o.id ASC").
		Scan(&counts).Error
	return counts, err
}
