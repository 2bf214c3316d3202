package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/domain/repository"
	apperrors "github.com/yourusername/pruve-api/internal/pkg/errors"
)

// MatchRepo реализует repository.MatchRepository
type MatchRepo struct {
	db *gorm.DB
}

// NewMatchRepo создает новый репозиторий матчей
func NewMatchRepo(db *gorm.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// Transaction выполняет fn в транзакции, передавая репозиторий, привязанный к ней
func (r *MatchRepo) Transaction(fn func(txRepo repository.MatchRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&MatchRepo{db: tx})
	})
}

// GetMatch возвращает матч по номеру
func (r *MatchRepo) GetMatch(matchNumber uint) (*entity.MatchSchedule, error) {
	var match entity.MatchSchedule
	if err := r.db.Where("match_number = ?", matchNumber).First(&match).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &match, nil
}

// ListCards возвращает карточки матчей с командами и количеством голосов за каждую команду
func (r *MatchRepo) ListCards(excludeVotedBy uint) ([]entity.MatchCard, error) {
	query := r.db.Table("match_schedules AS m").
		Select(`m.match_number, m.match_time, m.venue, m.type, m.description, m.book_tickets,
			m.team1_id, t1.name AS team1_name, t1.icon AS team1_icon,
			(SELECT COUNT(*) FROM match_votes v1 WHERE v1.match_number = m.match_number AND v1.team_id = m.team1_id) AS team1_votes,
			m.team2_id, t2.name AS team2_name, t2.icon AS team2_icon,
			(SELECT COUNT(*) FROM match_votes v2 WHERE v2.match_number = m.match_number AND v2.team_id = m.team2_id) AS team2_votes`).
		Joins("JOIN teams t1 ON t1.id = m.team1_id").
		Joins("JOIN teams t2 ON t2.id = m.team2_id")

	if excludeVotedBy != 0 {
		query = query.Where(
			"NOT EXISTS (SELECT 1 FROM match_votes mv WHERE mv.match_number = m.match_number AND mv.user_id = ?)",
			excludeVotedBy,
		)
	}

	var cards []entity.MatchCard
	err := query.
		Order("m.match_time ASC").
		Order("m.match_number ASC").
		Scan(&cards).Error
	return cards, err
}

// CountMatchesByNumbers возвращает количество существующих матчей из списка
func (r *MatchRepo) CountMatchesByNumbers(numbers []uint) (int64, error) {
	if len(numbers) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&entity.MatchSchedule{}).Where("match_number IN ?", numbers).Count(&count).Error
	return count, err
}

// CreateVote сохраняет выбор команды пользователем
func (r *MatchRepo) CreateVote(vote *entity.MatchVote) error {
	if err := r.db.Create(vote).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %d already voted on match %d: %w", vote.UserID, vote.MatchNumber, apperrors.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("match vote references unknown user or team: %w", apperrors.ErrNotFound)
		}
		return err
	}
	return nil
}

// CreateComment сохраняет комментарий к матчу
func (r *MatchRepo) CreateComment(comment *entity.Comment) error {
	return r.db.Create(comment).Error
}

// ListCommentRows возвращает комментарии с авторами, командами матча и выбором автора
func (r *MatchRepo) ListCommentRows(filter repository.CommentFilter) ([]entity.CommentRow, error) {
	query := r.db.Table("comments AS c").
		Select(`c.id AS comment_id, c.type AS comment_type, c.match_number, c.comment_text, c.created_at,
			u.id AS user_id, u.email AS user_email, u.name AS user_name, u.picture AS user_picture,
			mv.team_id AS voted_team_id,
			m.team1_id, t1.nick_name AS team1_nick_name,
			m.team2_id, t2.nick_name AS team2_nick_name`).
		Joins("JOIN users u ON u.id = c.user_id").
		Joins("JOIN match_schedules m ON m.match_number = c.match_number").
		Joins("JOIN teams t1 ON t1.id = m.team1_id").
		Joins("JOIN teams t2 ON t2.id = m.team2_id").
		Joins("LEFT JOIN match_votes mv ON mv.match_number = c.match_number AND mv.user_id = c.user_id")

	if filter.MatchNumber != 0 {
		query = query.Where("c.match_number = ?", filter.MatchNumber)
	}
	if filter.NewestFirst {
		query = query.Order("c.created_at DESC").Order("c.id DESC")
	} else {
		query = query.Order("c.created_at ASC").Order("c.id ASC")
	}

	var rows []entity.CommentRow
	err := query.Scan(&rows).Error
	return rows, err
}
