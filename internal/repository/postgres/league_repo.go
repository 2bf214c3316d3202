package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/domain/repository"
	apperrors "github.com/yourusername/pruve-api/internal/pkg/errors"
)

// LeagueRepo реализует repository.LeagueRepository
type LeagueRepo struct {
	db *gorm.DB
}

// NewLeagueRepo создает новый репозиторий лиг
func NewLeagueRepo(db *gorm.DB) *LeagueRepo {
	return &LeagueRepo{db: db}
}

// Transaction выполняет fn в транзакции, передавая репозиторий, привязанный к ней
func (r *LeagueRepo) Transaction(fn func(txRepo repository.LeagueRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&LeagueRepo{db: tx})
	})
}

// Create создает лигу
func (r *LeagueRepo) Create(league *entity.League) error {
	return r.db.Create(league).Error
}

// AddMembers добавляет участников лиги
func (r *LeagueRepo) AddMembers(members []entity.LeagueMembership) error {
	if len(members) == 0 {
		return nil
	}
	if err := r.db.Create(&members).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("league membership already exists: %w", apperrors.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("league member references unknown user: %w", apperrors.ErrNotFound)
		}
		return err
	}
	return nil
}

// AddMatchups прикрепляет матчи к лиге
func (r *LeagueRepo) AddMatchups(matchups []entity.LeagueMatchup) error {
	if len(matchups) == 0 {
		return nil
	}
	if err := r.db.Create(&matchups).Error; err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("league matchup references unknown match: %w", apperrors.ErrNotFound)
		}
		return err
	}
	return nil
}

// GetByID возвращает лигу по ID
func (r *LeagueRepo) GetByID(id uint) (*entity.League, error) {
	var league entity.League
	if err := r.db.First(&league, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &league, nil
}

// GetMatchNumbers возвращает номера матчей, прикрепленных к лиге
func (r *LeagueRepo) GetMatchNumbers(leagueID uint) ([]uint, error) {
	var numbers []uint
	err := r.db.Model(&entity.LeagueMatchup{}).
		Where("league_id = ?", leagueID).
		Order("match_number ASC").
		Pluck("match_number", &numbers).Error
	return numbers, err
}

// GetRosterRows возвращает строки лига x участник
func (r *LeagueRepo) GetRosterRows(filter repository.LeagueFilter) ([]entity.LeagueRosterRow, error) {
	query := r.db.Table("leagues AS l").
		Select(`l.id AS league_id, l.name AS league_name, l.description AS league_description,
			l.is_public, l.creator_id,
			u.id AS user_id, u.name AS user_name, u.picture AS user_picture, m.role`).
		Joins("JOIN league_memberships m ON m.league_id = l.id").
		Joins("JOIN users u ON u.id = m.user_id")

	if filter.LeagueID != 0 {
		query = query.Where("l.id = ?", filter.LeagueID)
	}
	if filter.MemberID != 0 {
		query = query.Where("l.id IN (?)",
			r.db.Model(&entity.LeagueMembership{}).Select("league_id").Where("user_id = ?", filter.MemberID))
	}
	if filter.NonMemberID != 0 {
		query = query.Where("l.id NOT IN (?)",
			r.db.Model(&entity.LeagueMembership{}).Select("league_id").Where("user_id = ?", filter.NonMemberID))
	}

	var rows []entity.LeagueRosterRow
	err := query.
		Order("l.id ASC").
		Order("m.created_at ASC").
		Order("u.id ASC").
		Scan(&rows).Error
	return rows, err
}
