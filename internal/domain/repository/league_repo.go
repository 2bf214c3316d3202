package repository

import (
	"github.com/yourusername/pruve-api/internal/domain/entity"
)

// LeagueFilter задает выборку лиг для ростера. Нулевое поле не фильтрует.
type LeagueFilter struct {
	LeagueID uint
	// MemberID: только лиги, где пользователь состоит
	MemberID uint
	// NonMemberID: только лиги, где пользователь не состоит
	NonMemberID uint
}

// LeagueRepository определяет методы для работы с лигами
type LeagueRepository interface {
	Transaction(fn func(txRepo LeagueRepository) error) error

	Create(league *entity.League) error
	// AddMembers возвращает apperrors.ErrConflict, если пользователь уже состоит в лиге
	AddMembers(members []entity.LeagueMembership) error
	AddMatchups(matchups []entity.LeagueMatchup) error

	GetByID(id uint) (*entity.League, error)
	GetMatchNumbers(leagueID uint) ([]uint, error)
	// GetRosterRows возвращает строки лига x участник, упорядоченные по лиге и времени вступления
	GetRosterRows(filter LeagueFilter) ([]entity.LeagueRosterRow, error)
}
