package service

import (
	"log"
	"strings"

	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/domain/repository"
)

// CreateLeagueInput - данные для создания лиги
type CreateLeagueInput struct {
	CreatorID    uint
	Name         string
	Description  string
	IsPublic     bool
	MemberIDs    []uint
	MatchNumbers []uint
}

// LeagueService предоставляет методы для работы с лигами
type LeagueService struct {
	leagueRepo repository.LeagueRepository
	userRepo   repository.UserRepository
	matchRepo  repository.MatchRepository
}

// NewLeagueService создает новый сервис лиг
func NewLeagueService(
	leagueRepo repository.LeagueRepository,
	userRepo repository.UserRepository,
	matchRepo repository.MatchRepository,
) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		userRepo:   userRepo,
		matchRepo:  matchRepo,
	}
}

// CreateLeague создает лигу с создателем-администратором, участниками и матчами в одной транзакции
func (s *LeagueService) CreateLeague(input CreateLeagueInput) (*entity.LeagueWithRoster, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validationError("league name is required")
	}
	if input.CreatorID == 0 {
		return nil, validationError("creator is required")
	}

	memberIDs := uniqueIDs(input.MemberIDs, input.CreatorID)
	matchNumbers := uniqueIDs(input.MatchNumbers, 0)

	allUsers := append([]uint{input.CreatorID}, memberIDs...)
	found, err := s.userRepo.CountByIDs(allUsers)
	if err != nil {
		return nil, storageError("count league members", err)
	}
	if found != int64(len(allUsers)) {
		return nil, notFoundError("%d of %d league members", int64(len(allUsers))-found, len(allUsers))
	}

	matches, err := s.matchRepo.CountMatchesByNumbers(matchNumbers)
	if err != nil {
		return nil, storageError("count league matches", err)
	}
	if matches != int64(len(matchNumbers)) {
		return nil, notFoundError("%d of %d league matches", int64(len(matchNumbers))-matches, len(matchNumbers))
	}

	league := &entity.League{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Type:        entity.LeagueTypeDefault,
		IsPublic:    input.IsPublic,
		CreatorID:   input.CreatorID,
	}
	err = s.leagueRepo.Transaction(func(tx repository.LeagueRepository) error {
		if err := tx.Create(league); err != nil {
			return err
		}

		members := make([]entity.LeagueMembership, 0, len(allUsers))
		members = append(members, entity.LeagueMembership{LeagueID: league.ID, UserID: input.CreatorID, Role: entity.RoleAdmin})
		for _, id := range memberIDs {
			members = append(members, entity.LeagueMembership{LeagueID: league.ID, UserID: id, Role: entity.RolePlayer})
		}
		if err := tx.AddMembers(members); err != nil {
			return err
		}

		matchups := make([]entity.LeagueMatchup, len(matchNumbers))
		for i, n := range matchNumbers {
			matchups[i] = entity.LeagueMatchup{LeagueID: league.ID, MatchNumber: n}
		}
		return tx.AddMatchups(matchups)
	})
	if err != nil {
		return nil, storageError("create league", err)
	}

	log.Printf("[LeagueService] Пользователь %d создал лигу %d (%d участников, %d матчей)",
		input.CreatorID, league.ID, len(allUsers), len(matchNumbers))
	return s.GetLeague(league.ID)
}

// GetLeague возвращает лигу с участниками и прикрепленными матчами
func (s *LeagueService) GetLeague(leagueID uint) (*entity.LeagueWithRoster, error) {
	league, err := s.leagueRepo.GetByID(leagueID)
	if err != nil {
		return nil, storageError("get league", err)
	}

	rows, err := s.leagueRepo.GetRosterRows(repository.LeagueFilter{LeagueID: leagueID})
	if err != nil {
		return nil, storageError("get league roster", err)
	}
	numbers, err := s.leagueRepo.GetMatchNumbers(leagueID)
	if err != nil {
		return nil, storageError("get league matches", err)
	}

	result := &entity.LeagueWithRoster{
		League:       *league,
		Members:      make([]entity.LeagueMember, 0, len(rows)),
		MatchNumbers: numbers,
	}
	if result.MatchNumbers == nil {
		result.MatchNumbers = []uint{}
	}
	for _, row := range rows {
		result.Members = append(result.Members, memberFromRow(row))
	}
	return result, nil
}

// ListUserLeagues возвращает лиги, в которых состоит пользователь, с полным составом
func (s *LeagueService) ListUserLeagues(userID uint) ([]entity.LeagueWithRoster, error) {
	rows, err := s.leagueRepo.GetRosterRows(repository.LeagueFilter{MemberID: userID})
	if err != nil {
		return nil, storageError("list user leagues", err)
	}
	return assembleRosters(rows), nil
}

// ListNonMemberLeagues возвращает лиги, в которых пользователь не состоит
func (s *LeagueService) ListNonMemberLeagues(userID uint) ([]entity.LeagueWithRoster, error) {
	rows, err := s.leagueRepo.GetRosterRows(repository.LeagueFilter{NonMemberID: userID})
	if err != nil {
		return nil, storageError("list non-member leagues", err)
	}
	return assembleRosters(rows), nil
}

// JoinLeague добавляет пользователя в лигу с ролью игрока
func (s *LeagueService) JoinLeague(leagueID, userID uint) error {
	if _, err := s.leagueRepo.GetByID(leagueID); err != nil {
		return storageError("get league", err)
	}
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return storageError("get user", err)
	}

	err := s.leagueRepo.AddMembers([]entity.LeagueMembership{
		{LeagueID: leagueID, UserID: userID, Role: entity.RolePlayer},
	})
	if err != nil {
		return storageError("join league", err)
	}
	log.Printf("[LeagueService] Пользователь %d вступил в лигу %d", userID, leagueID)
	return nil
}

// assembleRosters группирует строки лига x участник по лигам, сохраняя порядок строк
func assembleRosters(rows []entity.LeagueRosterRow) []entity.LeagueWithRoster {
	leagues := make([]entity.LeagueWithRoster, 0)
	index := make(map[uint]int)
	for _, row := range rows {
		i, ok := index[row.LeagueID]
		if !ok {
			leagues = append(leagues, entity.LeagueWithRoster{
				League: entity.League{
					ID:          row.LeagueID,
					Name:        row.LeagueName,
					Description: row.LeagueDescription,
					Type:        entity.LeagueTypeDefault,
					IsPublic:    row.IsPublic,
					CreatorID:   row.CreatorID,
				},
				Members: []entity.LeagueMember{},
			})
			i = len(leagues) - 1
			index[row.LeagueID] = i
		}
		leagues[i].Members = append(leagues[i].Members, memberFromRow(row))
	}
	return leagues
}

func memberFromRow(row entity.LeagueRosterRow) entity.LeagueMember {
	return entity.LeagueMember{
		UserID:  row.UserID,
		Name:    row.UserName,
		Picture: row.UserPicture,
		Role:    row.Role,
	}
}

// uniqueIDs убирает нули, повторы и значение skip, сохраняя порядок
func uniqueIDs(ids []uint, skip uint) []uint {
	result := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 || id == skip {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
