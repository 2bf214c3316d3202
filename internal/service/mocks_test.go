package service

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/domain/repository"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

// MockPollRepository реализует repository.PollRepository.
// Transaction вызывает fn с самим моком.
type MockPollRepository struct {
	mock.Mock
}

func (m *MockPollRepository) Transaction(fn func(txRepo repository.PollRepository) error) error {
	return fn(m)
}

func (m *MockPollRepository) CreatePoll(poll *entity.Poll) error {
	args := m.Called(poll)
	return args.Error(0)
}

func (m *MockPollRepository) CreateOptions(options []entity.PollOption) error {
	args := m.Called(options)
	return args.Error(0)
}

func (m *MockPollRepository) CreateAnswer(answer *entity.PollAnswer) error {
	args := m.Called(answer)
	return args.Error(0)
}

func (m *MockPollRepository) CreateVote(vote *entity.PollVote) error {
	args := m.Called(vote)
	return args.Error(0)
}

func (m *MockPollRepository) Exists(pollID uint) (bool, error) {
	args := m.Called(pollID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPollRepository) OptionBelongsToPoll(pollID, optionID uint) (bool, error) {
	args := m.Called(pollID, optionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPollRepository) HasUserVoted(pollID, userID uint) (bool, error) {
	args := m.Called(pollID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPollRepository) GetResultRows(filter repository.PollFilter) ([]entity.PollResultRow, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PollResultRow), args.Error(1)
}

func (m *MockPollRepository) CountVotesByOption(pollID uint) ([]entity.OptionVoteCount, error) {
	args := m.Called(pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OptionVoteCount), args.Error(1)
}

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List() ([]entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) CountByIDs(ids []uint) (int64, error) {
	args := m.Called(ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockLeagueRepository реализует repository.LeagueRepository
type MockLeagueRepository struct {
	mock.Mock
}

func (m *MockLeagueRepository) Transaction(fn func(txRepo repository.LeagueRepository) error) error {
	return fn(m)
}

func (m *MockLeagueRepository) Create(league *entity.League) error {
	args := m.Called(league)
	return args.Error(0)
}

func (m *MockLeagueRepository) AddMembers(members []entity.LeagueMembership) error {
	args := m.Called(members)
	return args.Error(0)
}

func (m *MockLeagueRepository) AddMatchups(matchups []entity.LeagueMatchup) error {
	args := m.Called(matchups)
	return args.Error(0)
}

func (m *MockLeagueRepository) GetByID(id uint) (*entity.League, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.League), args.Error(1)
}

func (m *MockLeagueRepository) GetMatchNumbers(leagueID uint) ([]uint, error) {
	args := m.Called(leagueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockLeagueRepository) GetRosterRows(filter repository.LeagueFilter) ([]entity.LeagueRosterRow, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeagueRosterRow), args.Error(1)
}

// MockMatchRepository реализует repository.MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) Transaction(fn func(txRepo repository.MatchRepository) error) error {
	return fn(m)
}

func (m *MockMatchRepository) GetMatch(matchNumber uint) (*entity.MatchSchedule, error) {
	args := m.Called(matchNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MatchSchedule), args.Error(1)
}

func (m *MockMatchRepository) ListCards(excludeVotedBy uint) ([]entity.MatchCard, error) {
	args := m.Called(excludeVotedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.MatchCard), args.Error(1)
}

func (m *MockMatchRepository) CountMatchesByNumbers(numbers []uint) (int64, error) {
	args := m.Called(numbers)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMatchRepository) CreateVote(vote *entity.MatchVote) error {
	args := m.Called(vote)
	return args.Error(0)
}

func (m *MockMatchRepository) CreateComment(comment *entity.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockMatchRepository) ListCommentRows(filter repository.CommentFilter) ([]entity.CommentRow, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CommentRow), args.Error(1)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// ============================================================================
// Прочие моки
// ============================================================================

// MockTokenIssuer реализует TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(user *entity.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

// MockBroadcaster реализует ResultsBroadcaster
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) BroadcastPollResults(pollID uint, counts []entity.OptionVoteCount) error {
	args := m.Called(pollID, counts)
	return args.Error(0)
}

func uintPtr(v uint) *uint {
	return &v
}

func strPtr(v string) *string {
	return &v
}
