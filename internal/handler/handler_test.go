package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// MockPollService - мок PollService
type MockPollService struct {
	mock.Mock
}

func (m *MockPollService) CreatePoll(input service.CreatePollInput) (*service.CreatedPoll, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreatedPoll), args.Error(1)
}

func (m *MockPollService) Vote(pollID, optionID, userID uint) error {
	args := m.Called(pollID, optionID, userID)
	return args.Error(0)
}

func (m *MockPollService) GetPoll(pollID, viewerID uint) (*entity.PollResults, error) {
	args := m.Called(pollID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PollResults), args.Error(1)
}

func (m *MockPollService) ListUserPolls(userID uint) ([]entity.PollResults, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PollResults), args.Error(1)
}

func (m *MockPollService) ListFeed(viewerID uint) ([]entity.PollResults, error) {
	args := m.Called(viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PollResults), args.Error(1)
}

func (m *MockPollService) LiveCounts(pollID uint) ([]entity.OptionVoteCount, error) {
	args := m.Called(pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OptionVoteCount), args.Error(1)
}

// MockUserService - мок UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateOrFetchUser(email, name, picture string) (*entity.User, string, error) {
	args := m.Called(email, name, picture)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockUserService) GetUser(userID uint) (*entity.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserService) SearchUsers(query string) ([]service.UserMatch, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.UserMatch), args.Error(1)
}

// MockLeagueService - мок LeagueService
type MockLeagueService struct {
	mock.Mock
}

func (m *MockLeagueService) CreateLeague(input service.CreateLeagueInput) (*entity.LeagueWithRoster, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeagueWithRoster), args.Error(1)
}

func (m *MockLeagueService) GetLeague(leagueID uint) (*entity.LeagueWithRoster, error) {
	args := m.Called(leagueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeagueWithRoster), args.Error(1)
}

func (m *MockLeagueService) ListUserLeagues(userID uint) ([]entity.LeagueWithRoster, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeagueWithRoster), args.Error(1)
}

func (m *MockLeagueService) ListNonMemberLeagues(userID uint) ([]entity.LeagueWithRoster, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeagueWithRoster), args.Error(1)
}

func (m *MockLeagueService) JoinLeague(leagueID, userID uint) error {
	args := m.Called(leagueID, userID)
	return args.Error(0)
}

// MockMatchService - мок MatchService
type MockMatchService struct {
	mock.Mock
}

func (m *MockMatchService) ListSchedule() ([]entity.MatchCard, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.MatchCard), args.Error(1)
}

func (m *MockMatchService) ListMatchCards(userID uint) ([]entity.MatchCard, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.MatchCard), args.Error(1)
}

func (m *MockMatchService) VoteAndComment(input service.VoteAndCommentInput) (*service.VoteAndCommentResult, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VoteAndCommentResult), args.Error(1)
}

func (m *MockMatchService) ListComments(matchNumber uint) ([]entity.CommentRow, error) {
	args := m.Called(matchNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CommentRow), args.Error(1)
}

func (m *MockMatchService) ListAllComments() ([]entity.CommentRow, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CommentRow), args.Error(1)
}

func uintPtr(v uint) *uint {
	return &v
}
