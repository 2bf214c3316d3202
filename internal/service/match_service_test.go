package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pruve-api/internal/domain/entity"
	"github.com/yourusername/pruve-api/internal/domain/repository"
	apperrors "github.com/yourusername/pruve-api/internal/pkg/errors"
)

func testMatch() *entity.MatchSchedule {
	return &entity.MatchSchedule{MatchNumber: 12, Team1ID: 1, Team2ID: 2}
}

func TestMatchService_ListSchedule_CacheMissLoadsAndStores(t *testing.T) {
	// Arrange
	matchRepo := new(MockMatchRepository)
	cache := new(MockCacheRepository)
	svc := NewMatchService(matchRepo, cache, 5*time.Minute, nil)
	cards := []entity.MatchCard{{MatchNumber: 12, Team1Votes: 3}}

	cache.On("GetJSON", scheduleCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	matchRepo.On("ListCards", uint(0)).Return(cards, nil)
	cache.On("SetJSON", scheduleCacheKey, cards, 5*time.Minute).Return(nil)

	// Act
	result, err := svc.ListSchedule()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, cards, result)
	cache.AssertExpectations(t)
}

func TestMatchService_ListSchedule_CacheHit(t *testing.T) {
	// Arrange
	matchRepo := new(MockMatchRepository)
	cache := new(MockCacheRepository)
	svc := NewMatchService(matchRepo, cache, time.Minute, nil)

	cache.On("GetJSON", scheduleCacheKey, mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(1).(*[]entity.MatchCard)
		*dest = []entity.MatchCard{{MatchNumber: 1}}
	}).Return(nil)

	// Act
	result, err := svc.ListSchedule()

	// Assert
	require.NoError(t, err)
	require.Len(t, result, 1)
	matchRepo.AssertNotCalled(t, "ListCards", mock.Anything)
}

func TestMatchService_ListSchedule_WithoutCache(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	svc := NewMatchService(matchRepo, nil, time.Minute, nil)
	matchRepo.On("ListCards", uint(0)).Return(nil, nil)

	result, err := svc.ListSchedule()

	require.NoError(t, err)
	assert.NotNil(t, result, "Пустое расписание отдается как пустой список")
}

func TestMatchService_ListMatchCards(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	svc := NewMatchService(matchRepo, nil, time.Minute, nil)
	matchRepo.On("ListCards", uint(5)).Return([]entity.MatchCard{{MatchNumber: 3}}, nil)

	cards, err := svc.ListMatchCards(5)

	require.NoError(t, err)
	assert.Len(t, cards, 1)

	_, err = svc.ListMatchCards(0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMatchService_VoteAndComment_WithComment(t *testing.T) {
	// Arrange
	matchRepo := new(MockMatchRepository)
	cache := new(MockCacheRepository)
	svc := NewMatchService(matchRepo, cache, time.Minute, nil)

	matchRepo.On("GetMatch", uint(12)).Return(testMatch(), nil)
	matchRepo.On("CreateVote", mock.MatchedBy(func(v *entity.MatchVote) bool {
		return v.MatchNumber == 12 && v.TeamID == 2 && v.UserID == 7
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.MatchVote).ID = 55
	}).Return(nil)
	matchRepo.On("CreateComment", mock.MatchedBy(func(c *entity.Comment) bool {
		return c.VoteID != nil && *c.VoteID == 55 && c.CommentText == "come on" && c.Type == entity.CommentTypeConversation
	})).Return(nil)
	cache.On("Delete", scheduleCacheKey).Return(nil)

	// Act
	result, err := svc.VoteAndComment(VoteAndCommentInput{MatchNumber: 12, UserID: 7, TeamID: 2, CommentText: " come on "})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(55), result.Vote.ID)
	require.NotNil(t, result.Comment)
	matchRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestMatchService_VoteAndComment_BlankCommentSkipsInsert(t *testing.T) {
	// Arrange
	matchRepo := new(MockMatchRepository)
	svc := NewMatchService(matchRepo, nil, time.Minute, nil)
	matchRepo.On("GetMatch", uint(12)).Return(testMatch(), nil)
	matchRepo.On("CreateVote", mock.Anything).Return(nil)

	// Act
	result, err := svc.VoteAndComment(VoteAndCommentInput{MatchNumber: 12, UserID: 7, TeamID: 1, CommentText: "   "})

	// Assert
	require.NoError(t, err)
	assert.Nil(t, result.Comment)
	matchRepo.AssertNotCalled(t, "CreateComment", mock.Anything)
}

func TestMatchService_VoteAndComment_Errors(t *testing.T) {
	cases := []struct {
		name    string
		setup   func(r *MockMatchRepository)
		teamID  uint
		wantErr error
	}{
		{
			name: "матч не найден",
			setup: func(r *MockMatchRepository) {
				r.On("GetMatch", uint(12)).Return(nil, apperrors.ErrNotFound)
			},
			teamID:  1,
			wantErr: apperrors.ErrNotFound,
		},
		{
			name: "команда не играет в матче",
			setup: func(r *MockMatchRepository) {
				r.On("GetMatch", uint(12)).Return(testMatch(), nil)
			},
			teamID:  9,
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "повторный голос",
			setup: func(r *MockMatchRepository) {
				r.On("GetMatch", uint(12)).Return(testMatch(), nil)
				r.On("CreateVote", mock.Anything).Return(apperrors.ErrConflict)
			},
			teamID:  1,
			wantErr: apperrors.ErrConflict,
		},
		{
			name: "ошибка комментария",
			setup: func(r *MockMatchRepository) {
				r.On("GetMatch", uint(12)).Return(testMatch(), nil)
				r.On("CreateVote", mock.Anything).Return(nil)
				r.On("CreateComment", mock.Anything).Return(errors.New("disk full"))
			},
			teamID:  1,
			wantErr: apperrors.ErrStorage,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			matchRepo := new(MockMatchRepository)
			cache := new(MockCacheRepository)
			tc.setup(matchRepo)
			svc := NewMatchService(matchRepo, cache, time.Minute, nil)

			_, err := svc.VoteAndComment(VoteAndCommentInput{MatchNumber: 12, UserID: 7, TeamID: tc.teamID, CommentText: "hi"})

			assert.ErrorIs(t, err, tc.wantErr)
			cache.AssertNotCalled(t, "Delete", mock.Anything)
		})
	}
}

func TestMatchService_ListComments(t *testing.T) {
	// Arrange
	matchRepo := new(MockMatchRepository)
	svc := NewMatchService(matchRepo, nil, time.Minute, nil)
	matchRepo.On("GetMatch", uint(12)).Return(testMatch(), nil)
	matchRepo.On("GetMatch", uint(13)).Return(nil, apperrors.ErrNotFound)
	matchRepo.On("ListCommentRows", repository.CommentFilter{MatchNumber: 12}).Return([]entity.CommentRow{{CommentID: 1}}, nil)

	// Act
	rows, err := svc.ListComments(12)
	_, missingErr := svc.ListComments(13)

	// Assert
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.ErrorIs(t, missingErr, apperrors.ErrNotFound)
}

func TestMatchService_ListAllComments_NewestFirst(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	svc := NewMatchService(matchRepo, nil, time.Minute, nil)
	matchRepo.On("ListCommentRows", repository.CommentFilter{NewestFirst: true}).Return(nil, nil)

	rows, err := svc.ListAllComments()

	require.NoError(t, err)
	assert.NotNil(t, rows)
	matchRepo.AssertExpectations(t)
}
