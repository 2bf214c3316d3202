package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pruve-api/internal/config"
	"github.com/yourusername/pruve-api/internal/domain/entity"
	apperrors "github.com/yourusername/pruve-api/internal/pkg/errors"
)

func createTestUserService(userRepo *MockUserRepository, tokens *MockTokenIssuer) *UserService {
	return NewUserService(userRepo, tokens, config.SearchConfig{MinScore: 50, Limit: 2})
}

func TestUserService_CreateOrFetchUser_Existing(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	svc := createTestUserService(userRepo, tokens)
	existing := &entity.User{ID: 5, Email: "fan@pruve.app", Name: "Fan"}

	userRepo.On("GetByEmail", "fan@pruve.app").Return(existing, nil)
	tokens.On("GenerateToken", existing).Return("token-1", nil)

	// Act
	user, token, err := svc.CreateOrFetchUser("  Fan@Pruve.app ", "Other Name", "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(5), user.ID, "Повторный вход возвращает существующего пользователя")
	assert.Equal(t, "token-1", token)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserService_CreateOrFetchUser_New(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	svc := createTestUserService(userRepo, tokens)

	userRepo.On("GetByEmail", "new@pruve.app").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "new@pruve.app" && u.Name == "Newbie" && u.Picture == "p.png"
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.User).ID = 11
	}).Return(nil)
	tokens.On("GenerateToken", mock.AnythingOfType("*entity.User")).Return("token-2", nil)

	// Act
	user, token, err := svc.CreateOrFetchUser("new@pruve.app", " Newbie ", "p.png")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(11), user.ID)
	assert.Equal(t, "token-2", token)
}

func TestUserService_CreateOrFetchUser_LostRaceRereads(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	svc := createTestUserService(userRepo, tokens)
	winner := &entity.User{ID: 3, Email: "race@pruve.app"}

	userRepo.On("GetByEmail", "race@pruve.app").Return(nil, apperrors.ErrNotFound).Once()
	userRepo.On("Create", mock.Anything).Return(apperrors.ErrConflict)
	userRepo.On("GetByEmail", "race@pruve.app").Return(winner, nil).Once()
	tokens.On("GenerateToken", winner).Return("token-3", nil)

	// Act
	user, _, err := svc.CreateOrFetchUser("race@pruve.app", "x", "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(3), user.ID, "Проигравший гонку получает существующую запись")
}

func TestUserService_CreateOrFetchUser_EmptyEmail(t *testing.T) {
	svc := createTestUserService(new(MockUserRepository), new(MockTokenIssuer))

	_, _, err := svc.CreateOrFetchUser("   ", "x", "")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUserService_GetUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := createTestUserService(userRepo, new(MockTokenIssuer))
	userRepo.On("GetByID", uint(1)).Return(nil, apperrors.ErrNotFound)
	userRepo.On("GetByID", uint(2)).Return(nil, errors.New("db down"))

	_, err := svc.GetUser(1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.GetUser(2)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestUserService_SearchUsers_ScoresFiltersAndLimits(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	svc := createTestUserService(userRepo, new(MockTokenIssuer))
	userRepo.On("List").Return([]entity.User{
		{ID: 1, Name: "Rohan"},
		{ID: 2, Name: "Rohit"},
		{ID: 3, Name: "Zed"},
		{ID: 4, Name: "rohit"},
	}, nil)

	// Act
	matches, err := svc.SearchUsers("ROHIT")

	// Assert
	require.NoError(t, err)
	require.Len(t, matches, 2, "Ограничение search.limit")
	assert.Equal(t, uint(2), matches[0].User.ID, "При равной оценке меньший ID идет первым")
	assert.Equal(t, uint(4), matches[1].User.ID)
	assert.Equal(t, 100, matches[0].Score)
}

func TestUserService_SearchUsers_ThresholdIsStrict(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, nil, config.SearchConfig{MinScore: 60, Limit: 5})
	userRepo.On("List").Return([]entity.User{{ID: 1, Name: "rohan"}}, nil)

	// Act
	matches, err := svc.SearchUsers("rohit")

	// Assert
	require.NoError(t, err)
	assert.Empty(t, matches, "Оценка 60 не проходит порог > 60")
}

func TestUserService_SearchUsers_EmptyQuery(t *testing.T) {
	svc := createTestUserService(new(MockUserRepository), new(MockTokenIssuer))

	_, err := svc.SearchUsers(" ")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
