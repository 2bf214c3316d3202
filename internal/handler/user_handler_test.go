package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pruve-api/internal/domain/entity"
	apperrors "github.com/yourusername/pruve-api/internal/pkg/errors"
	"github.com/yourusername/pruve-api/internal/service"
)

func TestCreateUser_ValidationErrors(t *testing.T) {
	svc := &MockUserService{}
	handler := NewUserHandler(svc)

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "empty body", body: nil},
		{name: "missing email", body: map[string]string{"name": "alice"}},
		{name: "invalid email format", body: map[string]string{"email": "not-an-email", "name": "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/v1/user", tt.body)
			handler.CreateUser(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Contains(t, resp["error"], "Invalid request data")
		})
	}
	svc.AssertNotCalled(t, "CreateOrFetchUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUser_ReturnsToken(t *testing.T) {
	// Arrange
	svc := &MockUserService{}
	svc.On("CreateOrFetchUser", "alice@pruve.app", "alice", "a.png").
		Return(&entity.User{ID: 5, Email: "alice@pruve.app", Name: "alice", Picture: "a.png"}, "signed.jwt.token", nil)
	handler := NewUserHandler(svc)
	c, w := newTestGinContext("POST", "/api/v1/user", map[string]string{"email": "alice@pruve.app", "name": "alice", "picture": "a.png"})

	// Act
	handler.CreateUser(c)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, float64(5), resp["uid"])
	assert.Equal(t, "signed.jwt.token", resp["access_token"])
	assert.Equal(t, "bearer", resp["token_type"])
	svc.AssertExpectations(t)
}

func TestGetUser_NotFound(t *testing.T) {
	svc := &MockUserService{}
	svc.On("GetUser", uint(42)).Return(nil, fmt.Errorf("user 42: %w", apperrors.ErrNotFound))
	handler := NewUserHandler(svc)
	c, w := newTestGinContext("GET", "/api/v1/user/42", nil)
	c.Set("userID", uint(42))

	handler.GetUser(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchUsers(t *testing.T) {
	// Arrange
	svc := &MockUserService{}
	svc.On("SearchUsers", "alise").Return([]service.UserMatch{
		{User: entity.User{ID: 5, Name: "alice", Picture: "a.png"}, Score: 80},
	}, nil)
	svc.On("SearchUsers", "").Return(nil, fmt.Errorf("query is required: %w", apperrors.ErrValidation))
	handler := NewUserHandler(svc)

	// Act
	c, w := newTestGinContext("GET", "/api/v1/users/search?user_name=alise", nil)
	handler.SearchUsers(c)
	emptyC, emptyW := newTestGinContext("GET", "/api/v1/users/search", nil)
	handler.SearchUsers(emptyC)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_name":"alise","matches":[{"uid":5,"user_name":"alice","picture":"a.png"}]}`, w.Body.String())
	assert.Equal(t, http.StatusBadRequest, emptyW.Code, "Пустой запрос поиска - ошибка валидации")
}

func TestOptionalUintQuery(t *testing.T) {
	c, _ := newTestGinContext("GET", "/x?user_id=12&bad=-1", nil)

	v, err := optionalUintQuery(c, "user_id")
	require.NoError(t, err)
	assert.Equal(t, uint(12), v)

	v, err = optionalUintQuery(c, "missing")
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = optionalUintQuery(c, "bad")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
