package dto

import "github.com/yourusername/pruve-api/internal/domain/entity"

// CreateUserRequest - данные пользователя от внешнего провайдера входа
type CreateUserRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// AuthResponse - пользователь с выпущенным access-токеном
type AuthResponse struct {
	UID         uint   `json:"uid"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Picture     string `json:"picture"`
}

// NewAuthResponse создает ответ на вход пользователя
func NewAuthResponse(user *entity.User, token string) AuthResponse {
	return AuthResponse{
		UID:         user.ID,
		AccessToken: token,
		TokenType:   "bearer",
		Email:       user.Email,
		Name:        user.Name,
		Picture:     user.Picture,
	}
}

// UserResponse - публичный профиль пользователя
type UserResponse struct {
	UID     uint   `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// NewUserResponse создает профиль из сущности
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		UID:     user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.Picture,
	}
}

// UserMatchDTO - найденный пользователь
type UserMatchDTO struct {
	UID      uint   `json:"uid"`
	UserName string `json:"user_name"`
	Picture  string `json:"picture"`
}

// UserSearchResponse - результат нечеткого поиска по имени
type UserSearchResponse struct {
	UserName string         `json:"user_name"`
	Matches  []UserMatchDTO `json:"matches"`
}
