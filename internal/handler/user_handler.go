package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/pruve-api/internal/handler/dto"
)

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	userService UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser создает пользователя или возвращает существующего и выпускает токен
// POST /user
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, token, err := h.userService.CreateOrFetchUser(req.Email, req.Name, req.Picture)
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthResponse(user, token))
}

// GetUser возвращает профиль пользователя
// GET /user/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	user, err := h.userService.GetUser(userID)
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// SearchUsers ищет пользователей по похожести имени
// GET /users/search?user_name=
func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := c.Query("user_name")

	matches, err := h.userService.SearchUsers(query)
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}

	resp := dto.UserSearchResponse{
		UserName: query,
		Matches:  make([]dto.UserMatchDTO, len(matches)),
	}
	for i, m := range matches {
		resp.Matches[i] = dto.UserMatchDTO{UID: m.User.ID, UserName: m.User.Name, Picture: m.User.Picture}
	}
	c.JSON(http.StatusOK, resp)
}
